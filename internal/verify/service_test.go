package verify

import (
	"context"
	"strings"
	"testing"
	"time"

	"agni/internal/config"
	"agni/internal/model"
	"agni/pkg/search"

	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const eiffelText = "The Eiffel Tower was built in 1889 and is located in Paris, France."

func eiffelSearch() *fakeSearchClient {
	return &fakeSearchClient{results: map[string][]search.Result{
		"The Eiffel Tower was built in 1889": {
			{Title: "Eiffel Tower - Wikipedia", Link: "https://en.wikipedia.org/wiki/Eiffel_Tower", Snippet: "Constructed from 1887 to 1889 as the centerpiece of the 1889 World's Fair.", Source: "en.wikipedia.org"},
			{Title: "Eiffel Tower | History", Link: "https://www.history.com/topics/landmarks/eiffel-tower", Snippet: "Completed in 1889 for the Exposition Universelle.", Source: "history.com"},
		},
		"The Eiffel Tower is located in Paris, France": {
			{Title: "Eiffel Tower | Britannica", Link: "https://www.britannica.com/topic/Eiffel-Tower-Paris-France", Snippet: "Eiffel Tower, Paris landmark on the Champ de Mars.", Source: "britannica.com"},
		},
	}}
}

func TestVerify_EiffelTowerVerified(t *testing.T) {
	gen := &fakeGenerator{
		claims: `["The Eiffel Tower was built in 1889", "The Eiffel Tower is located in Paris, France"]`,
		verdict: `{
			"classification": "Verified",
			"reason": "en.wikipedia.org and britannica.com both confirm the tower was completed in 1889 and stands in Paris.",
			"confidence": 0.95,
			"key_findings": ["Completed in 1889", "Located on the Champ de Mars in Paris"]
		}`,
	}
	svc := NewFromConfig(config.Config{UpstreamTimeout: time.Second}, gen, eiffelSearch(), nil)

	resp := svc.Verify(context.Background(), eiffelText)

	assert.Equal(t, model.Verified, resp.Classification)
	assert.Equal(t, true, resp.Confidence > 0.7)
	assert.Equal(t, 3, len(resp.Sources))
	assert.Equal(t, 3, len(resp.Evidence))
	assert.Equal(t, "https://en.wikipedia.org/wiki/Eiffel_Tower", resp.Sources[0])

	citesSource := false
	for _, e := range resp.Evidence {
		if strings.Contains(resp.Reason, e.Source) {
			citesSource = true
		}
	}
	assert.Equal(t, true, citesSource)
	assert.Equal(t, true, resp.ProcessingTime >= 0)
	assert.Equal(t, false, resp.Timestamp.IsZero())
}

func TestVerify_GeneratorDisabled(t *testing.T) {
	client := eiffelSearch()
	svc := NewFromConfig(config.Config{UpstreamTimeout: time.Second}, nil, client, nil)

	resp := svc.Verify(context.Background(), eiffelText)

	assert.Equal(t, model.Unverifiable, resp.Classification)
	assert.Equal(t, 0.3, resp.Confidence)
	assert.Equal(t, true, strings.Contains(resp.Reason, "unavailable"))
	// the whole text is the only claim
	assert.Equal(t, []string{eiffelText}, client.queries)
}

func TestVerify_EverythingDisabled(t *testing.T) {
	svc := NewFromConfig(config.Config{}, nil, nil, nil)

	resp := svc.Verify(context.Background(), eiffelText)

	assert.Equal(t, model.Unverifiable, resp.Classification)
	assert.Equal(t, 0.3, resp.Confidence)
	assert.Equal(t, 0, len(resp.Sources))
	assert.NotEqual(t, nil, resp.Sources)
	assert.NotEqual(t, nil, resp.Evidence)
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(ctx context.Context, text string) []string {
	panic("extractor blew up")
}

func TestVerify_PanicDegradesResponse(t *testing.T) {
	before := testutil.ToFloat64(fallbacksTotal.WithLabelValues(componentService, reasonPanic))

	svc := NewService(panickingExtractor{}, NewAggregator(NewRetriever(nil, nil, time.Second)), NewSynthesizer(nil, time.Second))

	resp := svc.Verify(context.Background(), eiffelText)

	assert.Equal(t, model.Unverifiable, resp.Classification)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.Equal(t, reasonServiceError, resp.Reason)
	assert.Equal(t, 0, len(resp.Sources))
	assert.Equal(t, 0, len(resp.Evidence))
	assert.Equal(t, true, resp.ProcessingTime >= 0)
	assert.Equal(t, before+1, testutil.ToFloat64(fallbacksTotal.WithLabelValues(componentService, reasonPanic)))
}

type stubSynthesizer struct {
	verdict model.Verdict
}

func (s stubSynthesizer) Synthesize(ctx context.Context, text string, evidence []model.EvidenceRecord) model.Verdict {
	return s.verdict
}

func TestVerify_NormalizesVerdict(t *testing.T) {
	svc := NewService(
		NewExtractor(nil, time.Second),
		NewAggregator(NewRetriever(nil, nil, time.Second)),
		stubSynthesizer{verdict: model.Verdict{Classification: "Maybe", Confidence: 4.2}},
	)

	resp := svc.Verify(context.Background(), eiffelText)

	assert.Equal(t, model.Unverifiable, resp.Classification)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Equal(t, reasonDefault, resp.Reason)
	assert.NotEqual(t, nil, resp.Sources)
}

func TestVerify_ArbitraryPayloadsStayInRange(t *testing.T) {
	payloads := []string{
		`{"classification":"Verified","confidence":99}`,
		`{"classification":"TRUE","confidence":-0.01,"reason":""}`,
		`{"confidence":"high"}`,
		`{}`,
		`not json at all`,
		"```json\n{\"classification\":\"Misinformation\",\"confidence\":0.91,\"reason\":\"x\"}\n```",
	}

	for _, p := range payloads {
		gen := &fakeGenerator{claims: `["claim"]`, verdict: p}
		svc := NewFromConfig(config.Config{UpstreamTimeout: time.Second}, gen, &fakeSearchClient{}, nil)

		resp := svc.Verify(context.Background(), eiffelText)

		switch resp.Classification {
		case model.Verified, model.Misinformation, model.Unverifiable:
		default:
			t.Errorf("payload %q: unexpected classification %q", p, resp.Classification)
		}
		if resp.Confidence < 0 || resp.Confidence > 1 {
			t.Errorf("payload %q: confidence %v out of range", p, resp.Confidence)
		}
		if resp.Reason == "" {
			t.Errorf("payload %q: empty reason", p)
		}
	}
}

func TestVerify_CountsClassification(t *testing.T) {
	before := testutil.ToFloat64(verificationsTotal.WithLabelValues(string(model.Unverifiable)))

	NewFromConfig(config.Config{}, nil, nil, nil).Verify(context.Background(), eiffelText)

	assert.Equal(t, before+1, testutil.ToFloat64(verificationsTotal.WithLabelValues(string(model.Unverifiable))))
}
