package verify

import (
	"context"
	"strings"
	"testing"
	"time"

	"agni/internal/model"

	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSynthesize_GeneratorDisabled(t *testing.T) {
	s := NewSynthesizer(nil, time.Second)
	evidence := evidenceFixture(7)

	v := s.Synthesize(context.Background(), "The moon is made of cheese.", evidence)

	assert.Equal(t, model.Unverifiable, v.Classification)
	assert.Equal(t, 0.3, v.Confidence)
	assert.Equal(t, true, strings.Contains(v.Reason, "unavailable"))
	assert.Equal(t, 5, len(v.Evidence))
	assert.Equal(t, 5, len(v.Sources))
	assert.Equal(t, evidence[4].Link, v.Sources[4])
}

func TestSynthesize_ValidVerdict(t *testing.T) {
	gen := &fakeGenerator{verdict: "```json\n" + `{
		"classification": "Misinformation",
		"reason": "sourcea.example reports the opposite.",
		"confidence": 0.85,
		"key_findings": ["finding one", "finding two"],
		"sources": ["https://made-up.example"]
	}` + "\n```"}
	s := NewSynthesizer(gen, time.Second)
	evidence := evidenceFixture(6)

	v := s.Synthesize(context.Background(), "The moon is made of cheese.", evidence)

	assert.Equal(t, model.Misinformation, v.Classification)
	assert.Equal(t, 0.85, v.Confidence)
	assert.Equal(t, "sourcea.example reports the opposite.", v.Reason)
	assert.Equal(t, []string{"finding one", "finding two"}, v.KeyFindings)
	assert.Equal(t, 5, len(v.Sources))
	assert.Equal(t, evidence[0].Link, v.Sources[0])
	assert.Equal(t, evidence[:5], v.Evidence)
	assert.Equal(t, true, gen.hadDeadline)
}

func TestSynthesize_PromptCarriesFiveRecords(t *testing.T) {
	gen := &fakeGenerator{verdict: `{"classification":"Verified","reason":"ok","confidence":0.9}`}
	s := NewSynthesizer(gen, time.Second)

	s.Synthesize(context.Background(), "Some claim text.", evidenceFixture(8))

	prompt := gen.lastPrompt()
	assert.Equal(t, true, strings.Contains(prompt, `CLAIM TO VERIFY: "Some claim text."`))
	assert.Equal(t, true, strings.Contains(prompt, "5. Source: sourcee.example"))
	assert.Equal(t, false, strings.Contains(prompt, "6. Source:"))
}

func TestSynthesize_RepairsPayload(t *testing.T) {
	tests := []struct {
		name           string
		reply          string
		wantClass      model.Classification
		wantConfidence float64
		wantReason     string
	}{
		{
			name:           "unknown classification",
			reply:          `{"classification":"Partly True","reason":"mixed","confidence":0.6}`,
			wantClass:      model.Unverifiable,
			wantConfidence: 0.6,
			wantReason:     "mixed",
		},
		{
			name:           "confidence above range",
			reply:          `{"classification":"Verified","reason":"r","confidence":1.7}`,
			wantClass:      model.Verified,
			wantConfidence: 1.0,
			wantReason:     "r",
		},
		{
			name:           "confidence below range",
			reply:          `{"classification":"Verified","reason":"r","confidence":-3}`,
			wantClass:      model.Verified,
			wantConfidence: 0.0,
			wantReason:     "r",
		},
		{
			name:           "confidence as string",
			reply:          `{"classification":"Verified","reason":"r","confidence":"0.9"}`,
			wantClass:      model.Verified,
			wantConfidence: 0.5,
			wantReason:     "r",
		},
		{
			name:           "confidence as bool",
			reply:          `{"classification":"Verified","reason":"r","confidence":true}`,
			wantClass:      model.Verified,
			wantConfidence: 0.5,
			wantReason:     "r",
		},
		{
			name:           "confidence missing",
			reply:          `{"classification":"Verified","reason":"r"}`,
			wantClass:      model.Verified,
			wantConfidence: 0.5,
			wantReason:     "r",
		},
		{
			name:           "empty reason",
			reply:          `{"classification":"Verified","reason":"   ","confidence":0.8}`,
			wantClass:      model.Verified,
			wantConfidence: 0.8,
			wantReason:     reasonDefault,
		},
		{
			name:           "reason not a string",
			reply:          `{"classification":"Verified","reason":["a"],"confidence":0.8}`,
			wantClass:      model.Verified,
			wantConfidence: 0.8,
			wantReason:     reasonDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(&fakeGenerator{verdict: tt.reply}, time.Second)

			v := s.Synthesize(context.Background(), "claim", evidenceFixture(2))

			assert.Equal(t, tt.wantClass, v.Classification)
			assert.Equal(t, tt.wantConfidence, v.Confidence)
			assert.Equal(t, tt.wantReason, v.Reason)
			assert.Equal(t, 2, len(v.Sources))
		})
	}
}

func TestSynthesize_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "malformed JSON", reply: `{"classification": "Verified",`},
		{name: "prose only", reply: "The claim appears to be true."},
		{name: "array instead of object", reply: `["Verified"]`},
		{name: "JSON null", reply: `null`},
		{name: "call error", err: errUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(&fakeGenerator{verdict: tt.reply, verdictErr: tt.err}, time.Second)
			evidence := evidenceFixture(5)

			v := s.Synthesize(context.Background(), "claim", evidence)

			assert.Equal(t, model.Unverifiable, v.Classification)
			assert.Equal(t, 0.3, v.Confidence)
			assert.Equal(t, reasonTechnicalLimits, v.Reason)
			assert.Equal(t, 3, len(v.Evidence))
			assert.Equal(t, []string{evidence[0].Link, evidence[1].Link, evidence[2].Link}, v.Sources)
		})
	}
}

type panickingGenerator struct{}

func (panickingGenerator) Name() string {
	return "panicking-model"
}

func (panickingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	panic("model client blew up")
}

func TestSynthesize_GeneratorPanicFallsBack(t *testing.T) {
	before := testutil.ToFloat64(fallbacksTotal.WithLabelValues(componentSynthesizer, reasonPanic))
	s := NewSynthesizer(panickingGenerator{}, time.Second)
	evidence := evidenceFixture(4)

	v := s.Synthesize(context.Background(), "claim", evidence)

	assert.Equal(t, model.Unverifiable, v.Classification)
	assert.Equal(t, 0.3, v.Confidence)
	assert.Equal(t, reasonTechnicalLimits, v.Reason)
	assert.Equal(t, []string{evidence[0].Link, evidence[1].Link, evidence[2].Link}, v.Sources)
	assert.Equal(t, before+1, testutil.ToFloat64(fallbacksTotal.WithLabelValues(componentSynthesizer, reasonPanic)))
}

func TestSynthesize_NoEvidence(t *testing.T) {
	s := NewSynthesizer(&fakeGenerator{verdict: `{"classification":"Unverifiable","reason":"Nothing found.","confidence":0.2}`}, time.Second)

	v := s.Synthesize(context.Background(), "claim", nil)

	assert.Equal(t, model.Unverifiable, v.Classification)
	assert.Equal(t, 0, len(v.Sources))
	assert.Equal(t, 0, len(v.Evidence))
}
