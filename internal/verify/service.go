package verify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agni/internal/config"
	"agni/internal/model"
	"agni/pkg/llm"
	"agni/pkg/search"
)

const reasonServiceError = "Service temporarily unavailable due to technical error."

type ClaimExtractor interface {
	Extract(ctx context.Context, text string) []string
}

type EvidenceAggregator interface {
	Aggregate(ctx context.Context, claims []string) []model.EvidenceRecord
}

type VerdictSynthesizer interface {
	Synthesize(ctx context.Context, text string, evidence []model.EvidenceRecord) model.Verdict
}

// Service runs extraction, evidence aggregation and verdict synthesis for
// one piece of text.
type Service struct {
	extractor   ClaimExtractor
	aggregator  EvidenceAggregator
	synthesizer VerdictSynthesizer
	now         func() time.Time
}

func NewService(extractor ClaimExtractor, aggregator EvidenceAggregator, synthesizer VerdictSynthesizer) *Service {
	return &Service{
		extractor:   extractor,
		aggregator:  aggregator,
		synthesizer: synthesizer,
		now:         time.Now,
	}
}

// NewFromConfig wires the default pipeline. generator, client and cache may
// each be nil when the matching capability is not configured.
func NewFromConfig(cfg config.Config, generator llm.Generator, client search.Client, cache EvidenceCache) *Service {
	retriever := NewRetriever(client, cache, cfg.UpstreamTimeout)
	return NewService(
		NewExtractor(generator, cfg.UpstreamTimeout),
		NewAggregator(retriever),
		NewSynthesizer(generator, cfg.UpstreamTimeout),
	)
}

// Verify always returns a response. A panic anywhere in the pipeline is
// turned into a degraded Unverifiable response.
func (s *Service) Verify(ctx context.Context, text string) (resp model.VerificationResponse) {
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("verification failed", "panic", r)
			fallbacksTotal.WithLabelValues(componentService, reasonPanic).Inc()
			resp = degradedResponse(start, s.now())
		}
		verificationsTotal.WithLabelValues(string(resp.Classification)).Inc()
		verificationDuration.Observe(resp.ProcessingTime.Seconds())
	}()

	slog.Info("new verification request", "text", truncate(text, 100))

	claims := s.extractor.Extract(ctx, text)
	evidence := s.aggregator.Aggregate(ctx, claims)
	verdict := s.synthesizer.Synthesize(ctx, text, evidence)

	end := s.now()
	resp = model.VerificationResponse{
		Verdict:        normalizeVerdict(verdict),
		Timestamp:      end,
		ProcessingTime: elapsed(start, end),
	}

	slog.Info("verification completed",
		"classification", resp.Classification,
		"confidence", resp.Confidence,
		"sources", len(resp.Sources),
		"processing_time", resp.ProcessingTime.Seconds(),
	)
	return resp
}

func normalizeVerdict(v model.Verdict) model.Verdict {
	v.Classification = model.ParseClassification(string(v.Classification))
	v.Confidence = model.ClampConfidence(v.Confidence)
	if strings.TrimSpace(v.Reason) == "" {
		v.Reason = reasonDefault
	}
	if v.Sources == nil {
		v.Sources = []string{}
	}
	if v.Evidence == nil {
		v.Evidence = []model.EvidenceRecord{}
	}
	return v
}

func degradedResponse(start, end time.Time) model.VerificationResponse {
	return model.VerificationResponse{
		Verdict: model.Verdict{
			Classification: model.Unverifiable,
			Reason:         reasonServiceError,
			Confidence:     0,
			Sources:        []string{},
			Evidence:       []model.EvidenceRecord{},
		},
		Timestamp:      end,
		ProcessingTime: elapsed(start, end),
	}
}

func elapsed(start, end time.Time) time.Duration {
	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}
