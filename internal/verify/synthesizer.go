package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agni/internal/model"
	"agni/pkg/llm"
)

const (
	maxVerdictEvidence  = 5
	maxFallbackEvidence = 3

	disabledConfidence    = 0.3
	fallbackConfidence    = 0.3
	nonNumericConfidence  = 0.5
	reasonAIUnavailable   = "AI analysis unavailable - API key not configured"
	reasonTechnicalLimits = "Unable to complete analysis due to technical limitations."
	reasonDefault         = "Analysis completed with available information."
)

type Synthesizer struct {
	generator llm.Generator
	timeout   time.Duration
}

func NewSynthesizer(generator llm.Generator, timeout time.Duration) *Synthesizer {
	return &Synthesizer{generator: generator, timeout: timeout}
}

// Synthesize never fails. The model only decides classification, reason,
// confidence and findings; sources and evidence always come from the input.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, evidence []model.EvidenceRecord) (verdict model.Verdict) {
	if s.generator == nil {
		fallbacksTotal.WithLabelValues(componentSynthesizer, reasonDisabled).Inc()
		records, links := model.FirstN(evidence, maxVerdictEvidence)
		return model.Verdict{
			Classification: model.Unverifiable,
			Reason:         reasonAIUnavailable,
			Confidence:     disabledConfidence,
			Sources:        links,
			Evidence:       records,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("AI analysis panicked", "panic", r)
			fallbacksTotal.WithLabelValues(componentSynthesizer, reasonPanic).Inc()
			verdict = fallbackVerdict(evidence)
		}
	}()

	verdict, err := s.analyze(ctx, text, evidence)
	if err != nil {
		slog.Error("AI analysis error", "error", err)
		return fallbackVerdict(evidence)
	}

	slog.Info("verdict synthesized",
		"classification", verdict.Classification,
		"confidence", verdict.Confidence,
		"key_findings", len(verdict.KeyFindings),
	)
	return verdict
}

func (s *Synthesizer) analyze(ctx context.Context, text string, evidence []model.EvidenceRecord) (model.Verdict, error) {
	records, links := model.FirstN(evidence, maxVerdictEvidence)

	inputs := make([]llm.EvidenceInput, len(records))
	for i, r := range records {
		inputs[i] = llm.EvidenceInput{
			Source:  r.Source,
			Title:   r.Title,
			Snippet: r.Snippet,
			Link:    r.Link,
		}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.generator.Generate(ctx, llm.VerdictPrompt(text, inputs))
	if err != nil {
		fallbacksTotal.WithLabelValues(componentSynthesizer, reasonUpstream).Inc()
		return model.Verdict{}, err
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(llm.CleanJSONResponse(content)), &parsed); err != nil {
		fallbacksTotal.WithLabelValues(componentSynthesizer, reasonMalformed).Inc()
		return model.Verdict{}, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if parsed == nil {
		fallbacksTotal.WithLabelValues(componentSynthesizer, reasonMalformed).Inc()
		return model.Verdict{}, errors.New("failed to parse AI response: not a JSON object")
	}

	verdict := repairVerdict(parsed)
	verdict.Sources = links
	verdict.Evidence = records
	return verdict, nil
}

// repairVerdict coerces an untrusted model payload into a valid Verdict.
func repairVerdict(parsed map[string]any) model.Verdict {
	verdict := model.Verdict{
		Classification: model.ParseClassification(parsed["classification"]),
		Confidence:     nonNumericConfidence,
		Reason:         reasonDefault,
	}

	if c, ok := parsed["confidence"].(float64); ok {
		verdict.Confidence = model.ClampConfidence(c)
	}

	if reason, ok := parsed["reason"].(string); ok && strings.TrimSpace(reason) != "" {
		verdict.Reason = reason
	}

	if findings, ok := parsed["key_findings"].([]any); ok {
		for _, f := range findings {
			if s, ok := f.(string); ok && s != "" {
				verdict.KeyFindings = append(verdict.KeyFindings, s)
			}
		}
	}

	return verdict
}

func fallbackVerdict(evidence []model.EvidenceRecord) model.Verdict {
	records, links := model.FirstN(evidence, maxFallbackEvidence)
	return model.Verdict{
		Classification: model.Unverifiable,
		Reason:         reasonTechnicalLimits,
		Confidence:     fallbackConfidence,
		Sources:        links,
		Evidence:       records,
	}
}
