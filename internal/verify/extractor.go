package verify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"agni/pkg/llm"
)

const maxFallbackClaimChars = 200

type Extractor struct {
	generator llm.Generator
	timeout   time.Duration
}

// NewExtractor accepts a nil generator; Extract then returns the input as
// the only claim.
func NewExtractor(generator llm.Generator, timeout time.Duration) *Extractor {
	return &Extractor{generator: generator, timeout: timeout}
}

// Extract always returns at least one claim.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	if e.generator == nil {
		fallbacksTotal.WithLabelValues(componentExtractor, reasonDisabled).Inc()
		return []string{text}
	}

	ctx, cancel := withTimeout(ctx, e.timeout)
	defer cancel()

	content, err := e.generator.Generate(ctx, llm.ClaimExtractionPrompt(text))
	if err != nil {
		slog.Error("error extracting claims", "error", err)
		fallbacksTotal.WithLabelValues(componentExtractor, reasonUpstream).Inc()
		return fallbackClaims(text)
	}

	claims, ok := parseClaims(content)
	if !ok {
		slog.Warn("failed to parse claims JSON, using fallback", "content", truncate(content, 200))
		fallbacksTotal.WithLabelValues(componentExtractor, reasonMalformed).Inc()
		return fallbackClaims(text)
	}

	slog.Info("extracted claims", "count", len(claims), "claims", claims)
	return claims
}

func parseClaims(content string) ([]string, bool) {
	var raw []any
	if err := json.Unmarshal([]byte(llm.CleanJSONResponse(content)), &raw); err != nil {
		return nil, false
	}

	claims := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			claims = append(claims, s)
		}
	}

	return claims, len(claims) > 0
}

func fallbackClaims(text string) []string {
	return []string{truncate(text, maxFallbackClaimChars)}
}
