package verify

import (
	"context"
	"log/slog"

	"agni/db"
	"agni/internal/config"
	"agni/pkg/llm"
	"agni/pkg/search"
)

// Capabilities reports which upstream clients were actually built.
type Capabilities struct {
	Generative bool
	Search     bool
	Cache      bool
}

// Bootstrap builds the upstream clients described by cfg and wires them into
// a Service. A client that cannot be built is logged and left disabled, and
// the returned Capabilities reflect that. The returned func releases the
// evidence cache connection.
func Bootstrap(ctx context.Context, cfg config.Config) (*Service, Capabilities, func()) {
	var generator llm.Generator
	if cfg.GenerativeEnabled() {
		gen, err := llm.New(ctx, cfg.LLMProvider, cfg.GenerativeKey(), cfg.LLMModel)
		if err != nil {
			slog.Error("failed to configure generative AI, disabling it", "provider", cfg.LLMProvider, "error", err)
		} else {
			generator = gen
			slog.Info("generative AI configured", "provider", cfg.LLMProvider, "model", gen.Name())
		}
	}

	var searchClient search.Client
	if cfg.SearchEnabled() {
		client, err := search.NewGoogleClient(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
		if err != nil {
			slog.Error("failed to configure search API, disabling it", "error", err)
		} else {
			searchClient = client
			slog.Info("search API configured", "source", client.Name())
		}
	}

	var cache EvidenceCache
	cleanup := func() {}
	if cfg.CacheEnabled() {
		redisClient, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("evidence cache unavailable, continuing without it", "error", err)
		} else {
			cache = db.NewEvidenceCache(redisClient, cfg.EvidenceCacheTTL)
			cleanup = func() { db.CloseRedis(redisClient) }
			slog.Info("evidence cache configured", "ttl", cfg.EvidenceCacheTTL)
		}
	}

	caps := Capabilities{
		Generative: generator != nil,
		Search:     searchClient != nil,
		Cache:      cache != nil,
	}

	return NewFromConfig(cfg, generator, searchClient, cache), caps, cleanup
}
