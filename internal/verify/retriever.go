package verify

import (
	"context"
	"log/slog"
	"time"

	"agni/internal/model"
	"agni/pkg/search"
)

type EvidenceCache interface {
	Get(ctx context.Context, query string, limit int) ([]model.EvidenceRecord, bool, error)
	Set(ctx context.Context, query string, limit int, records []model.EvidenceRecord) error
}

type Retriever struct {
	client  search.Client
	cache   EvidenceCache
	timeout time.Duration
}

// NewRetriever accepts a nil client (search disabled) and a nil cache.
func NewRetriever(client search.Client, cache EvidenceCache, timeout time.Duration) *Retriever {
	return &Retriever{client: client, cache: cache, timeout: timeout}
}

// Search never fails; every error path yields an empty slice. At most limit
// records are returned.
func (r *Retriever) Search(ctx context.Context, query string, limit int) []model.EvidenceRecord {
	if limit <= 0 {
		return []model.EvidenceRecord{}
	}
	if r.client == nil {
		slog.Warn("search API not configured")
		fallbacksTotal.WithLabelValues(componentRetriever, reasonDisabled).Inc()
		return []model.EvidenceRecord{}
	}

	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx, query, limit)
		if err != nil {
			slog.Warn("evidence cache read failed", "error", err)
		} else if ok {
			slog.Info("evidence cache hit", "count", len(cached), "query", truncate(query, 50))
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached
		}
	}

	searchCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	results, err := r.client.Search(searchCtx, query, limit)
	if err != nil {
		slog.Error("search error", "source", r.client.Name(), "error", err)
		fallbacksTotal.WithLabelValues(componentRetriever, reasonUpstream).Inc()
		return []model.EvidenceRecord{}
	}

	if len(results) > limit {
		results = results[:limit]
	}

	records := make([]model.EvidenceRecord, 0, len(results))
	for _, res := range results {
		records = append(records, model.EvidenceRecord{
			Title:   res.Title,
			Link:    res.Link,
			Snippet: res.Snippet,
			Source:  res.Source,
		})
	}

	slog.Info("found search results", "count", len(records), "query", truncate(query, 50))

	if r.cache != nil && len(records) > 0 {
		if err := r.cache.Set(ctx, query, limit, records); err != nil {
			slog.Warn("evidence cache write failed", "error", err)
		}
	}

	return records
}
