package verify

import (
	"context"
	"log/slog"

	"agni/internal/model"

	"golang.org/x/sync/errgroup"
)

const (
	maxSearchedClaims = 3
	resultsPerClaim   = 3
)

type Searcher interface {
	Search(ctx context.Context, query string, limit int) []model.EvidenceRecord
}

type Aggregator struct {
	searcher Searcher
}

func NewAggregator(searcher Searcher) *Aggregator {
	return &Aggregator{searcher: searcher}
}

// Aggregate searches the first three claims concurrently, skipping the
// no-claims sentinel, and concatenates the results in claim order.
func (a *Aggregator) Aggregate(ctx context.Context, claims []string) []model.EvidenceRecord {
	queries := searchableClaims(claims)
	if len(queries) == 0 {
		return []model.EvidenceRecord{}
	}

	slots := make([][]model.EvidenceRecord, len(queries))

	var g errgroup.Group
	for i, query := range queries {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("search task failed", "claim", truncate(query, 50), "panic", r)
					fallbacksTotal.WithLabelValues(componentAggregator, reasonPanic).Inc()
				}
			}()

			slots[i] = a.searcher.Search(ctx, query, resultsPerClaim)
			return nil
		})
	}
	g.Wait()

	evidence := []model.EvidenceRecord{}
	for _, slot := range slots {
		evidence = append(evidence, slot...)
	}
	return evidence
}

func searchableClaims(claims []string) []string {
	if len(claims) > maxSearchedClaims {
		claims = claims[:maxSearchedClaims]
	}

	queries := make([]string, 0, len(claims))
	for _, c := range claims {
		if c != model.NoVerifiableClaims {
			queries = append(queries, c)
		}
	}
	return queries
}
