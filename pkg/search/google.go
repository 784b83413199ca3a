package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// recentResults limits results to the last six months.
const recentResults = "m6"

type GoogleClient struct {
	service  *customsearch.Service
	engineID string
}

func NewGoogleClient(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*GoogleClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google search client: %w", err)
	}

	return &GoogleClient{service: service, engineID: engineID}, nil
}

func (c *GoogleClient) Name() string {
	return "GoogleSearch"
}

func (c *GoogleClient) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	res, err := c.service.Cse.List().
		Cx(c.engineID).
		Q(query).
		Num(int64(limit)).
		DateRestrict(recentResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}

	results := make([]Result, 0, len(res.Items))
	for i, item := range res.Items {
		if item == nil || item.Link == "" {
			slog.Warn("skipping unusable search result", "index", i, "query", query)
			continue
		}

		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Source:  sourceDomain(item.DisplayLink, item.Link),
		})
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

// sourceDomain prefers the display link and falls back to the link's host.
func sourceDomain(displayLink, link string) string {
	source := displayLink
	if source == "" {
		source = link
		if u, err := url.Parse(link); err == nil && u.Host != "" {
			source = u.Host
		}
	}
	return strings.TrimPrefix(source, "www.")
}
