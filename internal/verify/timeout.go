package verify

import (
	"context"
	"time"
)

// DefaultUpstreamTimeout bounds every generative and search call.
const DefaultUpstreamTimeout = 10 * time.Second

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultUpstreamTimeout
	}
	return context.WithTimeout(ctx, d)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
