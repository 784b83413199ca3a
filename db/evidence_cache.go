package db

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"agni/internal/model"

	"github.com/redis/go-redis/v9"
)

// EvidenceCache stores search results per (query, limit) for a fixed TTL.
type EvidenceCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewEvidenceCache(client redis.Cmdable, ttl time.Duration) *EvidenceCache {
	return &EvidenceCache{client: client, ttl: ttl}
}

// Get reports a miss as (nil, false, nil).
func (c *EvidenceCache) Get(ctx context.Context, query string, limit int) ([]model.EvidenceRecord, bool, error) {
	raw, err := c.client.Get(ctx, EvidenceKey(query, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("evidence cache get: %w", err)
	}

	var records []model.EvidenceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, fmt.Errorf("evidence cache decode: %w", err)
	}
	return records, true, nil
}

func (c *EvidenceCache) Set(ctx context.Context, query string, limit int, records []model.EvidenceRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("evidence cache encode: %w", err)
	}

	if err := c.client.Set(ctx, EvidenceKey(query, limit), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("evidence cache set: %w", err)
	}
	return nil
}

func EvidenceKey(query string, limit int) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", limit, normalized)))
	return EvidenceKeyPrefix + fmt.Sprintf("%x", sum)[:32]
}
