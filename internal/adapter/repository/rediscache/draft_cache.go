package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/redis/go-redis/v9"
)

const draftNamespace = "draft"

// DraftCache keeps the single in-progress request per owner session in redis
// so a draft survives a page reload. Entries expire after the configured TTL;
// an expired draft is the same as an abandoned one.
type DraftCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftCache(addr, password string, ttl time.Duration) *DraftCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &DraftCache{client: client, ttl: ttl}
}

func (c *DraftCache) Save(ctx context.Context, sessionID string, draft domain.FundsRequest) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := c.client.Set(ctx, draftKey(sessionID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

func (c *DraftCache) Load(ctx context.Context, sessionID string) (*domain.FundsRequest, error) {
	payload, err := c.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var draft domain.FundsRequest
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}

	return &draft, nil
}

func (c *DraftCache) Clear(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}

	return nil
}

func (c *DraftCache) Close() error {
	return c.client.Close()
}

func draftKey(sessionID string) string {
	return draftNamespace + ":" + sessionID
}
