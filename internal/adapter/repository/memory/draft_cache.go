package memory

import (
	"context"
	"sync"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

// DraftCache holds the single draft slot per session in memory. Save
// overwrites, Clear on an empty slot is a no-op.
type DraftCache struct {
	mu     sync.Mutex
	drafts map[string]domain.FundsRequest
}

func NewDraftCache() *DraftCache {
	return &DraftCache{drafts: make(map[string]domain.FundsRequest)}
}

func (c *DraftCache) Save(_ context.Context, sessionID string, draft domain.FundsRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[sessionID] = draft
	return nil
}

func (c *DraftCache) Load(_ context.Context, sessionID string) (*domain.FundsRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, ok := c.drafts[sessionID]
	if !ok {
		return nil, nil
	}

	return &draft, nil
}

func (c *DraftCache) Clear(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, sessionID)
	return nil
}
