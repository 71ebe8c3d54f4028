package repo_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

// DraftCache holds at most one in-progress request per owner session. Save
// overwrites without warning, Load returns nil when the slot is empty and
// Clear on an empty slot is a no-op.
type DraftCache interface {
	Save(ctx context.Context, sessionID string, draft domain.FundsRequest) error
	Load(ctx context.Context, sessionID string) (*domain.FundsRequest, error)
	Clear(ctx context.Context, sessionID string) error
}
