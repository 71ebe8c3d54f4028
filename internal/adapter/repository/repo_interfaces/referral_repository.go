package repo_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type ReferralRepository interface {
	ListInvitees(ctx context.Context, inviterID string) ([]domain.ReferralEdge, error)
}
