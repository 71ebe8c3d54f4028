package repo_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type FundsRepository interface {
	Create(ctx context.Context, request domain.FundsRequest) (domain.FundsRequest, error)
	Get(ctx context.Context, id string) (domain.FundsRequest, error)
	ListByOwner(ctx context.Context, ownerID string, kind *domain.FundsKind) ([]domain.FundsRequest, error)
	UpdateState(ctx context.Context, id string, state domain.FundsState) error
}
