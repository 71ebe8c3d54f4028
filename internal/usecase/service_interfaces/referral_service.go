package service_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type ReferralService interface {
	GetNetwork(ctx context.Context, rootID string) (commons.Response[models.ReferralNetworkResponse], error)
	GetCommissionSummary(ctx context.Context, rootID string) (commons.Response[models.CommissionSummaryResponse], error)
	Network(ctx context.Context, rootID string) (domain.ReferralTree, error)
	Commissions(ctx context.Context, rootID string) ([]domain.CommissionAttribution, error)
}
