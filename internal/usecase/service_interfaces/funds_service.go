package service_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
)

type FundsService interface {
	BeginDeposit(ctx context.Context, sessionID string, req models.BeginDepositRequest) (commons.Response[models.DraftResponse], error)
	BeginWithdrawal(ctx context.Context, sessionID string, req models.BeginWithdrawalRequest) (commons.Response[models.DraftResponse], error)
	CurrentDraft(ctx context.Context, sessionID string) (commons.Response[models.DraftResponse], error)
	AbandonDraft(ctx context.Context, sessionID string) (commons.Response[models.DraftResponse], error)
	GetRequest(ctx context.Context, id string) (commons.Response[models.FundsRequestResponse], error)
	ListRequests(ctx context.Context, sessionID string, kind string) (commons.Response[models.ListRequestsResponse], error)
	ListBanks(ctx context.Context) (commons.Response[[]models.SupportedBankResponse], error)
}
