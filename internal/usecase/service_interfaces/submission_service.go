package service_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
)

type SubmissionService interface {
	SubmitDeposit(ctx context.Context, sessionID string, req models.SubmitDepositRequest) (commons.Response[models.SubmitResponse], error)
	SubmitWithdrawal(ctx context.Context, sessionID string) (commons.Response[models.SubmitResponse], error)
}
