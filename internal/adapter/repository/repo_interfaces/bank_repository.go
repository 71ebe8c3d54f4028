package repo_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type BankRepository interface {
	GetAll(ctx context.Context) ([]domain.SupportedBank, error)
}
