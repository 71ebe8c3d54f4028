package memory

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type BankRepository struct{}

func NewBankRepository() *BankRepository {
	return &BankRepository{}
}

func (r *BankRepository) GetAll(_ context.Context) ([]domain.SupportedBank, error) {
	banks := []domain.SupportedBank{
		{BankName: "BAI", BankCode: "0040"},
		{BankName: "BFA", BankCode: "0006"},
		{BankName: "BIC", BankCode: "0051"},
		{BankName: "BPC", BankCode: "0010"},
		{BankName: "Banco Atlantico", BankCode: "0055"},
		{BankName: "Banco Sol", BankCode: "0044"},
		{BankName: "Standard Bank Angola", BankCode: "0060"},
		{BankName: "Banco Keve", BankCode: "0047"},
	}

	return banks, nil
}
