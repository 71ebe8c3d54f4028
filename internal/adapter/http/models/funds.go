package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BeginDepositRequest struct {
	Amount          string `json:"amount"`
	BankName        string `json:"bankName"`
	IBAN            string `json:"iban"`
	BeneficiaryName string `json:"beneficiaryName"`
}

func (r BeginDepositRequest) Validate() error {
	return validateBeginRequest(r.Amount, r.BankName, r.IBAN, r.BeneficiaryName)
}

type BeginWithdrawalRequest struct {
	Amount          string `json:"amount"`
	BankName        string `json:"bankName"`
	IBAN            string `json:"iban"`
	BeneficiaryName string `json:"beneficiaryName"`
}

func (r BeginWithdrawalRequest) Validate() error {
	return validateBeginRequest(r.Amount, r.BankName, r.IBAN, r.BeneficiaryName)
}

func validateBeginRequest(amount, bankName, iban, beneficiaryName string) error {
	var errs []string

	trimmedAmount := strings.TrimSpace(amount)
	if trimmedAmount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(trimmedAmount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if strings.TrimSpace(bankName) == "" {
		errs = append(errs, "bankName is required")
	}
	if strings.TrimSpace(iban) == "" {
		errs = append(errs, "iban is required")
	}
	if strings.TrimSpace(beneficiaryName) == "" {
		errs = append(errs, "beneficiaryName is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type SubmitDepositRequest struct {
	PayerName string `json:"payerName"`
}

type FundsRequestResponse struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	RequestedAmount string    `json:"requestedAmount"`
	NetAmount       string    `json:"netAmount"`
	BankName        string    `json:"bankName"`
	IBAN            string    `json:"iban"`
	BeneficiaryName string    `json:"beneficiaryName"`
	PayerName       string    `json:"payerName,omitempty"`
	Status          string    `json:"status"`
	Progress        string    `json:"progress"`
	CreatedAt       time.Time `json:"createdAt"`
}

type DraftResponse struct {
	Draft *FundsRequestResponse `json:"draft"`
}

type SubmitResponse struct {
	Request        FundsRequestResponse `json:"request"`
	HandoffMessage string               `json:"handoffMessage"`
}

type ListRequestsResponse struct {
	Items []FundsRequestResponse `json:"items"`
}

type SupportedBankResponse struct {
	BankName string `json:"bankName"`
	BankCode string `json:"bankCode"`
}
