package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type FundsKind string

const (
	FundsKindDeposit    FundsKind = "DEPOSIT"
	FundsKindWithdrawal FundsKind = "WITHDRAWAL"
)

type FundsState string

const (
	FundsStateDraft     FundsState = "DRAFT"
	FundsStatePending   FundsState = "PENDING"
	FundsStateProcessed FundsState = "PROCESSED"
	FundsStateRejected  FundsState = "REJECTED"
)

// DisplayStatus is the three-way vocabulary shown to users. The strings are
// used verbatim on every user-facing surface.
type DisplayStatus string

const (
	DisplayStatusPending   DisplayStatus = "Pendente"
	DisplayStatusProcessed DisplayStatus = "Processado"
	DisplayStatusRejected  DisplayStatus = "Rejeitado"
)

type Counterparty struct {
	BankName        string
	IBAN            string
	BeneficiaryName string
}

type FundsRequest struct {
	ID              string
	OwnerID         string
	Kind            FundsKind
	RequestedAmount decimal.Decimal
	Counterparty    Counterparty
	PayerName       string
	FeeRate         decimal.Decimal
	State           FundsState
	CreatedAt       time.Time
}

// NetAmount applies the withdrawal fee. Deposits are credited in full.
func (r FundsRequest) NetAmount() decimal.Decimal {
	if r.Kind != FundsKindWithdrawal {
		return r.RequestedAmount
	}
	return r.RequestedAmount.Mul(decimal.NewFromInt(1).Sub(r.FeeRate))
}

// ValidateForCreate checks the fields every stored record must carry: a
// positive amount and a complete counterparty. Stores reject records that
// fail it, independent of any caller-side validation.
func (r FundsRequest) ValidateForCreate() error {
	if r.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("non_positive_amount", "requested amount must be greater than zero")
	}
	if strings.TrimSpace(r.Counterparty.BankName) == "" ||
		strings.TrimSpace(r.Counterparty.IBAN) == "" ||
		strings.TrimSpace(r.Counterparty.BeneficiaryName) == "" {
		return NewValidationError("missing_counterparty", "bank name, IBAN and beneficiary name are required")
	}
	return nil
}

var stateRank = map[FundsState]int{
	FundsStateDraft:     0,
	FundsStatePending:   1,
	FundsStateProcessed: 2,
	FundsStateRejected:  2,
}

// CanTransition reports whether a state change moves forward. Terminal states
// never move again and Pending never returns to Draft.
func CanTransition(from, to FundsState) bool {
	if from == FundsStateProcessed || from == FundsStateRejected {
		return false
	}
	return stateRank[to] > stateRank[from]
}

// StatusProjection is the read-time view of a request. Escalated marks a
// Pending record displayed as Processado because the SLA window has elapsed;
// the stored state is untouched in that case.
type StatusProjection struct {
	Status    DisplayStatus
	Progress  decimal.Decimal
	Escalated bool
}

type Profile struct {
	OwnerID    string
	Phone      string
	InviteCode string
	FullName   string
}

type SupportedBank struct {
	BankName string
	BankCode string
}
