package services_test

import (
	"context"
	"errors"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type stubAccountService struct {
	ownerID string
	profile domain.Profile
	err     error
}

func (s *stubAccountService) CurrentOwner(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.ownerID, nil
}

func (s *stubAccountService) GetProfile(_ context.Context, ownerID string) (domain.Profile, error) {
	if s.err != nil {
		return domain.Profile{}, s.err
	}
	profile := s.profile
	profile.OwnerID = ownerID
	return profile, nil
}

type stubNotifier struct {
	messages []string
	err      error
}

func (n *stubNotifier) OpenExternalChat(_ context.Context, prefilledText string) error {
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, prefilledText)
	return nil
}

func testCounterparty() domain.Counterparty {
	return domain.Counterparty{
		BankName:        "BAI",
		IBAN:            "AO06004000001234567890123",
		BeneficiaryName: "Amazo Pagamentos LDA",
	}
}

var errStoreDown = errors.New("store unavailable")

type failingFundsRepo struct{}

func (failingFundsRepo) Create(context.Context, domain.FundsRequest) (domain.FundsRequest, error) {
	return domain.FundsRequest{}, errStoreDown
}

func (failingFundsRepo) Get(context.Context, string) (domain.FundsRequest, error) {
	return domain.FundsRequest{}, errStoreDown
}

func (failingFundsRepo) ListByOwner(context.Context, string, *domain.FundsKind) ([]domain.FundsRequest, error) {
	return nil, errStoreDown
}

func (failingFundsRepo) UpdateState(context.Context, string, domain.FundsState) error {
	return errStoreDown
}
