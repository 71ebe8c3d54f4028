package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/memory"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newSubmissionFixture(funds *memory.FundsRepository) (*services.SubmissionService, *memory.DraftCache, *stubNotifier) {
	cache := memory.NewDraftCache()
	notifier := &stubNotifier{}
	account := &stubAccountService{
		ownerID: "owner-1",
		profile: domain.Profile{Phone: "+244923000111", FullName: "Maria Sousa", InviteCode: "MS2026"},
	}
	status := services.NewStatusService(24 * time.Hour)

	svc := services.NewSubmissionService(funds, cache, status, account, notifier, "Kz")
	return svc, cache, notifier
}

func depositDraft(amount decimal.Decimal) domain.FundsRequest {
	return domain.FundsRequest{
		OwnerID:         "owner-1",
		Kind:            domain.FundsKindDeposit,
		RequestedAmount: amount,
		Counterparty: domain.Counterparty{
			BankName:        "BAI",
			IBAN:            "AO06004000001234567890123",
			BeneficiaryName: "Amazo Pagamentos LDA",
		},
		State:     domain.FundsStateDraft,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSubmitDepositPromotesDraftAndClearsCache(t *testing.T) {
	ctx := context.Background()
	funds := memory.NewFundsRepository()
	svc, cache, notifier := newSubmissionFixture(funds)

	if err := cache.Save(ctx, "sess-1", depositDraft(decimal.RequireFromString("33500.00"))); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	resp, err := svc.SubmitDeposit(ctx, "sess-1", models.SubmitDepositRequest{PayerName: "  Maria Sousa  "})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}

	created, err := funds.Get(ctx, resp.Data.Request.ID)
	if err != nil {
		t.Fatalf("fetch created record: %v", err)
	}
	if created.State != domain.FundsStatePending {
		t.Fatalf("expected Pending state, got %s", created.State)
	}
	if !created.NetAmount().Equal(decimal.RequireFromString("33500.00")) {
		t.Fatalf("expected net amount 33500.00, got %s", created.NetAmount().String())
	}
	if created.PayerName != "Maria Sousa" {
		t.Fatalf("expected trimmed payer name, got %q", created.PayerName)
	}

	draft, err := cache.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if draft != nil {
		t.Fatal("expected cache to be empty after submission")
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("expected one hand-off message, got %d", len(notifier.messages))
	}
	message := notifier.messages[0]
	if message != "Maria Sousa (+244923000111) | Depósito | 33.500,00 Kz | BAI | Maria Sousa" {
		t.Fatalf("unexpected hand-off message: %q", message)
	}
	if resp.Data.HandoffMessage != message {
		t.Fatal("response must carry the same hand-off message")
	}
}

func TestSubmitDepositRequiresPayerName(t *testing.T) {
	ctx := context.Background()
	funds := memory.NewFundsRepository()
	svc, cache, _ := newSubmissionFixture(funds)

	if err := cache.Save(ctx, "sess-1", depositDraft(decimal.NewFromInt(5000))); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	resp, err := svc.SubmitDeposit(ctx, "sess-1", models.SubmitDepositRequest{PayerName: "   "})
	if err == nil {
		t.Fatal("expected validation error for missing payer name")
	}
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != "missing_payer_name" {
		t.Fatalf("expected missing_payer_name, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected error response")
	}

	draft, _ := cache.Load(ctx, "sess-1")
	if draft == nil {
		t.Fatal("draft must survive a validation failure")
	}
}

func TestSubmitWithdrawalAppliesFee(t *testing.T) {
	ctx := context.Background()
	funds := memory.NewFundsRepository()
	svc, cache, notifier := newSubmissionFixture(funds)

	draft := depositDraft(decimal.NewFromInt(100000))
	draft.Kind = domain.FundsKindWithdrawal
	draft.FeeRate = decimal.RequireFromString("0.12")
	if err := cache.Save(ctx, "sess-1", draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	resp, err := svc.SubmitWithdrawal(ctx, "sess-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Request.NetAmount != "88000.00" {
		t.Fatalf("expected net amount 88000.00, got %s", resp.Data.Request.NetAmount)
	}
	if !strings.Contains(notifier.messages[0], "88.000,00 Kz") {
		t.Fatalf("expected formatted net amount in message, got %q", notifier.messages[0])
	}
	if !strings.Contains(notifier.messages[0], "Levantamento") {
		t.Fatalf("expected withdrawal verb in message, got %q", notifier.messages[0])
	}
}

func TestSubmitPreservesDraftOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewDraftCache()
	notifier := &stubNotifier{}

	failing := services.NewSubmissionService(
		failingFundsRepo{},
		cache,
		services.NewStatusService(24*time.Hour),
		&stubAccountService{ownerID: "owner-1", profile: domain.Profile{Phone: "+244923000111", FullName: "Maria Sousa"}},
		notifier,
		"Kz",
	)

	if err := cache.Save(ctx, "sess-1", depositDraft(decimal.NewFromInt(5000))); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	_, err := failing.SubmitDeposit(ctx, "sess-1", models.SubmitDepositRequest{PayerName: "Maria Sousa"})
	var transientErr *domain.TransientError
	if !errors.As(err, &transientErr) {
		t.Fatalf("expected TransientError, got %v", err)
	}

	draft, loadErr := cache.Load(ctx, "sess-1")
	if loadErr != nil {
		t.Fatalf("load draft: %v", loadErr)
	}
	if draft == nil {
		t.Fatal("draft must be preserved when create fails")
	}
	if len(notifier.messages) != 0 {
		t.Fatal("no hand-off may happen when create fails")
	}
}

func TestSubmitWithoutDraft(t *testing.T) {
	ctx := context.Background()
	funds := memory.NewFundsRepository()
	svc, _, _ := newSubmissionFixture(funds)

	resp, err := svc.SubmitDeposit(ctx, "sess-1", models.SubmitDepositRequest{PayerName: "Maria Sousa"})
	if !errors.Is(err, domain.ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if resp.Message != "no draft in progress" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestSubmitKindMismatch(t *testing.T) {
	ctx := context.Background()
	funds := memory.NewFundsRepository()
	svc, cache, _ := newSubmissionFixture(funds)

	draft := depositDraft(decimal.NewFromInt(5000))
	draft.Kind = domain.FundsKindWithdrawal
	draft.FeeRate = decimal.RequireFromString("0.12")
	if err := cache.Save(ctx, "sess-1", draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	_, err := svc.SubmitDeposit(ctx, "sess-1", models.SubmitDepositRequest{PayerName: "Maria Sousa"})
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != "draft_kind_mismatch" {
		t.Fatalf("expected draft_kind_mismatch, got %v", err)
	}
}
