package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/memory"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/shopspring/decimal"
)

func TestDraftCacheSaveThenLoadRoundTrips(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewDraftCache()

	draft := domain.FundsRequest{
		OwnerID:         "owner-1",
		Kind:            domain.FundsKindDeposit,
		RequestedAmount: decimal.NewFromInt(5000),
		State:           domain.FundsStateDraft,
		CreatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := cache.Save(ctx, "sess-1", draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := cache.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a draft")
	}
	if loaded.OwnerID != draft.OwnerID || !loaded.RequestedAmount.Equal(draft.RequestedAmount) {
		t.Fatalf("loaded draft differs: %+v", loaded)
	}
}

func TestDraftCacheLastWriteWins(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewDraftCache()

	first := domain.FundsRequest{Kind: domain.FundsKindDeposit, RequestedAmount: decimal.NewFromInt(100)}
	second := domain.FundsRequest{Kind: domain.FundsKindWithdrawal, RequestedAmount: decimal.NewFromInt(200)}

	if err := cache.Save(ctx, "sess-1", first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := cache.Save(ctx, "sess-1", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := cache.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Kind != domain.FundsKindWithdrawal {
		t.Fatalf("expected the second draft, got %s", loaded.Kind)
	}
}

func TestDraftCacheClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewDraftCache()

	// Clearing an empty slot is a no-op.
	if err := cache.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear empty: %v", err)
	}

	if err := cache.Save(ctx, "sess-1", domain.FundsRequest{Kind: domain.FundsKindDeposit}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cache.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, err := cache.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected empty slot after clear")
	}

	if err := cache.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear again: %v", err)
	}
}

func TestDraftCacheSlotsAreSessionScoped(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewDraftCache()

	if err := cache.Save(ctx, "sess-1", domain.FundsRequest{OwnerID: "owner-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	other, err := cache.Load(ctx, "sess-2")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if other != nil {
		t.Fatal("expected no draft for a different session")
	}
}
