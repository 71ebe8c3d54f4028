package services_test

import (
	"testing"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func pendingRecord(createdAt time.Time) domain.FundsRequest {
	return domain.FundsRequest{
		ID:              "req-1",
		OwnerID:         "owner-1",
		Kind:            domain.FundsKindDeposit,
		RequestedAmount: decimal.NewFromInt(1000),
		State:           domain.FundsStatePending,
		CreatedAt:       createdAt,
	}
}

func TestStatusServicePendingWithinWindow(t *testing.T) {
	svc := services.NewStatusService(24 * time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := pendingRecord(createdAt)

	projection := svc.Project(record, createdAt.Add(6*time.Hour))
	if projection.Status != domain.DisplayStatusPending {
		t.Fatalf("expected Pendente, got %s", projection.Status)
	}
	if projection.Escalated {
		t.Fatal("expected no escalation inside the window")
	}
	if !projection.Progress.Equal(decimal.NewFromFloat(0.25)) {
		t.Fatalf("expected progress 0.25, got %s", projection.Progress.String())
	}
}

func TestStatusServiceEscalatesAfterWindow(t *testing.T) {
	svc := services.NewStatusService(24 * time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := pendingRecord(createdAt)

	projection := svc.Project(record, createdAt.Add(25*time.Hour))
	if projection.Status != domain.DisplayStatusProcessed {
		t.Fatalf("expected Processado, got %s", projection.Status)
	}
	if !projection.Escalated {
		t.Fatal("expected an escalated projection")
	}
	if record.State != domain.FundsStatePending {
		t.Fatalf("stored state must stay Pending, got %s", record.State)
	}
}

func TestStatusServiceExactWindowBoundaryEscalates(t *testing.T) {
	svc := services.NewStatusService(24 * time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := pendingRecord(createdAt)

	projection := svc.Project(record, createdAt.Add(24*time.Hour))
	if projection.Status != domain.DisplayStatusProcessed || !projection.Escalated {
		t.Fatalf("expected escalation at the exact window boundary, got %+v", projection)
	}
}

func TestStatusServiceTerminalStatesPassThrough(t *testing.T) {
	svc := services.NewStatusService(24 * time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	processed := pendingRecord(createdAt)
	processed.State = domain.FundsStateProcessed
	if got := svc.Project(processed, createdAt.Add(time.Minute)).Status; got != domain.DisplayStatusProcessed {
		t.Fatalf("expected Processado for processed record, got %s", got)
	}

	rejected := pendingRecord(createdAt)
	rejected.State = domain.FundsStateRejected
	if got := svc.Project(rejected, createdAt.Add(48*time.Hour)).Status; got != domain.DisplayStatusRejected {
		t.Fatalf("expected Rejeitado for rejected record, got %s", got)
	}
}

func TestStatusServiceClockSkewClampsProgress(t *testing.T) {
	svc := services.NewStatusService(24 * time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := pendingRecord(createdAt)

	projection := svc.Project(record, createdAt.Add(-2*time.Hour))
	if !projection.Progress.Equal(decimal.Zero) {
		t.Fatalf("expected progress 0 under clock skew, got %s", projection.Progress.String())
	}
	if projection.Status != domain.DisplayStatusPending {
		t.Fatalf("expected Pendente under clock skew, got %s", projection.Status)
	}
}

func TestStatusServiceProgressMonotonic(t *testing.T) {
	svc := services.NewStatusService(24 * time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := pendingRecord(createdAt)

	previous := decimal.NewFromInt(-1)
	one := decimal.NewFromInt(1)
	for hours := 0; hours <= 30; hours += 3 {
		projection := svc.Project(record, createdAt.Add(time.Duration(hours)*time.Hour))
		if projection.Progress.LessThan(previous) {
			t.Fatalf("progress decreased at %dh: %s < %s", hours, projection.Progress.String(), previous.String())
		}
		if projection.Progress.GreaterThan(one) {
			t.Fatalf("progress above 1 at %dh: %s", hours, projection.Progress.String())
		}
		previous = projection.Progress
	}
}
