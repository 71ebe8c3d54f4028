package services

import (
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/shopspring/decimal"
)

// StatusService computes the displayed status of a request from its stored
// state and the current time. It is a read-time projection: a Pending record
// older than the SLA window is shown as Processado while the stored state
// stays Pending until the external settlement confirms it. Nothing here
// writes to storage, so the projection must be recomputed on every read.
type StatusService struct {
	slaWindow time.Duration
	nowFn     func() time.Time
}

func NewStatusService(slaWindow time.Duration) *StatusService {
	return &StatusService{
		slaWindow: slaWindow,
		nowFn:     time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *StatusService) WithClock(nowFn func() time.Time) *StatusService {
	if nowFn != nil {
		s.nowFn = nowFn
	}
	return s
}

func (s *StatusService) ProjectNow(record domain.FundsRequest) domain.StatusProjection {
	return s.Project(record, s.nowFn())
}

func (s *StatusService) Project(record domain.FundsRequest, now time.Time) domain.StatusProjection {
	one := decimal.NewFromInt(1)

	switch record.State {
	case domain.FundsStateProcessed:
		return domain.StatusProjection{Status: domain.DisplayStatusProcessed, Progress: one}
	case domain.FundsStateRejected:
		return domain.StatusProjection{Status: domain.DisplayStatusRejected, Progress: one}
	}

	elapsed := now.Sub(record.CreatedAt)
	if elapsed < 0 {
		// Clock skew: never report negative progress.
		elapsed = 0
	}

	if record.State == domain.FundsStatePending && s.slaWindow > 0 && elapsed >= s.slaWindow {
		return domain.StatusProjection{
			Status:    domain.DisplayStatusProcessed,
			Progress:  one,
			Escalated: true,
		}
	}

	progress := decimal.Zero
	if s.slaWindow > 0 {
		progress = decimal.NewFromInt(elapsed.Milliseconds()).
			Div(decimal.NewFromInt(s.slaWindow.Milliseconds()))
		if progress.GreaterThan(one) {
			progress = one
		}
	}

	return domain.StatusProjection{Status: domain.DisplayStatusPending, Progress: progress}
}
