package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/google/uuid"
)

// FundsRepository is an in-memory store used in tests and local runs without
// postgres. Ids are assigned here the way the database otherwise would.
type FundsRepository struct {
	mu       sync.Mutex
	requests map[string]domain.FundsRequest
	nowFn    func() time.Time
}

func NewFundsRepository() *FundsRepository {
	return &FundsRepository{
		requests: make(map[string]domain.FundsRequest),
		nowFn:    time.Now,
	}
}

// WithClock overrides the creation timestamp source (used in tests).
func (r *FundsRepository) WithClock(nowFn func() time.Time) *FundsRepository {
	if nowFn != nil {
		r.nowFn = nowFn
	}
	return r
}

func (r *FundsRepository) Create(_ context.Context, request domain.FundsRequest) (domain.FundsRequest, error) {
	if err := request.ValidateForCreate(); err != nil {
		return domain.FundsRequest{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = uuid.NewString()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = r.nowFn()
	}
	r.requests[request.ID] = request

	return request, nil
}

func (r *FundsRepository) Get(_ context.Context, id string) (domain.FundsRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return domain.FundsRequest{}, domain.ErrRecordNotFound
	}

	return request, nil
}

func (r *FundsRepository) ListByOwner(_ context.Context, ownerID string, kind *domain.FundsKind) ([]domain.FundsRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var requests []domain.FundsRequest
	for _, request := range r.requests {
		if request.OwnerID != ownerID {
			continue
		}
		if kind != nil && request.Kind != *kind {
			continue
		}
		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	return requests, nil
}

func (r *FundsRepository) UpdateState(_ context.Context, id string, state domain.FundsState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if !domain.CanTransition(request.State, state) {
		return domain.NewValidationError("invalid_state_transition", string(request.State)+" cannot move to "+string(state))
	}

	request.State = state
	r.requests[id] = request

	return nil
}
