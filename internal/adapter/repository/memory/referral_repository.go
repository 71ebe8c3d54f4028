package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

// ReferralRepository keeps the invite adjacency in memory.
type ReferralRepository struct {
	mu       sync.Mutex
	invitees map[string][]string
}

func NewReferralRepository() *ReferralRepository {
	return &ReferralRepository{invitees: make(map[string][]string)}
}

func (r *ReferralRepository) AddEdge(inviterID, inviteeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invitees[inviterID] = append(r.invitees[inviterID], inviteeID)
}

func (r *ReferralRepository) ListInvitees(_ context.Context, inviterID string) ([]domain.ReferralEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := append([]string(nil), r.invitees[inviterID]...)
	sort.Strings(ids)

	edges := make([]domain.ReferralEdge, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, domain.ReferralEdge{InviterID: inviterID, InviteeID: id})
	}

	return edges, nil
}
