package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
)

// ReferralRepository reads the invite adjacency from the relational store.
// Deployments with a graph backend use the graph implementation instead.
type ReferralRepository struct {
	db *sql.DB
}

func NewReferralRepository(db *sql.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) ListInvitees(ctx context.Context, inviterID string) ([]domain.ReferralEdge, error) {
	const query = `
SELECT inviter_id, invitee_id
FROM referral_edges
WHERE inviter_id = $1
ORDER BY invitee_id`

	rows, err := r.db.QueryContext(ctx, query, inviterID)
	if err != nil {
		logger.Error("referral repository list invitees failed", err, logger.Fields{
			"inviterId": inviterID,
		})
		return nil, fmt.Errorf("list invitees: %w", err)
	}
	defer rows.Close()

	var edges []domain.ReferralEdge
	for rows.Next() {
		var edge domain.ReferralEdge
		if err := rows.Scan(&edge.InviterID, &edge.InviteeID); err != nil {
			return nil, fmt.Errorf("scan referral edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate referral edges: %w", err)
	}

	return edges, nil
}
