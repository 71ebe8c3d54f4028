package graph

import (
	"context"
	"fmt"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

const listInviteesCypher = `
MATCH (inviter:Member {id: $inviterId})-[:INVITED]->(invitee:Member)
RETURN invitee.id AS inviteeId
ORDER BY inviteeId`

// ReferralRepository exposes the invite adjacency stored in the graph
// database one hop at a time; the traversal depth policy lives in the
// referral service, not here.
type ReferralRepository struct {
	client Client
}

func NewReferralRepository(client Client) *ReferralRepository {
	return &ReferralRepository{client: client}
}

func (r *ReferralRepository) ListInvitees(ctx context.Context, inviterID string) ([]domain.ReferralEdge, error) {
	result, err := r.client.ExecuteRead(ctx, listInviteesCypher, map[string]any{
		"inviterId": inviterID,
	})
	if err != nil {
		return nil, fmt.Errorf("list invitees for %s: %w", inviterID, err)
	}

	edges := make([]domain.ReferralEdge, 0, len(result.Records))
	for _, record := range result.Records {
		inviteeID, ok := record["inviteeId"].(string)
		if !ok || inviteeID == "" {
			return nil, fmt.Errorf("list invitees for %s: malformed record %v", inviterID, record)
		}
		edges = append(edges, domain.ReferralEdge{InviterID: inviterID, InviteeID: inviteeID})
	}

	return edges, nil
}
