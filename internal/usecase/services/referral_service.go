package services

import (
	"context"
	"errors"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
	"github.com/shopspring/decimal"
)

// ReferralService resolves the three-level invite tree below an owner and
// attributes commissions from the processed transactions of tree members.
// Traversal is read-only and bounded: nothing past the third hop is visited.
type ReferralService struct {
	referralRepo repo_interfaces.ReferralRepository
	fundsRepo    repo_interfaces.FundsRepository
	schedule     domain.CommissionSchedule
}

func NewReferralService(
	referralRepo repo_interfaces.ReferralRepository,
	fundsRepo repo_interfaces.FundsRepository,
	schedule domain.CommissionSchedule,
) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		fundsRepo:    fundsRepo,
		schedule:     schedule,
	}
}

func (s *ReferralService) GetNetwork(ctx context.Context, rootID string) (commons.Response[models.ReferralNetworkResponse], error) {
	logger.Info("referral service get network request", logger.Fields{
		"rootId": rootID,
	})

	tree, err := s.Network(ctx, rootID)
	if err != nil {
		var integrityErr *domain.IntegrityError
		if errors.As(err, &integrityErr) {
			logger.Error("referral service network integrity violation", err, logger.Fields{
				"rootId": rootID,
				"nodeId": integrityErr.NodeID,
			})
			return commons.ErrorResponse[models.ReferralNetworkResponse]("referral data integrity violation", err.Error()), err
		}
		logger.Error("referral service get network failed", err, nil)
		return commons.ErrorResponse[models.ReferralNetworkResponse]("failed to resolve network", "Unable to resolve referral network right now"), err
	}

	response := networkResponse(tree)

	logger.Info("referral service get network success", logger.Fields{
		"rootId":   rootID,
		"teamSize": tree.TeamSize,
	})

	return commons.SuccessResponse("referral network resolved successfully", response), nil
}

func (s *ReferralService) GetCommissionSummary(ctx context.Context, rootID string) (commons.Response[models.CommissionSummaryResponse], error) {
	logger.Info("referral service commission summary request", logger.Fields{
		"rootId": rootID,
	})

	tree, err := s.Network(ctx, rootID)
	if err != nil {
		var integrityErr *domain.IntegrityError
		if errors.As(err, &integrityErr) {
			return commons.ErrorResponse[models.CommissionSummaryResponse]("referral data integrity violation", err.Error()), err
		}
		return commons.ErrorResponse[models.CommissionSummaryResponse]("failed to resolve network", "Unable to resolve referral network right now"), err
	}

	attributions, err := s.attributeCommissions(ctx, tree)
	if err != nil {
		logger.Error("referral service commission attribution failed", err, nil)
		return commons.ErrorResponse[models.CommissionSummaryResponse]("failed to compute commissions", "Unable to compute commissions right now"), err
	}

	response := commissionResponse(tree, attributions, s.schedule)

	logger.Info("referral service commission summary success", logger.Fields{
		"rootId":       rootID,
		"teamSize":     tree.TeamSize,
		"attributions": len(attributions),
	})

	return commons.SuccessResponse("commission summary computed successfully", response), nil
}

// Network walks the invite graph breadth-first from the root, stopping at
// depth three. The visited set guards against cycles in a corrupted edge set:
// a node reached twice halts expansion of that branch and the violation is
// returned, never silently dropped. The partial tree skips the offending
// branch but is otherwise complete.
func (s *ReferralService) Network(ctx context.Context, rootID string) (domain.ReferralTree, error) {
	visited := map[string]struct{}{rootID: {}}
	frontier := []string{rootID}

	tree := domain.ReferralTree{RootID: rootID}
	var integrity *domain.IntegrityError

	for level := 1; level <= domain.MaxReferralDepth; level++ {
		var next []string
		for _, inviterID := range frontier {
			edges, err := s.referralRepo.ListInvitees(ctx, inviterID)
			if err != nil {
				return domain.ReferralTree{}, &domain.TransientError{Op: "list invitees", Err: err}
			}

			for _, edge := range edges {
				if _, seen := visited[edge.InviteeID]; seen {
					if integrity == nil {
						integrity = &domain.IntegrityError{
							NodeID: edge.InviteeID,
							Detail: "invitee reached more than once in the invite graph",
						}
					}
					continue
				}

				visited[edge.InviteeID] = struct{}{}
				tree.Members = append(tree.Members, domain.ReferralMember{
					OwnerID: edge.InviteeID,
					Level:   level,
				})
				next = append(next, edge.InviteeID)
			}
		}
		frontier = next
	}

	tree.TeamSize = len(tree.Members)

	if integrity != nil {
		return tree, integrity
	}
	return tree, nil
}

// Commissions resolves the tree and attributes commissions for every
// processed transaction owned by a member.
func (s *ReferralService) Commissions(ctx context.Context, rootID string) ([]domain.CommissionAttribution, error) {
	tree, err := s.Network(ctx, rootID)
	if err != nil {
		return nil, err
	}
	return s.attributeCommissions(ctx, tree)
}

func (s *ReferralService) attributeCommissions(ctx context.Context, tree domain.ReferralTree) ([]domain.CommissionAttribution, error) {
	var attributions []domain.CommissionAttribution

	for _, member := range tree.Members {
		requests, err := s.fundsRepo.ListByOwner(ctx, member.OwnerID, nil)
		if err != nil {
			return nil, &domain.TransientError{Op: "list member transactions", Err: err}
		}

		rate := s.schedule.RateForLevel(member.Level)
		for _, request := range requests {
			if request.State != domain.FundsStateProcessed {
				continue
			}

			attributions = append(attributions, domain.CommissionAttribution{
				BeneficiaryID:       tree.RootID,
				SourceTransactionID: request.ID,
				SourceOwnerID:       member.OwnerID,
				Level:               member.Level,
				Amount:              request.RequestedAmount.Mul(rate),
			})
		}
	}

	return attributions, nil
}

func networkResponse(tree domain.ReferralTree) models.ReferralNetworkResponse {
	levels := make([]models.ReferralLevelSummary, 0, domain.MaxReferralDepth)
	for level := 1; level <= domain.MaxReferralDepth; level++ {
		summary := models.ReferralLevelSummary{Level: level}
		for _, member := range tree.MembersAtLevel(level) {
			summary.Members = append(summary.Members, member.OwnerID)
		}
		summary.Count = len(summary.Members)
		levels = append(levels, summary)
	}

	return models.ReferralNetworkResponse{
		RootID:   tree.RootID,
		TeamSize: tree.TeamSize,
		Levels:   levels,
	}
}

func commissionResponse(tree domain.ReferralTree, attributions []domain.CommissionAttribution, schedule domain.CommissionSchedule) models.CommissionSummaryResponse {
	total := decimal.Zero
	perLevel := make([]decimal.Decimal, domain.MaxReferralDepth)

	items := make([]models.CommissionAttributionResponse, 0, len(attributions))
	for _, attribution := range attributions {
		total = total.Add(attribution.Amount)
		perLevel[attribution.Level-1] = perLevel[attribution.Level-1].Add(attribution.Amount)
		items = append(items, models.CommissionAttributionResponse{
			SourceTransactionID: attribution.SourceTransactionID,
			SourceOwnerID:       attribution.SourceOwnerID,
			Level:               attribution.Level,
			Amount:              attribution.Amount.StringFixed(2),
		})
	}

	levels := make([]models.LevelCommissionResponse, 0, domain.MaxReferralDepth)
	for level := 1; level <= domain.MaxReferralDepth; level++ {
		levels = append(levels, models.LevelCommissionResponse{
			Level:  level,
			Rate:   schedule.RateForLevel(level).String(),
			Amount: perLevel[level-1].StringFixed(2),
		})
	}

	return models.CommissionSummaryResponse{
		RootID:       tree.RootID,
		TeamSize:     tree.TeamSize,
		Total:        total.StringFixed(2),
		PerLevel:     levels,
		Attributions: items,
	}
}
