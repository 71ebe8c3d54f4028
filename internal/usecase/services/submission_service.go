package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/service_interfaces"
)

// SubmissionService promotes a draft to a Pending record. The draft is
// cleared only after the store accepts the record; on a store failure the
// draft stays in the cache so the user can retry without re-entering data.
// A retried create after a success that was reported as a failure can yield
// a duplicate record; downstream reconciliation owns that case.
type SubmissionService struct {
	fundsRepo      repo_interfaces.FundsRepository
	draftCache     repo_interfaces.DraftCache
	statusService  service_interfaces.StatusService
	accountService service_interfaces.AccountService
	notifier       service_interfaces.Notifier
	currencySuffix string
}

func NewSubmissionService(
	fundsRepo repo_interfaces.FundsRepository,
	draftCache repo_interfaces.DraftCache,
	statusService service_interfaces.StatusService,
	accountService service_interfaces.AccountService,
	notifier service_interfaces.Notifier,
	currencySuffix string,
) *SubmissionService {
	return &SubmissionService{
		fundsRepo:      fundsRepo,
		draftCache:     draftCache,
		statusService:  statusService,
		accountService: accountService,
		notifier:       notifier,
		currencySuffix: strings.TrimSpace(currencySuffix),
	}
}

func (s *SubmissionService) SubmitDeposit(ctx context.Context, sessionID string, req models.SubmitDepositRequest) (commons.Response[models.SubmitResponse], error) {
	logger.Info("submission service submit deposit request", logger.Fields{
		"sessionId": sessionID,
	})

	payerName := strings.TrimSpace(req.PayerName)
	if payerName == "" {
		err := domain.NewValidationError("missing_payer_name", "payerName is required to finalize a deposit")
		logger.Error("submission service submit deposit validation failed", err, nil)
		return commons.ErrorResponse[models.SubmitResponse]("validation failed", err.Error()), err
	}

	return s.submit(ctx, sessionID, domain.FundsKindDeposit, payerName)
}

func (s *SubmissionService) SubmitWithdrawal(ctx context.Context, sessionID string) (commons.Response[models.SubmitResponse], error) {
	logger.Info("submission service submit withdrawal request", logger.Fields{
		"sessionId": sessionID,
	})

	return s.submit(ctx, sessionID, domain.FundsKindWithdrawal, "")
}

func (s *SubmissionService) submit(ctx context.Context, sessionID string, kind domain.FundsKind, payerName string) (commons.Response[models.SubmitResponse], error) {
	draft, err := s.draftCache.Load(ctx, sessionID)
	if err != nil {
		transient := &domain.TransientError{Op: "load draft", Err: err}
		logger.Error("submission service load draft failed", transient, nil)
		return commons.ErrorResponse[models.SubmitResponse]("failed to submit", "Unable to submit right now"), transient
	}
	if draft == nil {
		logger.Error("submission service no draft", domain.ErrNoDraft, logger.Fields{
			"sessionId": sessionID,
		})
		return commons.ErrorResponse[models.SubmitResponse]("no draft in progress"), domain.ErrNoDraft
	}

	if draft.Kind != kind {
		err := domain.NewValidationError("draft_kind_mismatch", "the draft in progress is not a "+strings.ToLower(string(kind)))
		return commons.ErrorResponse[models.SubmitResponse]("validation failed", err.Error()), err
	}

	if err := draft.ValidateForCreate(); err != nil {
		logger.Error("submission service draft validation failed", err, nil)
		return commons.ErrorResponse[models.SubmitResponse]("validation failed", err.Error()), err
	}

	profile, err := s.accountService.GetProfile(ctx, draft.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return commons.ErrorResponse[models.SubmitResponse]("unauthenticated"), err
		}
		transient := &domain.TransientError{Op: "get profile", Err: err}
		return commons.ErrorResponse[models.SubmitResponse]("failed to submit", "Unable to submit right now"), transient
	}

	submission := *draft
	submission.PayerName = payerName
	submission.State = domain.FundsStatePending

	created, err := s.fundsRepo.Create(ctx, submission)
	if err != nil {
		// Draft intentionally left in the cache for retry.
		transient := &domain.TransientError{Op: "create funds request", Err: err}
		logger.Error("submission service create failed, draft preserved", transient, logger.Fields{
			"sessionId": sessionID,
		})
		return commons.ErrorResponse[models.SubmitResponse]("failed to submit", "Unable to submit right now"), transient
	}

	if err := s.draftCache.Clear(ctx, sessionID); err != nil {
		logger.Error("submission service clear draft failed", err, logger.Fields{
			"sessionId": sessionID,
			"requestId": created.ID,
		})
	}

	message := s.buildHandoffMessage(profile, created)
	if err := s.notifier.OpenExternalChat(ctx, message); err != nil {
		// Fire-and-forget channel: the record is already persisted.
		logger.Error("submission service external chat hand-off failed", err, logger.Fields{
			"requestId": created.ID,
		})
	}

	projection := s.statusService.ProjectNow(created)
	response := models.SubmitResponse{
		Request:        fundsRequestResponse(created, projection),
		HandoffMessage: message,
	}

	logger.Info("submission service submit success", logger.Fields{
		"requestId": created.ID,
		"kind":      created.Kind,
	})

	return commons.SuccessResponse("request submitted successfully", response), nil
}

// buildHandoffMessage composes the text handed to the external messaging
// channel, verbatim. Field order is fixed: identity, operation, amount,
// bank, payer (deposits) or beneficiary (withdrawals).
func (s *SubmissionService) buildHandoffMessage(profile domain.Profile, request domain.FundsRequest) string {
	verb := "Depósito"
	lastField := request.PayerName
	amount := request.RequestedAmount
	if request.Kind == domain.FundsKindWithdrawal {
		verb = "Levantamento"
		lastField = request.Counterparty.BeneficiaryName
		amount = request.NetAmount()
	}

	fields := []string{
		profile.FullName + " (" + profile.Phone + ")",
		verb,
		formatAmount(amount, s.currencySuffix),
		request.Counterparty.BankName,
		lastField,
	}

	return strings.Join(fields, " | ")
}
