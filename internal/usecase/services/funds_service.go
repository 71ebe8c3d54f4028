package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var decimalZero = decimal.Zero

// FundsService owns the draft lifecycle and read paths over stored requests.
// Drafts live in a single per-session slot: starting a new one overwrites
// whatever was there, by design.
type FundsService struct {
	fundsRepo      repo_interfaces.FundsRepository
	draftCache     repo_interfaces.DraftCache
	bankRepo       repo_interfaces.BankRepository
	statusService  service_interfaces.StatusService
	accountService service_interfaces.AccountService
	withdrawalFee  decimal.Decimal
	nowFn          func() time.Time
}

func NewFundsService(
	fundsRepo repo_interfaces.FundsRepository,
	draftCache repo_interfaces.DraftCache,
	bankRepo repo_interfaces.BankRepository,
	statusService service_interfaces.StatusService,
	accountService service_interfaces.AccountService,
	withdrawalFee decimal.Decimal,
) *FundsService {
	return &FundsService{
		fundsRepo:      fundsRepo,
		draftCache:     draftCache,
		bankRepo:       bankRepo,
		statusService:  statusService,
		accountService: accountService,
		withdrawalFee:  withdrawalFee,
		nowFn:          time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *FundsService) WithClock(nowFn func() time.Time) *FundsService {
	if nowFn != nil {
		s.nowFn = nowFn
	}
	return s
}

func (s *FundsService) BeginDeposit(ctx context.Context, sessionID string, req models.BeginDepositRequest) (commons.Response[models.DraftResponse], error) {
	logger.Info("funds service begin deposit request", logger.Fields{
		"sessionId": sessionID,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("funds service begin deposit validation failed", err, nil)
		return commons.ErrorResponse[models.DraftResponse]("validation failed", err.Error()), err
	}

	return s.beginDraft(ctx, sessionID, domain.FundsKindDeposit, req.Amount, req.BankName, req.IBAN, req.BeneficiaryName, decimal.Zero)
}

func (s *FundsService) BeginWithdrawal(ctx context.Context, sessionID string, req models.BeginWithdrawalRequest) (commons.Response[models.DraftResponse], error) {
	logger.Info("funds service begin withdrawal request", logger.Fields{
		"sessionId": sessionID,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("funds service begin withdrawal validation failed", err, nil)
		return commons.ErrorResponse[models.DraftResponse]("validation failed", err.Error()), err
	}

	return s.beginDraft(ctx, sessionID, domain.FundsKindWithdrawal, req.Amount, req.BankName, req.IBAN, req.BeneficiaryName, s.withdrawalFee)
}

func (s *FundsService) beginDraft(ctx context.Context, sessionID string, kind domain.FundsKind, amount, bankName, iban, beneficiaryName string, feeRate decimal.Decimal) (commons.Response[models.DraftResponse], error) {
	ownerID, err := s.accountService.CurrentOwner(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return commons.ErrorResponse[models.DraftResponse]("unauthenticated"), err
		}
		transient := &domain.TransientError{Op: "resolve owner", Err: err}
		return commons.ErrorResponse[models.DraftResponse]("failed to begin request", "Unable to begin request right now"), transient
	}

	amountValue, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || amountValue.LessThanOrEqual(decimalZero) {
		vErr := domain.NewValidationError("non_positive_amount", "amount must be a positive decimal")
		return commons.ErrorResponse[models.DraftResponse]("validation failed", vErr.Error()), vErr
	}

	draft := domain.FundsRequest{
		OwnerID:         ownerID,
		Kind:            kind,
		RequestedAmount: amountValue,
		Counterparty: domain.Counterparty{
			BankName:        strings.TrimSpace(bankName),
			IBAN:            strings.TrimSpace(iban),
			BeneficiaryName: strings.TrimSpace(beneficiaryName),
		},
		FeeRate:   feeRate,
		State:     domain.FundsStateDraft,
		CreatedAt: s.nowFn(),
	}

	if err := s.draftCache.Save(ctx, sessionID, draft); err != nil {
		transient := &domain.TransientError{Op: "save draft", Err: err}
		logger.Error("funds service save draft failed", transient, nil)
		return commons.ErrorResponse[models.DraftResponse]("failed to begin request", "Unable to begin request right now"), transient
	}

	projection := s.statusService.ProjectNow(draft)
	response := draftResponse(&draft, projection)

	logger.Info("funds service draft saved", logger.Fields{
		"sessionId": sessionID,
		"kind":      kind,
	})

	return commons.SuccessResponse("draft saved", response), nil
}

func (s *FundsService) CurrentDraft(ctx context.Context, sessionID string) (commons.Response[models.DraftResponse], error) {
	draft, err := s.draftCache.Load(ctx, sessionID)
	if err != nil {
		transient := &domain.TransientError{Op: "load draft", Err: err}
		logger.Error("funds service load draft failed", transient, nil)
		return commons.ErrorResponse[models.DraftResponse]("failed to load draft", "Unable to load draft right now"), transient
	}

	if draft == nil {
		return commons.SuccessResponse("no draft in progress", models.DraftResponse{}), nil
	}

	projection := s.statusService.ProjectNow(*draft)
	return commons.SuccessResponse("draft loaded", draftResponse(draft, projection)), nil
}

func (s *FundsService) AbandonDraft(ctx context.Context, sessionID string) (commons.Response[models.DraftResponse], error) {
	// Clearing an empty slot is a no-op, not an error.
	if err := s.draftCache.Clear(ctx, sessionID); err != nil {
		transient := &domain.TransientError{Op: "clear draft", Err: err}
		logger.Error("funds service clear draft failed", transient, nil)
		return commons.ErrorResponse[models.DraftResponse]("failed to abandon draft", "Unable to abandon draft right now"), transient
	}

	logger.Info("funds service draft abandoned", logger.Fields{
		"sessionId": sessionID,
	})

	return commons.SuccessResponse("draft abandoned", models.DraftResponse{}), nil
}

func (s *FundsService) GetRequest(ctx context.Context, id string) (commons.Response[models.FundsRequestResponse], error) {
	request, err := s.fundsRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.FundsRequestResponse]("Request not found"), err
		}
		logger.Error("funds service get request failed", err, logger.Fields{
			"requestId": id,
		})
		return commons.ErrorResponse[models.FundsRequestResponse]("failed to get request", "Unable to get request right now"), err
	}

	projection := s.statusService.ProjectNow(request)
	return commons.SuccessResponse("request fetched successfully", fundsRequestResponse(request, projection)), nil
}

func (s *FundsService) ListRequests(ctx context.Context, sessionID string, kind string) (commons.Response[models.ListRequestsResponse], error) {
	ownerID, err := s.accountService.CurrentOwner(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return commons.ErrorResponse[models.ListRequestsResponse]("unauthenticated"), err
		}
		transient := &domain.TransientError{Op: "resolve owner", Err: err}
		return commons.ErrorResponse[models.ListRequestsResponse]("failed to list requests", "Unable to list requests right now"), transient
	}

	var kindFilter *domain.FundsKind
	if normalized := strings.ToUpper(strings.TrimSpace(kind)); normalized != "" {
		if normalized != string(domain.FundsKindDeposit) && normalized != string(domain.FundsKindWithdrawal) {
			err := domain.NewValidationError("unknown_kind", "kind must be DEPOSIT or WITHDRAWAL")
			return commons.ErrorResponse[models.ListRequestsResponse]("validation failed", err.Error()), err
		}
		value := domain.FundsKind(normalized)
		kindFilter = &value
	}

	requests, err := s.fundsRepo.ListByOwner(ctx, ownerID, kindFilter)
	if err != nil {
		logger.Error("funds service list requests failed", err, logger.Fields{
			"ownerId": ownerID,
		})
		return commons.ErrorResponse[models.ListRequestsResponse]("failed to list requests", "Unable to list requests right now"), err
	}

	items := make([]models.FundsRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, fundsRequestResponse(request, s.statusService.ProjectNow(request)))
	}

	return commons.SuccessResponse("requests fetched successfully", models.ListRequestsResponse{Items: items}), nil
}

func (s *FundsService) ListBanks(ctx context.Context) (commons.Response[[]models.SupportedBankResponse], error) {
	banks, err := s.bankRepo.GetAll(ctx)
	if err != nil {
		logger.Error("funds service list banks failed", err, nil)
		return commons.ErrorResponse[[]models.SupportedBankResponse]("failed to list banks", "Unable to list banks right now"), err
	}

	items := make([]models.SupportedBankResponse, 0, len(banks))
	for _, bank := range banks {
		items = append(items, models.SupportedBankResponse{
			BankName: bank.BankName,
			BankCode: bank.BankCode,
		})
	}

	return commons.SuccessResponse("banks fetched successfully", items), nil
}

func draftResponse(draft *domain.FundsRequest, projection domain.StatusProjection) models.DraftResponse {
	if draft == nil {
		return models.DraftResponse{}
	}
	response := fundsRequestResponse(*draft, projection)
	return models.DraftResponse{Draft: &response}
}

func fundsRequestResponse(request domain.FundsRequest, projection domain.StatusProjection) models.FundsRequestResponse {
	return models.FundsRequestResponse{
		ID:              request.ID,
		Kind:            string(request.Kind),
		RequestedAmount: request.RequestedAmount.StringFixed(2),
		NetAmount:       request.NetAmount().StringFixed(2),
		BankName:        request.Counterparty.BankName,
		IBAN:            request.Counterparty.IBAN,
		BeneficiaryName: request.Counterparty.BeneficiaryName,
		PayerName:       request.PayerName,
		Status:          string(projection.Status),
		Progress:        projection.Progress.StringFixed(4),
		CreatedAt:       request.CreatedAt,
	}
}
