package controller

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/service_interfaces"
)

const sessionHeader = "X-Session-ID"

type FundsController struct {
	fundsService      service_interfaces.FundsService
	submissionService service_interfaces.SubmissionService
}

func NewFundsController(fundsService service_interfaces.FundsService, submissionService service_interfaces.SubmissionService) *FundsController {
	return &FundsController{
		fundsService:      fundsService,
		submissionService: submissionService,
	}
}

func (c *FundsController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/deposits/begin", wrap(c.beginDeposit))
	mux.Handle("/deposits/submit", wrap(c.submitDeposit))
	mux.Handle("/withdrawals/begin", wrap(c.beginWithdrawal))
	mux.Handle("/withdrawals/submit", wrap(c.submitWithdrawal))
	mux.Handle("/drafts/current", wrap(c.currentDraft))
	mux.Handle("/drafts/abandon", wrap(c.abandonDraft))
	mux.Handle("/transactions", wrap(c.listRequests))
	mux.Handle("/transactions/get", wrap(c.getRequest))
	mux.Handle("/banks", wrap(c.listBanks))
}

func (c *FundsController) beginDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sessionID, ok := requireSession[models.DraftResponse](w, r, start)
	if !ok {
		return
	}

	var req models.BeginDepositRequest
	if !decodeBody(w, r, &req, start) {
		return
	}
	logRequest(r, req)

	response, err := c.fundsService.BeginDeposit(r.Context(), sessionID, req)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *FundsController) beginWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sessionID, ok := requireSession[models.DraftResponse](w, r, start)
	if !ok {
		return
	}

	var req models.BeginWithdrawalRequest
	if !decodeBody(w, r, &req, start) {
		return
	}
	logRequest(r, req)

	response, err := c.fundsService.BeginWithdrawal(r.Context(), sessionID, req)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *FundsController) submitDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sessionID, ok := requireSession[models.SubmitResponse](w, r, start)
	if !ok {
		return
	}

	var req models.SubmitDepositRequest
	if !decodeBody(w, r, &req, start) {
		return
	}
	logRequest(r, req)

	response, err := c.submissionService.SubmitDeposit(r.Context(), sessionID, req)
	writeServiceResponse(w, r, response, err, http.StatusCreated, start)
}

func (c *FundsController) submitWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sessionID, ok := requireSession[models.SubmitResponse](w, r, start)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.SubmitResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}
	logRequest(r, nil)

	response, err := c.submissionService.SubmitWithdrawal(r.Context(), sessionID)
	writeServiceResponse(w, r, response, err, http.StatusCreated, start)
}

func (c *FundsController) currentDraft(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	sessionID, ok := requireSession[models.DraftResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.fundsService.CurrentDraft(r.Context(), sessionID)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *FundsController) abandonDraft(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	sessionID, ok := requireSession[models.DraftResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.fundsService.AbandonDraft(r.Context(), sessionID)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *FundsController) listRequests(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	sessionID, ok := requireSession[models.ListRequestsResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.fundsService.ListRequests(r.Context(), sessionID, r.URL.Query().Get("kind"))
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *FundsController) getRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		response := commons.ErrorResponse[models.FundsRequestResponse]("validation failed", "id is required")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.fundsService.GetRequest(r.Context(), id)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *FundsController) listBanks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.fundsService.ListBanks(r.Context())
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func requireSession[T any](w http.ResponseWriter, r *http.Request, start time.Time) (string, bool) {
	sessionID := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sessionID == "" {
		response := commons.ErrorResponse[T]("unauthenticated", sessionHeader+" header is required")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return "", false
	}
	return sessionID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any, start time.Time) bool {
	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[struct{}]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[struct{}]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}

	return true
}

func writeServiceResponse[T any](w http.ResponseWriter, r *http.Request, response commons.Response[T], err error, successStatus int, start time.Time) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForMessage(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, successStatus, response)
	logResponse(r, successStatus, response, start)
}

func statusForMessage(message string) int {
	switch {
	case message == "validation failed":
		return http.StatusBadRequest
	case message == "unauthenticated":
		return http.StatusUnauthorized
	case message == "no draft in progress":
		return http.StatusConflict
	case strings.Contains(strings.ToLower(message), "not found"):
		return http.StatusNotFound
	case message == "referral data integrity violation":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
