package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/models"
	"github.com/api-sage/aoa-funds-processor/internal/commons"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/service_interfaces"
)

type ReferralController struct {
	referralService service_interfaces.ReferralService
	accountService  service_interfaces.AccountService
}

func NewReferralController(referralService service_interfaces.ReferralService, accountService service_interfaces.AccountService) *ReferralController {
	return &ReferralController{
		referralService: referralService,
		accountService:  accountService,
	}
}

func (c *ReferralController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/referrals/network", wrap(c.getNetwork))
	mux.Handle("/referrals/commissions", wrap(c.getCommissions))
}

func (c *ReferralController) getNetwork(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	rootID, ok := c.resolveRoot(w, r, start)
	if !ok {
		return
	}

	response, err := c.referralService.GetNetwork(r.Context(), rootID)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

func (c *ReferralController) getCommissions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	rootID, ok := c.resolveRoot(w, r, start)
	if !ok {
		return
	}

	response, err := c.referralService.GetCommissionSummary(r.Context(), rootID)
	writeServiceResponse(w, r, response, err, http.StatusOK, start)
}

// resolveRoot maps the caller's session to the owner whose invite tree is
// being read. The tree is always rooted at the authenticated owner.
func (c *ReferralController) resolveRoot(w http.ResponseWriter, r *http.Request, start time.Time) (string, bool) {
	sessionID, ok := requireSession[models.ReferralNetworkResponse](w, r, start)
	if !ok {
		return "", false
	}

	rootID, err := c.accountService.CurrentOwner(r.Context(), sessionID)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		message := "failed to resolve owner"
		if errors.Is(err, domain.ErrUnauthenticated) {
			status = http.StatusUnauthorized
			message = "unauthenticated"
		}
		response := commons.ErrorResponse[models.ReferralNetworkResponse](message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return "", false
	}

	return rootID, true
}
