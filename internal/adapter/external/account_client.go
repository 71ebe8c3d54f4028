package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
)

// AccountClient talks to the hosted Account Service. Identity and profile
// storage live there; this client only resolves the current owner for a
// session and fetches profile fields used in the hand-off message.
type AccountClient struct {
	baseURL string
	client  *http.Client
}

func NewAccountClient(baseURL string) *AccountClient {
	return &AccountClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *AccountClient) CurrentOwner(ctx context.Context, sessionID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/session/owner", nil)
	if err != nil {
		return "", fmt.Errorf("build current owner request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve current owner: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", domain.ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolve current owner: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		OwnerID string `json:"ownerId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode current owner response: %w", err)
	}
	if payload.OwnerID == "" {
		return "", domain.ErrUnauthenticated
	}

	return payload.OwnerID, nil
}

func (c *AccountClient) GetProfile(ctx context.Context, ownerID string) (domain.Profile, error) {
	endpoint := c.baseURL + "/profiles/" + url.PathEscape(ownerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Profile{}, domain.ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Profile{}, fmt.Errorf("get profile: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Phone      string `json:"phone"`
		InviteCode string `json:"inviteCode"`
		FullName   string `json:"fullName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile response: %w", err)
	}

	logger.Info("account client profile fetched", logger.Fields{
		"ownerId": ownerID,
	})

	return domain.Profile{
		OwnerID:    ownerID,
		Phone:      payload.Phone,
		InviteCode: payload.InviteCode,
		FullName:   payload.FullName,
	}, nil
}
