package service_interfaces

import (
	"context"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

// AccountService is the external identity boundary. Resolution failures map
// to domain.ErrUnauthenticated.
type AccountService interface {
	CurrentOwner(ctx context.Context, sessionID string) (string, error)
	GetProfile(ctx context.Context, ownerID string) (domain.Profile, error)
}

// Notifier hands the prefilled submission message to the external messaging
// channel. Fire-and-forget: no delivery confirmation is tracked; the client
// performs the actual open using the hand-off message it receives back in
// the submit response.
type Notifier interface {
	OpenExternalChat(ctx context.Context, prefilledText string) error
}
