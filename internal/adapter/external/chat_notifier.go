package external

import (
	"context"
	"net/url"

	"github.com/api-sage/aoa-funds-processor/internal/logger"
)

// ChatNotifier hands the prefilled submission text to the external messaging
// channel as a deep link. No delivery confirmation is tracked; the link is
// surfaced to the client and logged here.
type ChatNotifier struct {
	chatBaseURL string
}

func NewChatNotifier(chatBaseURL string) *ChatNotifier {
	return &ChatNotifier{chatBaseURL: chatBaseURL}
}

func (n *ChatNotifier) OpenExternalChat(_ context.Context, prefilledText string) error {
	link := n.chatBaseURL + "?text=" + url.QueryEscape(prefilledText)

	logger.Info("chat notifier hand-off", logger.Fields{
		"link": link,
	})

	return nil
}
