package messaging

import (
	"context"

	"expensetracker/internal/logger"
)

// NopPublisher is used when no broker is configured. Messages stay in the
// database undelivered.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

// PublishContactMessage logs the message and drops it.
func (NopPublisher) PublishContactMessage(_ context.Context, msg *ContactMessage) error {
	logger.Get().Infow("AMQP disabled, contact message kept for later delivery", "id", msg.ID)
	return nil
}
