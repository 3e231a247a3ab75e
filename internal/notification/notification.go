package notification

import (
	"context"
	"log/slog"
)

const (
	// KindPaymentSubmitted marks a new payment entering the Pending queue.
	KindPaymentSubmitted = "payment.submitted"
	// KindPaymentVerified marks an admin verification.
	KindPaymentVerified = "payment.verified"
	// KindPaymentProcessed marks the terminal processing step.
	KindPaymentProcessed = "payment.processed"
)

// Message describes a payment lifecycle event.
type Message struct {
	Kind      string `json:"kind"`
	PaymentID string `json:"payment_id"`
	OwnerID   string `json:"owner_id"`
	Status    string `json:"status"`
}

// Notifier delivers lifecycle events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes events to the structured logger. Used when no
// message broker is configured.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the event to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("payment event",
		"kind", message.Kind,
		"payment_id", message.PaymentID,
		"owner_id", message.OwnerID,
		"status", message.Status,
	)
	return nil
}
