// Package notification publishes payment events to customers and
// therapists. Delivery is best effort: callers log and drop errors.
package notification

import (
	"context"
	"errors"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Event types
const (
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentLink      = "payment_link"
)

// Event is the payload handed to every notifier.
type Event struct {
	Type        string          `json:"type"`
	BookingID   string          `json:"booking_id"`
	OrderID     string          `json:"order_id,omitempty"`
	UserID      string          `json:"user_id"`
	TherapistID string          `json:"therapist_id"`
	Amount      decimal.Decimal `json:"amount"`
	Commission  decimal.Decimal `json:"commission"`
	PaymentURL  string          `json:"payment_url,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// Notifier delivers an Event.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// PaymentSucceeded builds the event sent once a booking is paid.
func PaymentSucceeded(b *models.Booking, orderID string) Event {
	return Event{
		Type:        EventPaymentSucceeded,
		BookingID:   b.ID,
		OrderID:     orderID,
		UserID:      b.UserID,
		TherapistID: b.TherapistID,
		Amount:      b.Amount,
		Commission:  b.Commission,
		OccurredAt:  time.Now(),
	}
}

// PaymentLink builds the event that hands the customer a payment link
// after the therapist completes the service.
func PaymentLink(b *models.Booking, orderID, paymentURL string) Event {
	return Event{
		Type:        EventPaymentLink,
		BookingID:   b.ID,
		OrderID:     orderID,
		UserID:      b.UserID,
		TherapistID: b.TherapistID,
		Amount:      b.Amount,
		PaymentURL:  paymentURL,
		OccurredAt:  time.Now(),
	}
}

// LogNotifier writes events to the log. It is the notifier used when no
// broker is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log.Named("notification")}
}

func (n *LogNotifier) Notify(_ context.Context, e Event) error {
	n.log.Info("notification",
		zap.String("type", e.Type),
		zap.String("booking_id", e.BookingID),
		zap.String("order_id", e.OrderID),
		zap.String("user_id", e.UserID),
		zap.String("therapist_id", e.TherapistID),
		zap.String("amount", e.Amount.String()),
		zap.String("payment_url", e.PaymentURL))
	return nil
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
