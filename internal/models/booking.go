package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking statuses
const (
	BookingStatusPending         = "pending"
	BookingStatusAccepted        = "accepted"
	BookingStatusOnTheWay        = "on_the_way"
	BookingStatusInProgress      = "in_progress"
	BookingStatusAwaitingPayment = "awaiting_payment"
	BookingStatusCompleted       = "completed"
	BookingStatusCancelled       = "cancelled"
)

// Booking payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Booking carries the fields the settlement flow reads and writes. The rest
// of the booking record is owned by the booking module.
type Booking struct {
	ID                   string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               string          `gorm:"index;not null" json:"user_id"`
	TherapistID          string          `gorm:"index;not null" json:"therapist_id"`
	Amount               decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Commission           decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"commission"`
	Status               string          `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus        string          `gorm:"not null;default:'pending'" json:"payment_status"`
	PaymentOrderID       *string         `gorm:"index" json:"payment_order_id,omitempty"`
	PaymentTransactionID *string         `json:"payment_transaction_id,omitempty"`
	PaymentMode          string          `json:"payment_mode,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// PayableStatuses are the booking statuses from which a customer may pay.
var PayableStatuses = []string{BookingStatusAwaitingPayment, BookingStatusCompleted}

// RetryablePaymentStatuses are the payment statuses that allow a new attempt.
var RetryablePaymentStatuses = []string{PaymentStatusPending, PaymentStatusFailed}

// CompletableStatuses are the booking statuses a therapist may close out.
var CompletableStatuses = []string{
	BookingStatusAccepted,
	BookingStatusOnTheWay,
	BookingStatusInProgress,
	BookingStatusAwaitingPayment,
}

// IsPayableBy reports whether payerID may start a payment for the booking.
func (b *Booking) IsPayableBy(payerID string) bool {
	return b.UserID == payerID &&
		contains(RetryablePaymentStatuses, b.PaymentStatus) &&
		contains(PayableStatuses, b.Status)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
