package repositories

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
)

// BookingRepository covers the booking writes made by the payment flow.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindPayable returns the booking only if payerID may pay for it now.
	FindPayable(ctx context.Context, id, payerID string) (*models.Booking, error)
	// AttachOrder records a fresh payment attempt on the booking.
	AttachOrder(ctx context.Context, id, orderID string) error
	// MarkPaid and RevertPayment only touch a booking whose current order is
	// orderID and which is not already paid.
	MarkPaid(ctx context.Context, id, orderID, gatewayTxnID string, commission decimal.Decimal) error
	RevertPayment(ctx context.Context, id, orderID string) (bool, error)
	// MarkAwaitingPayment closes out the service on behalf of the therapist.
	MarkAwaitingPayment(ctx context.Context, id, therapistID string) (*models.Booking, error)
}
