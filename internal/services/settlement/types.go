package settlement

import (
	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
)

type InitiateRequest struct {
	BookingID string
	PayerID   string
	Origin    string
}

// InitiateResult carries either a mock payment link or the signed fields
// the client posts to GatewayURL.
type InitiateResult struct {
	OrderID        string
	TransactionID  string
	Amount         decimal.Decimal
	GatewayURL     string
	SignedFields   map[string]string
	MockPaymentURL string
	MockMode       bool
}

// PaymentURL is the link handed to the customer.
func (r *InitiateResult) PaymentURL() string {
	if r.MockMode {
		return r.MockPaymentURL
	}
	return r.GatewayURL
}

// Outcome is the result of reconciling one callback.
type Outcome struct {
	Success        bool
	OrderID        string
	Reason         string
	Code           string
	Compensation   CompensationResult
	AlreadySettled bool
}

type StatusView struct {
	OrderID              string          `json:"order_id"`
	GatewayTransactionID string          `json:"transaction_id"`
	Status               string          `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	BookingID            string          `json:"booking_id"`
}

type RequestPaymentResult struct {
	Booking *models.Booking
	Payment *InitiateResult
}
