package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction kinds
const (
	TransactionKindPayment      = "payment"
	TransactionKindWalletCredit = "wallet_credit"
	TransactionKindCommission   = "commission"
	TransactionKindWithdrawal   = "withdrawal"
)

// Transaction statuses
const (
	TransactionStatusPending = "pending"
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)

const PaymentModePaytm = "paytm"

// Transaction is a single ledger record. Amount never changes after
// creation; Status only leaves pending once.
type Transaction struct {
	ID                   string          `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID            *string         `gorm:"index" json:"booking_id,omitempty"`
	PayerID              *string         `gorm:"index" json:"payer_id,omitempty"`
	PayeeID              *string         `gorm:"index" json:"payee_id,omitempty"`
	Kind                 string          `gorm:"not null;index" json:"kind"`
	Amount               decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Status               string          `gorm:"not null;default:'pending'" json:"status"`
	PaymentMode          string          `json:"payment_mode,omitempty"`
	GatewayOrderID       *string         `gorm:"uniqueIndex" json:"gateway_order_id,omitempty"`
	GatewayTransactionID *string         `json:"gateway_transaction_id,omitempty"`
	GatewayResponse      JSON            `gorm:"type:jsonb" json:"gateway_response,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TransactionStatusPending
	}
	return nil
}

// IsTerminal reports whether the transaction already left pending.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusSuccess || t.Status == TransactionStatusFailed
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
