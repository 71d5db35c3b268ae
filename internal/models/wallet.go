package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a payee's earnings. Balance always equals
// TotalEarned minus TotalWithdrawn and never goes below zero.
type Wallet struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	PayeeID        string          `gorm:"uniqueIndex;not null" json:"payee_id"`
	Balance        decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"balance"`
	TotalEarned    decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"total_earned"`
	TotalWithdrawn decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"total_withdrawn"`
	LastUpdated    time.Time       `json:"last_updated"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	// Wallets always start empty
	w.Balance = decimal.Zero
	w.TotalEarned = decimal.Zero
	w.TotalWithdrawn = decimal.Zero
	if w.LastUpdated.IsZero() {
		w.LastUpdated = time.Now()
	}
	return nil
}
