package repositories

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet-related database operations
type WalletRepository interface {
	GetByPayeeID(ctx context.Context, payeeID string) (*models.Wallet, error)
	// GetOrCreate returns the payee's wallet, inserting an empty one first
	// if none exists. Safe under concurrent first use.
	GetOrCreate(ctx context.Context, payeeID string) (*models.Wallet, error)
	// LockByPayeeID reads the wallet row with FOR UPDATE. Only meaningful
	// inside ExecuteInTransaction.
	LockByPayeeID(ctx context.Context, payeeID string) (*models.Wallet, error)

	// Credit adds amount to balance and total_earned.
	Credit(ctx context.Context, walletID string, amount decimal.Decimal) error
	// Debit subtracts amount from balance and adds it to total_withdrawn
	// only when the balance covers it. It reports whether the row changed.
	Debit(ctx context.Context, walletID string, amount decimal.Decimal) (bool, error)
}
