package wallet

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/commission"

	"github.com/shopspring/decimal"
)

// Service defines the main wallet service interface
type Service interface {
	// CreditWallet credits payeeID for a paid booking in its own transaction.
	CreditWallet(ctx context.Context, payeeID, bookingID string, gross decimal.Decimal) (*CreditResult, error)
	// CreditWithin performs the credit inside the caller's transaction. The
	// caller must call InvalidateCache after commit.
	CreditWithin(ctx context.Context, tx repositories.Store, payeeID, bookingID string, gross decimal.Decimal) (*CreditResult, error)
	ProcessWithdrawal(ctx context.Context, payeeID string, amount decimal.Decimal, bank BankDetails) (*WithdrawalResult, error)

	GetBalance(ctx context.Context, payeeID string) (*models.Wallet, error)
	ListTransactions(ctx context.Context, payeeID string, limit int) ([]models.Transaction, error)
	InvalidateCache(ctx context.Context, payeeID string)
}

// Splitter divides a gross amount into payee share and commission.
type Splitter interface {
	Split(ctx context.Context, gross decimal.Decimal) (commission.Split, error)
}

// CacheOperator defines the wallet caching operations
type CacheOperator interface {
	GetWallet(ctx context.Context, payeeID string) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, payeeID string) error
}
