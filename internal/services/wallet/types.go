package wallet

import (
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
)

// CreditResult reports a completed credit.
type CreditResult struct {
	Wallet     *models.Wallet
	Credited   decimal.Decimal
	Commission decimal.Decimal
	Rate       decimal.Decimal
}

// WithdrawalResult reports a completed withdrawal.
type WithdrawalResult struct {
	Wallet      *models.Wallet
	Transaction *models.Transaction
}

// BankDetails is the payout destination, stored verbatim with the
// withdrawal record.
type BankDetails map[string]string

// MetricsCollector defines the interface for collecting wallet metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)

	RecordCacheHit()
	RecordCacheMiss()

	RecordError(operation, code string)
	RecordVolume(kind string, amount decimal.Decimal)
}
