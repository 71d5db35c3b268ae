package wallet

// Transaction history limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// Operation names used in metrics
const (
	opCredit   = "credit"
	opWithdraw = "withdraw"
	opBalance  = "balance"
)
