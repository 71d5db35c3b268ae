package validation

import "github.com/shopspring/decimal"

// MaxAmount bounds a single withdrawal.
var MaxAmount = decimal.NewFromInt(1_000_000)

// Bank detail fields accepted on withdrawal
const (
	MaxBankFields      = 10
	MaxBankFieldLength = 100
)
