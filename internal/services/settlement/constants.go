package settlement

// OrderIDPrefix starts every gateway order id.
const OrderIDPrefix = "BRO"

// CompensationResult reports what happened to the booking after a failed
// payment.
type CompensationResult string

const (
	CompensationApplied CompensationResult = "applied"
	CompensationSkipped CompensationResult = "skipped"
	CompensationFailed  CompensationResult = "failed"
)

// Settlement outcomes used in metrics
const (
	outcomeSuccess        = "success"
	outcomeFailed         = "failed"
	outcomeAlreadySettled = "already_settled"
	outcomeError          = "error"
)

// Failure reasons
const (
	ReasonTransactionNotFound = "Transaction not found"
	ReasonAmountMismatch      = "Amount mismatch"
	ReasonAlreadyFailed       = "Payment already failed"
	ReasonUnavailable         = "Payment verification unavailable"
	ReasonMissingOrderID      = "Missing order id"
)
