package errors

var (
	ErrNotEligible = &DomainError{
		Code:    "NOT_ELIGIBLE",
		Message: "booking not found or not eligible for payment",
	}
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "transaction not found",
	}
	ErrInvalidSignature = &DomainError{
		Code:    "INVALID_SIGNATURE",
		Message: "invalid checksum",
	}
	ErrGatewayUnavailable = &DomainError{
		Code:    "GATEWAY_UNAVAILABLE",
		Message: "payment gateway not configured",
	}
	ErrOrderSuperseded = &DomainError{
		Code:    "ORDER_SUPERSEDED",
		Message: "payment order no longer matches the booking",
	}
	ErrUnexpected = &DomainError{
		Code:    "UNEXPECTED",
		Message: "unexpected error",
	}
)
