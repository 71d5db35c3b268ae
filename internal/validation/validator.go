// Package validation checks request payloads before they reach the services.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Validator collects field errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first error reported for a field.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Amount requires a positive amount with at most two decimal places and no
// more than MaxAmount.
func (v *Validator) Amount(field string, amount decimal.Decimal) {
	v.Check(amount.IsPositive(), field, "must be greater than 0")
	v.Check(amount.Equal(amount.Round(2)), field, "must have at most 2 decimal places")
	v.Check(amount.LessThanOrEqual(MaxAmount), field, "exceeds the maximum allowed amount")
}
