// Package commission splits a gross payment into the payee's share and the
// platform commission.
package commission

import (
	"context"
	"fmt"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RateSource yields the current commission percentage.
type RateSource interface {
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
}

// Split is the result of applying a rate to a gross amount.
// PayeeAmount + Commission always equals Gross.
type Split struct {
	Gross       decimal.Decimal
	Rate        decimal.Decimal
	PayeeAmount decimal.Decimal
	Commission  decimal.Decimal
}

// Policy resolves the rate once per Split call.
type Policy struct {
	rates RateSource
}

func NewPolicy(rates RateSource) *Policy {
	return &Policy{rates: rates}
}

func (p *Policy) Split(ctx context.Context, gross decimal.Decimal) (Split, error) {
	rate, err := p.rates.CommissionRate(ctx)
	if err != nil {
		return Split{}, fmt.Errorf("failed to resolve commission rate: %w", err)
	}
	return Calculate(gross, rate)
}

// Calculate applies rate (a percentage) to gross. Amounts are not rounded.
func Calculate(gross, rate decimal.Decimal) (Split, error) {
	if gross.IsNegative() {
		return Split{}, appErrors.ErrInvalidAmount
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return Split{}, fmt.Errorf("commission rate %s outside [0, 100]", rate)
	}
	commission := gross.Mul(rate).Div(hundred)
	return Split{
		Gross:       gross,
		Rate:        rate,
		PayeeAmount: gross.Sub(commission),
		Commission:  commission,
	}, nil
}
