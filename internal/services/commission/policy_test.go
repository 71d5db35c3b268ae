package commission

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRate struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (f *fixedRate) CommissionRate(context.Context) (decimal.Decimal, error) {
	f.calls++
	return f.rate, f.err
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		gross      string
		rate       string
		payee      string
		commission string
	}{
		{"ten percent", "1000", "10", "900", "100"},
		{"zero rate", "1000", "0", "1000", "0"},
		{"full rate", "1000", "100", "0", "1000"},
		{"zero gross", "0", "10", "0", "0"},
		{"fractional", "499.99", "12.5", "437.49125", "62.49875"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := Calculate(d(tt.gross), d(tt.rate))
			require.NoError(t, err)

			assert.True(t, split.PayeeAmount.Equal(d(tt.payee)), "payee %s", split.PayeeAmount)
			assert.True(t, split.Commission.Equal(d(tt.commission)), "commission %s", split.Commission)
			assert.True(t, split.PayeeAmount.Add(split.Commission).Equal(split.Gross))
		})
	}
}

func TestCalculate_Invalid(t *testing.T) {
	_, err := Calculate(d("-1"), d("10"))
	assert.ErrorIs(t, err, appErrors.ErrInvalidAmount)

	_, err = Calculate(d("100"), d("101"))
	assert.Error(t, err)
}

func TestPolicy_SplitReadsRateEveryCall(t *testing.T) {
	src := &fixedRate{rate: d("10")}
	p := NewPolicy(src)

	split, err := p.Split(context.Background(), d("1000"))
	require.NoError(t, err)
	assert.True(t, split.Commission.Equal(d("100")))

	src.rate = d("20")
	split, err = p.Split(context.Background(), d("1000"))
	require.NoError(t, err)
	assert.True(t, split.Commission.Equal(d("200")))
	assert.Equal(t, 2, src.calls)
}

func TestPolicy_SplitRateError(t *testing.T) {
	p := NewPolicy(&fixedRate{err: errors.New("db down")})
	_, err := p.Split(context.Background(), d("1000"))
	assert.Error(t, err)
}
