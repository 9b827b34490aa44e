package kernel

import (
	"fmt"

	"yuandi/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places an amount may carry. It matches
// the numeric(12,2) price column.
const MoneyScale = 2

// Money is a non-negative amount in the order's currency with at most
// MoneyScale decimal places. Amounts are stored exactly, never rounded.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the additive identity.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rejects negative amounts and amounts finer than MoneyScale.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if !FitsMoneyScale(amount) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount}, nil
}

// FitsMoneyScale reports whether amount has no digits beyond MoneyScale.
// Trailing zeros do not count: 1.500 fits.
func FitsMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyScale))
}

// MoneyFromFloat accepts the JSON number form used by the API.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoney panics on an amount NewMoney rejects. Intended for literals in tests and tables.
func MustMoney(amount string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Mul multiplies by a quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Float64 is for JSON output only.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
