// Package exchange models the CNY to KRW conversion rate used when pricing
// goods bought in China for Korean customers.
package exchange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yuandi/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	CurrencyCNY = "CNY"
	CurrencyKRW = "KRW"

	// DefaultMaxAge is how long a stored rate is trusted before a refetch.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Rate is one observed conversion rate: 1 Base = Value Quote.
type Rate struct {
	base      string
	quote     string
	value     decimal.Decimal
	source    string
	fetchedAt time.Time
}

func NewRate(base, quote string, value decimal.Decimal, source string, fetchedAt time.Time) (Rate, error) {
	r := Rate{
		base:      strings.ToUpper(strings.TrimSpace(base)),
		quote:     strings.ToUpper(strings.TrimSpace(quote)),
		value:     value,
		source:    strings.TrimSpace(source),
		fetchedAt: fetchedAt.UTC(),
	}

	var errList []error
	if len(r.base) != 3 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("base", fmt.Errorf("%q is not a currency code", base)))
	}
	if len(r.quote) != 3 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quote", fmt.Errorf("%q is not a currency code", quote)))
	}
	if !value.IsPositive() {
		errList = append(errList, errs.NewValueIsOutOfRangeError("rate", value.String(), "0 (exclusive)", "unbounded"))
	}
	if fetchedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("fetchedAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return Rate{}, err
	}
	return r, nil
}

func (r Rate) Base() string { return r.base }
func (r Rate) Quote() string { return r.quote }
func (r Rate) Value() decimal.Decimal { return r.value }
func (r Rate) Source() string { return r.source }
func (r Rate) FetchedAt() time.Time { return r.fetchedAt }
func (r Rate) IsZero() bool { return r.value.IsZero() && r.base == "" }

// IsStale reports whether the rate is older than maxAge at now.
func (r Rate) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(r.fetchedAt) > maxAge
}

// Convert converts an amount in Base to Quote, rounded to whole units.
func (r Rate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.value).Round(0)
}
