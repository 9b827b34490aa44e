package queries

import (
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/pkg/guard"
)

var (
	ErrGetExchangeRateQueryIsNotConstructed = errors.New(
		"GetExchangeRateQuery must be created via NewGetExchangeRateQuery constructor",
	)
)

// GetExchangeRateQuery asks for the current rate of a currency pair.
type GetExchangeRateQuery struct {
	base  string
	quote string

	guard guard.ConstructorGuard
}

// NewGetExchangeRateQuery defaults an empty pair to CNY/KRW.
func NewGetExchangeRateQuery(base, quote string) GetExchangeRateQuery {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if base == "" {
		base = exchange.CurrencyCNY
	}
	if quote == "" {
		quote = exchange.CurrencyKRW
	}

	return GetExchangeRateQuery{
		base:  base,
		quote: quote,
		guard: guard.NewConstructorGuard(),
	}
}

func (q GetExchangeRateQuery) Validate() error {
	return q.guard.Validate(ErrGetExchangeRateQueryIsNotConstructed)
}

func (q GetExchangeRateQuery) Base() string {
	return q.base
}

func (q GetExchangeRateQuery) Quote() string {
	return q.quote
}
