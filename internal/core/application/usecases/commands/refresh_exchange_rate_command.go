package commands

import (
	"errors"
	"fmt"
	"strings"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/pkg/errs"
	"yuandi/internal/pkg/guard"
)

var (
	ErrRefreshExchangeRateCommandIsNotConstructed = errors.New(
		"RefreshExchangeRateCommand must be created via NewRefreshExchangeRateCommand constructor",
	)
)

// RefreshExchangeRateCommand fetches and stores the current rate of a pair.
type RefreshExchangeRateCommand struct {
	base  string
	quote string

	guard guard.ConstructorGuard
}

// NewRefreshExchangeRateCommand defaults an empty pair to CNY/KRW.
func NewRefreshExchangeRateCommand(base, quote string) (RefreshExchangeRateCommand, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if base == "" {
		base = exchange.CurrencyCNY
	}
	if quote == "" {
		quote = exchange.CurrencyKRW
	}
	if base == quote {
		return RefreshExchangeRateCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"quote",
			fmt.Errorf("%s cannot be quoted in itself", base),
		)
	}

	return RefreshExchangeRateCommand{
		base:  base,
		quote: quote,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshExchangeRateCommand) Validate() error {
	return c.guard.Validate(ErrRefreshExchangeRateCommandIsNotConstructed)
}

func (c RefreshExchangeRateCommand) Base() string {
	return c.base
}

func (c RefreshExchangeRateCommand) Quote() string {
	return c.quote
}
