package ports

import (
	"context"

	"yuandi/internal/core/domain/model/exchange"
)

// ExchangeRateRepository stores observed rates.
type ExchangeRateRepository interface {
	Save(ctx context.Context, rate exchange.Rate) error

	// Latest returns the most recently fetched rate for the pair, or
	// errs.ObjectNotFoundError when none was ever stored.
	Latest(ctx context.Context, base, quote string) (exchange.Rate, error)
}

// ExchangeRateProvider fetches the current rate from an external source.
type ExchangeRateProvider interface {
	Fetch(ctx context.Context, base, quote string) (exchange.Rate, error)
}
