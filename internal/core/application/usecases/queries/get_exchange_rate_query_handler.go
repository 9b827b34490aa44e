package queries

import (
	"context"
	"errors"
	"time"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse is the rate the shop prices with. Stale marks a rate
// older than the configured age; Fallback marks the configured constant used
// when no rate was ever fetched.
type ExchangeRateResponse struct {
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	FetchedAt *time.Time      `json:"fetchedAt"`
	Stale     bool            `json:"stale"`
	Fallback  bool            `json:"fallback"`
}

// GetExchangeRateQueryHandler serves the stored rate and refreshes it once it
// is older than maxAge.
//
// Resolution order:
//  1. stored rate younger than maxAge
//  2. freshly fetched rate, stored for next time
//  3. last stored rate, flagged stale
//  4. fallback rate, flagged stale and fallback
//
// Fetch failures and failures to store a fetched rate are logged, never
// returned: the caller still gets the best rate available.
type GetExchangeRateQueryHandler struct {
	rates    ports.ExchangeRateRepository
	provider ports.ExchangeRateProvider
	clock    kernel.Clock
	maxAge   time.Duration
	fallback decimal.Decimal
	logger   zerolog.Logger
}

func NewGetExchangeRateQueryHandler(
	rates ports.ExchangeRateRepository,
	provider ports.ExchangeRateProvider,
	clock kernel.Clock,
	maxAge time.Duration,
	fallback decimal.Decimal,
	logger zerolog.Logger,
) GetExchangeRateQueryHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if maxAge <= 0 {
		maxAge = exchange.DefaultMaxAge
	}
	return GetExchangeRateQueryHandler{
		rates:    rates,
		provider: provider,
		clock:    clock,
		maxAge:   maxAge,
		fallback: fallback,
		logger:   logger.With().Str("component", "exchange_rate_query").Logger(),
	}
}

func (h GetExchangeRateQueryHandler) Handle(
	ctx context.Context,
	query GetExchangeRateQuery,
) (ExchangeRateResponse, error) {
	if err := query.Validate(); err != nil {
		return ExchangeRateResponse{}, err
	}

	stored, err := h.rates.Latest(ctx, query.Base(), query.Quote())
	found := err == nil
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return ExchangeRateResponse{}, err
	}

	now := h.clock.Now()
	if found && !stored.IsStale(now, h.maxAge) {
		return fromRate(stored, false), nil
	}

	if h.provider != nil {
		fresh, fetchErr := h.provider.Fetch(ctx, query.Base(), query.Quote())
		if fetchErr == nil {
			if saveErr := h.rates.Save(ctx, fresh); saveErr != nil {
				h.logger.Error().Err(saveErr).
					Str("base", query.Base()).
					Str("quote", query.Quote()).
					Msg("store fetched exchange rate")
			}
			return fromRate(fresh, false), nil
		}
		h.logger.Warn().Err(fetchErr).
			Str("base", query.Base()).
			Str("quote", query.Quote()).
			Bool("stored", found).
			Msg("fetch exchange rate")
	}

	if found {
		return fromRate(stored, true), nil
	}

	return ExchangeRateResponse{
		Base:     query.Base(),
		Quote:    query.Quote(),
		Rate:     h.fallback,
		Source:   "fallback",
		Stale:    true,
		Fallback: true,
	}, nil
}

func fromRate(rate exchange.Rate, stale bool) ExchangeRateResponse {
	fetchedAt := rate.FetchedAt()
	return ExchangeRateResponse{
		Base:      rate.Base(),
		Quote:     rate.Quote(),
		Rate:      rate.Value(),
		Source:    rate.Source(),
		FetchedAt: &fetchedAt,
		Stale:     stale,
	}
}
