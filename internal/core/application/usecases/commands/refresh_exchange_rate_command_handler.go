package commands

import (
	"context"
	"fmt"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/ports"
)

// RefreshExchangeRateCommandHandler pulls a rate from the provider and stores it.
type RefreshExchangeRateCommandHandler struct {
	provider ports.ExchangeRateProvider
	rates    ports.ExchangeRateRepository
}

func NewRefreshExchangeRateCommandHandler(
	provider ports.ExchangeRateProvider,
	rates ports.ExchangeRateRepository,
) RefreshExchangeRateCommandHandler {
	return RefreshExchangeRateCommandHandler{
		provider: provider,
		rates:    rates,
	}
}

func (h RefreshExchangeRateCommandHandler) Handle(
	ctx context.Context,
	cmd RefreshExchangeRateCommand,
) (exchange.Rate, error) {
	if err := cmd.Validate(); err != nil {
		return exchange.Rate{}, err
	}

	rate, err := h.provider.Fetch(ctx, cmd.Base(), cmd.Quote())
	if err != nil {
		return exchange.Rate{}, fmt.Errorf("fetch %s/%s rate: %w", cmd.Base(), cmd.Quote(), err)
	}

	if err = h.rates.Save(ctx, rate); err != nil {
		return exchange.Rate{}, err
	}

	return rate, nil
}
