package jobs

import (
	"context"
	"time"

	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultExchangeRateSchedule fires at the top of every hour.
const DefaultExchangeRateSchedule = "0 0 * * * *"

const refreshTimeout = 30 * time.Second

type exchangeRateRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshExchangeRateCommand) (exchange.Rate, error)
}

// ExchangeRateRefreshJob fetches the CNY/KRW rate on a schedule so that
// order screens rarely have to wait for the upstream API.
type ExchangeRateRefreshJob struct {
	handler  exchangeRateRefresher
	schedule string
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewExchangeRateRefreshJob(
	handler exchangeRateRefresher,
	schedule string,
	logger zerolog.Logger,
) *ExchangeRateRefreshJob {
	if schedule == "" {
		schedule = DefaultExchangeRateSchedule
	}
	return &ExchangeRateRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(kernel.KST)),
		logger:   logger.With().Str("component", "exchange_rate_refresh_job").Logger(),
	}
}

func (j *ExchangeRateRefreshJob) Name() string {
	return "exchange rate refresh"
}

// Start schedules the job. The first refresh happens on the first tick.
func (j *ExchangeRateRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("exchange rate refresh job started")
	return nil
}

// Run performs a single refresh. Failures are logged; the stored rate stays.
func (j *ExchangeRateRefreshJob) Run(ctx context.Context) {
	cmd, err := commands.NewRefreshExchangeRateCommand(exchange.CurrencyCNY, exchange.CurrencyKRW)
	if err != nil {
		j.logger.Error().Err(err).Msg("build refresh command")
		return
	}

	rate, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Warn().Err(err).Msg("exchange rate refresh failed")
		return
	}

	j.logger.Info().
		Str("pair", rate.Base()+"/"+rate.Quote()).
		Str("rate", rate.Value().String()).
		Str("source", rate.Source()).
		Msg("exchange rate refreshed")
}

// Stop waits for a running refresh to finish.
func (j *ExchangeRateRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("exchange rate refresh job stopped")
}
