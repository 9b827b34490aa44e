package jobs

import (
	"context"
	"time"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultPruneSchedule fires daily at 04:00 KST, well after the date rollover.
const DefaultPruneSchedule = "0 0 4 * * *"

// DefaultSequenceRetention keeps yesterday's counter for late retries.
const DefaultSequenceRetention = 2

type sequencePruner interface {
	Prune(ctx context.Context, beforeKey string) (int64, error)
}

// SequencePruningJob drops daily order number counters that can no longer be
// incremented. Order numbers themselves are never touched.
type SequencePruningJob struct {
	pruner    sequencePruner
	clock     kernel.Clock
	retention int
	schedule  string
	cron      *cron.Cron
	logger    zerolog.Logger
}

func NewSequencePruningJob(
	pruner sequencePruner,
	clock kernel.Clock,
	retention int,
	schedule string,
	logger zerolog.Logger,
) *SequencePruningJob {
	if retention < 1 {
		retention = DefaultSequenceRetention
	}
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}
	return &SequencePruningJob{
		pruner:    pruner,
		clock:     clock,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(kernel.KST)),
		logger:    logger.With().Str("component", "sequence_pruning_job").Logger(),
	}
}

func (j *SequencePruningJob) Name() string {
	return "sequence pruning"
}

func (j *SequencePruningJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Int("retention_days", j.retention).Msg("sequence pruning job started")
	return nil
}

// Run removes counters for KST dates older than the retention window.
func (j *SequencePruningJob) Run(ctx context.Context) {
	beforeKey := j.CutoffKey()

	removed, err := j.pruner.Prune(ctx, beforeKey)
	if err != nil {
		j.logger.Error().Err(err).Str("before", beforeKey).Msg("sequence pruning failed")
		return
	}
	if removed > 0 {
		j.logger.Info().Int64("removed", removed).Str("before", beforeKey).Msg("sequence counters pruned")
	}
}

// CutoffKey is the oldest date key that survives a run.
func (j *SequencePruningJob) CutoffKey() string {
	return order.DateKey(j.clock.Now().AddDate(0, 0, -(j.retention - 1)))
}

func (j *SequencePruningJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("sequence pruning job stopped")
}
