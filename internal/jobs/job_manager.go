package jobs

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs   []Job
	logger zerolog.Logger
}

// NewJobManager creates a manager for jobs. Nil jobs are skipped so optional
// jobs can be passed unconditionally.
func NewJobManager(logger zerolog.Logger, jobs ...Job) *JobManager {
	enabled := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if job != nil {
			enabled = append(enabled, job)
		}
	}
	return &JobManager{jobs: enabled, logger: logger}
}

// StartAll starts every job in order. If one fails, the ones already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
	}

	jm.logger.Info().Int("jobs", len(jm.jobs)).Msg("background jobs started")
	return nil
}

// StopAll stops jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
