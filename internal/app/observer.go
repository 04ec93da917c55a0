package app

import (
	"github.com/rs/zerolog"

	"conche/internal/core"
	"conche/internal/metrics"
)

// logObserver prints one "-> task" line per task that runs. Skipped tasks
// only show up at debug level.
type logObserver struct {
	logger  *zerolog.Logger
	metrics *metrics.Recorder
}

func (o logObserver) TaskRunning(task core.Task) {
	o.logger.Info().Msg("-> " + task.Name())
	o.count(metrics.OutcomeRan)
}

func (o logObserver) TaskSkipped(task core.Task) {
	o.logger.Debug().Str("task", task.Name()).Msg("up to date")
	o.count(metrics.OutcomeSkipped)
}

func (o logObserver) TaskFailed(task core.Task, err error) {
	o.logger.Error().Err(err).Str("task", task.Name()).Msg("task failed")
	o.count(metrics.OutcomeFailed)
}

func (o logObserver) count(outcome string) {
	if o.metrics != nil {
		o.metrics.TaskOutcome(outcome)
	}
}

var _ core.RunObserver = logObserver{}
