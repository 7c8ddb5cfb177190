package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/scaledesk/scaledesk/internal/jobs"
)

// Sweeper rewrites stale warranty status hints and reports how many changed.
type Sweeper interface {
	SweepWarrantyStatus(ctx context.Context) (int, error)
}

// SweepObserver receives the number of records rewritten by each run.
type SweepObserver interface {
	ObserveSweep(n int)
}

// WarrantySweepJob handles TaskWarrantySweep.
type WarrantySweepJob struct {
	Sweeper  Sweeper
	Logger   *slog.Logger
	Observer SweepObserver
	Metrics  *jobmetrics.Metrics
}

// NewWarrantySweepJob wires dependencies for the sweep handler. observer and
// metrics may be nil.
func NewWarrantySweepJob(sweeper Sweeper, logger *slog.Logger, observer SweepObserver, metrics *jobmetrics.Metrics) *WarrantySweepJob {
	return &WarrantySweepJob{Sweeper: sweeper, Logger: logger, Observer: observer, Metrics: metrics}
}

// Handle processes warranty sweep tasks.
func (j *WarrantySweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Sweeper == nil {
		return errors.New("warranty sweep: handler not configured")
	}
	var payload WarrantySweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskWarrantySweep)
	logger := j.logger().With(slog.String("trigger", payload.Trigger))
	start := time.Now()
	changed, err := j.Sweeper.SweepWarrantyStatus(ctx)
	if j.Observer != nil {
		j.Observer.ObserveSweep(changed)
	}
	if err != nil {
		logger.Error("warranty sweep", slog.Int("changed", changed), slog.Any("error", err))
		return tracker.End(err)
	}
	logger.Info("warranty sweep complete",
		slog.Int("changed", changed),
		slog.Duration("elapsed", time.Since(start)),
	)
	return tracker.End(nil)
}

func (j *WarrantySweepJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
