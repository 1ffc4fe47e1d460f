package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/couchcryptid/forecast-etl/internal/observability"
	"github.com/couchcryptid/forecast-etl/internal/pipeline"
)

const jobTag = "forecast-sync"

// Runner performs one sync.
type Runner interface {
	RunOnce(ctx context.Context) (pipeline.Summary, error)
}

// Scheduler triggers forecast syncs on a six-field cron expression
// (seconds first). A run that is still going when the next tick fires
// causes that tick to be skipped.
type Scheduler struct {
	cron       *gocron.Scheduler
	cronExpr   string
	runOnStart bool
	runner     Runner
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Scheduler evaluated in UTC.
func New(cronExpr string, runOnStart bool, runner Runner, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		cron:       s,
		cronExpr:   cronExpr,
		runOnStart: runOnStart,
		runner:     runner,
		logger:     logger,
		metrics:    metrics,
	}
}

// Start registers the sync job and starts the scheduler in the background.
// Runs use ctx, so cancelling it aborts an in-flight sync.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.CronWithSeconds(s.cronExpr).Tag(jobTag).Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule sync %q: %w", s.cronExpr, err)
	}

	s.cron.StartAsync()
	s.metrics.SchedulerRunning.Set(1)
	s.logger.Info("scheduler started", "cron", s.cronExpr, "next_run", s.NextRun())

	if s.runOnStart {
		if err := s.TriggerSync(); err != nil {
			return fmt.Errorf("trigger initial sync: %w", err)
		}
	}
	return nil
}

// TriggerSync starts a sync now unless one is already running.
func (s *Scheduler) TriggerSync() error {
	return s.cron.RunByTag(jobTag)
}

// NextRun reports when the sync job fires next.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.cron.NextRun()
	return next
}

// Stop prevents future runs and waits for a running sync to return.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.metrics.SchedulerRunning.Set(0)
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	sum, err := s.runner.RunOnce(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		s.logger.Info("sync cancelled", "run_id", sum.RunID)
	default:
		s.logger.Error("sync failed", "run_id", sum.RunID, "error", err)
	}
}
