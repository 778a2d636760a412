// Package scheduler runs periodic background jobs (cache warm-up) with cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one scheduled unit of work. It must return when ctx is done.
type Job func(ctx context.Context) error

// Scheduler は cron ジョブを管理します。
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// New creates a scheduler using standard five-field cron specs. Jobs run
// with contexts derived from ctx and are skipped while a previous run of the
// same job is still in progress.
func New(ctx context.Context) *Scheduler {
	l := zapLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		ctx: ctx,
	}
}

// Register adds job under name. timeout bounds a single run.
func (s *Scheduler) Register(name, spec string, timeout time.Duration, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, timeout, job) }); err != nil {
		return fmt.Errorf("register %s (%q): %w", name, spec, err)
	}
	zap.S().Infow("scheduled job registered", "job", name, "spec", spec)
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	zap.S().Infow("scheduler started", "jobs", s.Len())
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		zap.S().Infow("scheduler stopped")
	case <-ctx.Done():
		zap.S().Warnw("scheduler stop timed out", "error", ctx.Err())
	}
}

func (s *Scheduler) run(name string, timeout time.Duration, job Job) {
	ctx := s.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job(ctx); err != nil {
		zap.S().Errorw("scheduled job failed", "job", name, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return
	}
	zap.S().Infow("scheduled job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
}

// zapLogger adapts the global zap logger to cron.Logger.
type zapLogger struct{}

func (zapLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.S().Debugw("cron: "+msg, keysAndValues...)
}

func (zapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.S().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
