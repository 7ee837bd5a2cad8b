package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"GoldLens/internal/logger"
	"GoldLens/internal/notifier"
	"GoldLens/internal/pipeline"
)

// Runner performs one pipeline run.
type Runner interface {
	Run(ctx context.Context, asOf time.Time) (*pipeline.Report, error)
}

// Scheduler triggers pipeline runs on a cron spec.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier *notifier.TelegramNotifier // nil disables notifications
	Ctx      context.Context
	Now      func() time.Time
}

// NewScheduler creates a Scheduler. A tick that fires while the previous run
// is still going is skipped.
func NewScheduler(ctx context.Context, runner Runner, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Runner:   runner,
		Notifier: tn,
		Ctx:      ctx,
		Now:      time.Now,
	}
}

// Register adds the run task on spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runTask); err != nil {
		return fmt.Errorf("register run task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.L.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.L.Info("scheduler stopped")
}

// RunNow executes one run immediately (for one-shot mode and RUN_ON_START).
func (s *Scheduler) RunNow() error {
	rep, err := s.Runner.Run(s.Ctx, s.Now())
	if err != nil {
		if rep != nil {
			s.trySend(notifier.FormatRunFailure(rep, err))
		}
		return err
	}
	s.trySend(notifier.FormatRunReport(rep))
	return nil
}

func (s *Scheduler) runTask() {
	logger.L.Info("running scheduled collection")
	if err := s.RunNow(); err != nil {
		logger.L.Errorf("scheduled run: %v", err)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		logger.L.Errorf("send notification: %v", err)
	}
}
