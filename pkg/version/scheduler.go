package version

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/docsite/pkg/logger"
)

// DefaultSchedule refreshes the version once per max age.
const DefaultSchedule = "@every 1h"

// Scheduler refreshes a Synchronizer on a cron schedule.
type Scheduler struct {
	sync       *Synchronizer
	schedule   cron.Schedule
	logger     *slog.Logger
	timeout    time.Duration
	runOnStart bool

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler logger.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRefreshTimeout bounds each scheduled refresh.
// Default: 30 seconds
func WithRefreshTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRunOnStart performs one refresh as soon as the scheduler starts.
func WithRunOnStart() SchedulerOption {
	return func(s *Scheduler) {
		s.runOnStart = true
	}
}

// NewScheduler creates a scheduler for spec.
// Spec is a 5-field cron expression or a descriptor such as "@every 1h" or "@hourly".
// An empty spec uses DefaultSchedule.
func NewScheduler(syncer *Synchronizer, spec string, opts ...SchedulerOption) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, spec, err)
	}

	s := &Scheduler{
		sync:     syncer,
		schedule: schedule,
		logger:   logger.NewNope(),
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins periodic refreshes. It does not block.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() { s.run(runCtx) }))
	c.Start()

	s.cron = c
	s.cancel = cancel

	if s.runOnStart {
		go s.run(runCtx)
	}

	s.logger.InfoContext(ctx, "version scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running refresh or ctx expiry.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	done := c.Stop()
	select {
	case <-done.Done():
		cancel()
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err := s.sync.Refresh(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "scheduled version refresh failed", slog.String("error", err.Error()))
		return
	}
	s.logger.DebugContext(ctx, "scheduled version refresh", slog.String("version", rec.Value))
}
