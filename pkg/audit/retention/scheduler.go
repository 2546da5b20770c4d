package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler invokes a pruning function on a cron schedule. The spec is
// validated up front, so a bad expression fails at construction rather
// than at Start.
type Scheduler struct {
	spec   string
	run    func(context.Context)
	logger *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewScheduler creates a scheduler for the given standard cron spec,
// for example "0 3 * * *" for daily at 3 AM.
func NewScheduler(spec string, run func(context.Context)) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	return &Scheduler{
		spec:   spec,
		run:    run,
		logger: slog.Default().With("component", "audit.scheduler"),
	}, nil
}

// Start arms the schedule. The scheduler stops itself when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}
	c.Start()
	s.cron = c

	s.logger.Info("retention scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop disarms the schedule and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}

	<-s.cron.Stop().Done()
	s.cron = nil
	s.logger.Info("retention scheduler stopped")
}

// NextRun returns the next scheduled run time, or nil when the
// scheduler is not started.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
