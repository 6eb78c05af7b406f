// Package sweeper runs the periodic jobs that push stale reservations
// through their lifecycle without user interaction.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"roomtrack/internal/pkg/clock"
)

// Job is one sweep pass. Run returns how many reservations it wrote.
type Job interface {
	Name() string
	Run(ctx context.Context, now time.Time) (int, error)
}

type Sweeper struct {
	jobs     []Job
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func New(jobs []Job, interval time.Duration, clk clock.Clock, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		jobs:     jobs,
		interval: interval,
		clock:    clk,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. The first pass runs immediately so a
// restart does not wait a full interval to catch up.
func (s *Sweeper) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}

func (s *Sweeper) loop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes every job against a single observation of the clock.
// A failing job is logged and does not block the others.
func (s *Sweeper) RunOnce(ctx context.Context) {
	now := s.clock.Now()
	for _, job := range s.jobs {
		swept, err := job.Run(ctx, now)
		if err != nil {
			s.logger.Error("sweep job failed",
				slog.String("job", job.Name()),
				slog.Time("at", now),
				slog.Int("swept", swept),
				slog.String("error", err.Error()),
			)
			continue
		}
		if swept > 0 {
			s.logger.Info("sweep job completed",
				slog.String("job", job.Name()),
				slog.Time("at", now),
				slog.Int("swept", swept),
			)
		}
	}
}
