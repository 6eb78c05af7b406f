package components

import (
	"context"
	"log/slog"

	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/pkg/clock"
	"roomtrack/internal/pkg/config"
	"roomtrack/internal/sweeper"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		NewNoShowJob,
		NewFinalizeJob,
		NewSweeper,
	),
	fx.Invoke(registerSweeper),
)

func NewNoShowJob(
	reservations sweeper.ReservationSweepStore,
	runner sweeper.TxRunner,
	policy reservation.Policy,
	cfg config.Config,
) *sweeper.NoShowJob {
	return sweeper.NewNoShowJob(reservations, runner, policy, cfg.Sweeper.BatchSize)
}

func NewFinalizeJob(
	reservations sweeper.ReservationSweepStore,
	events sweeper.AttendanceSweepStore,
	runner sweeper.TxRunner,
	policy reservation.Policy,
	cfg config.Config,
) *sweeper.FinalizeJob {
	return sweeper.NewFinalizeJob(reservations, events, runner, policy, cfg.Sweeper.BatchSize)
}

// The no-show sweep runs before finalize so a reservation marked
// NO_SHOW in this pass closes on a later one, never the same tick.
func NewSweeper(
	noShow *sweeper.NoShowJob,
	finalize *sweeper.FinalizeJob,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *sweeper.Sweeper {
	jobs := []sweeper.Job{noShow, finalize}
	return sweeper.New(jobs, cfg.Sweeper.Interval, clk, logger)
}

func registerSweeper(lc fx.Lifecycle, s *sweeper.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Runs for the life of the process, not the startup context.
			s.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
