package sweeper

import (
	"context"
	"time"

	"roomtrack/internal/domain/attendance"
	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/infra"
	"roomtrack/internal/infra/repository"

	"github.com/google/uuid"
)

// FinalizeJob closes reservations whose interval plus grace has lapsed.
// Sessions still IN_SESSION get a synthetic AUTO check-out event and
// move to COMPLETED; NO_SHOW reservations are latched closed.
type FinalizeJob struct {
	reservations ReservationSweepStore
	events       AttendanceSweepStore
	runner       TxRunner
	policy       reservation.Policy
	batchSize    int
}

func NewFinalizeJob(
	reservations ReservationSweepStore,
	events AttendanceSweepStore,
	runner TxRunner,
	policy reservation.Policy,
	batchSize int,
) *FinalizeJob {
	return &FinalizeJob{
		reservations: reservations,
		events:       events,
		runner:       runner,
		policy:       policy,
		batchSize:    batchSize,
	}
}

func (j *FinalizeJob) Name() string { return "finalize" }

func (j *FinalizeJob) Run(ctx context.Context, now time.Time) (int, error) {
	cutoff := j.policy.FinalizeCutoff(now)

	completed, err := j.autoCheckOut(ctx, cutoff, now)
	if err != nil {
		return completed, err
	}
	closed, err := j.closeNoShows(ctx, cutoff, now)
	return completed + closed, err
}

// autoCheckOut writes two rows per session, so each batch scan is
// capped at half the per-transaction write limit.
func (j *FinalizeJob) autoCheckOut(ctx context.Context, cutoff, now time.Time) (int, error) {
	limit := j.batchSize / 2
	if limit < 1 {
		limit = 1
	}

	total := 0
	for {
		sessions, err := j.reservations.ListInSessionEndedBefore(ctx, cutoff, limit)
		if err != nil {
			return total, err
		}
		if len(sessions) == 0 {
			return total, nil
		}

		done, err := j.completeBatch(ctx, sessions, now)
		total += done
		if err != nil {
			return total, err
		}
		if len(sessions) < limit {
			return total, nil
		}
	}
}

func (j *FinalizeJob) completeBatch(ctx context.Context, sessions []repository.SweepSession, now time.Time) (int, error) {
	done := 0
	err := j.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		for _, s := range sessions {
			// Transition first so a lost race leaves no orphan event.
			if err := j.reservations.MarkCompleted(ctx, db, s.ID, now); err != nil {
				if infra.IsKind(err, infra.KindPreconditionFailed) {
					continue
				}
				return err
			}
			event, err := attendance.NewEvent(s.ID, s.RoomID, s.UserID, attendance.KindCheckOut, attendance.MethodAuto, now)
			if err != nil {
				return err
			}
			if err := j.events.Insert(ctx, db, event); err != nil {
				return err
			}
			done++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return done, nil
}

func (j *FinalizeJob) closeNoShows(ctx context.Context, cutoff, now time.Time) (int, error) {
	total := 0
	for {
		ids, err := j.reservations.ListNoShowEndedBefore(ctx, cutoff, j.batchSize)
		if err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}

		closed, err := j.closeBatch(ctx, ids, now)
		total += closed
		if err != nil {
			return total, err
		}
		if len(ids) < j.batchSize {
			return total, nil
		}
	}
}

func (j *FinalizeJob) closeBatch(ctx context.Context, ids []uuid.UUID, now time.Time) (int, error) {
	closed := 0
	err := j.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		for _, id := range ids {
			if err := j.reservations.CloseNoShow(ctx, db, id, now); err != nil {
				if infra.IsKind(err, infra.KindPreconditionFailed) {
					continue
				}
				return err
			}
			closed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}
