package sweeper

import (
	"context"
	"time"

	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/infra"
	"roomtrack/internal/infra/repository"

	"github.com/google/uuid"
)

// NoShowJob moves reservations nobody checked in to from SCHEDULED to
// NO_SHOW once the check-in window has lapsed. The reservation stays
// open so the finalize sweep can close it after the interval ends.
type NoShowJob struct {
	reservations ReservationSweepStore
	runner       TxRunner
	policy       reservation.Policy
	batchSize    int
}

func NewNoShowJob(
	reservations ReservationSweepStore,
	runner TxRunner,
	policy reservation.Policy,
	batchSize int,
) *NoShowJob {
	return &NoShowJob{
		reservations: reservations,
		runner:       runner,
		policy:       policy,
		batchSize:    batchSize,
	}
}

func (j *NoShowJob) Name() string { return "no_show" }

// Run sweeps in batches until the candidate scan comes back short.
// A conditional update that matches zero rows means a check-in or
// cancel won the race; the id is skipped, not failed.
func (j *NoShowJob) Run(ctx context.Context, now time.Time) (int, error) {
	cutoff := j.policy.NoShowCutoff(now)

	total := 0
	for {
		ids, err := j.reservations.ListScheduledStartedBefore(ctx, cutoff, j.batchSize)
		if err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}

		marked, err := j.markBatch(ctx, ids)
		total += marked
		if err != nil {
			return total, err
		}
		if len(ids) < j.batchSize {
			return total, nil
		}
	}
}

func (j *NoShowJob) markBatch(ctx context.Context, ids []uuid.UUID) (int, error) {
	marked := 0
	err := j.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		for _, id := range ids {
			if err := j.reservations.MarkNoShow(ctx, db, id); err != nil {
				if infra.IsKind(err, infra.KindPreconditionFailed) {
					continue
				}
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}
