package sweeper

import (
	"context"
	"time"

	"roomtrack/internal/domain/attendance"
	"roomtrack/internal/infra/repository"

	"github.com/google/uuid"
)

type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, db repository.DBTX) error) error
}

type ReservationSweepStore interface {
	ListScheduledStartedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	ListInSessionEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]repository.SweepSession, error)
	ListNoShowEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	MarkNoShow(ctx context.Context, db repository.DBTX, id uuid.UUID) error
	MarkCompleted(ctx context.Context, db repository.DBTX, id uuid.UUID, finalizedAt time.Time) error
	CloseNoShow(ctx context.Context, db repository.DBTX, id uuid.UUID, finalizedAt time.Time) error
}

type AttendanceSweepStore interface {
	Insert(ctx context.Context, db repository.DBTX, e *attendance.Event) error
}
