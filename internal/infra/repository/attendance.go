package repository

import (
	"context"

	"roomtrack/internal/domain/attendance"
	"roomtrack/internal/infra"
)

// AttendanceRepository is append-only: events are inserted, never
// updated or deleted.
type AttendanceRepository struct {
	db DBTX
}

func NewAttendanceRepository(db DBTX) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Insert(ctx context.Context, db DBTX, e *attendance.Event) error {
	_, err := db.Exec(ctx, `
		INSERT INTO attendance_events (id, reservation_id, room_id, user_id, kind, method, event_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.ReservationID, e.RoomID, e.UserID, string(e.Kind), string(e.Method), e.Timestamp,
	)
	if err != nil {
		if isPgCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("attendance event already recorded", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert attendance event", err)
	}
	return nil
}
