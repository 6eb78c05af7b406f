package repository

import (
	"context"
	"time"

	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/infra"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, room_id, user_id, start_at, end_at, status, closed, finalized_at, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, db DBTX, res *reservation.Reservation) error {
	_, err := db.Exec(ctx, `
		INSERT INTO reservations (id, room_id, user_id, start_at, end_at, status, closed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID(), res.RoomID(), res.UserID(),
		res.Window().Start(), res.Window().End(),
		res.Status().String(), res.Closed(),
	)
	if err != nil {
		if isPgCode(err, pgErrCodeExclusionViolation) {
			return infra.WrapRepoErr("time slot is already booked", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE id = $1`, id)

	res, err := scanReservation(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

// FindActiveByRoom returns the open (SCHEDULED or IN_SESSION, not closed)
// intervals on a room, the comparison set for conflict checking.
func (r *ReservationRepository) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]reservation.Booked, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, start_at, end_at
		FROM reservations
		WHERE room_id = $1
		  AND status IN ('SCHEDULED', 'IN_SESSION')
		  AND closed = false`, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	defer rows.Close()

	var booked []reservation.Booked
	for rows.Next() {
		var (
			id             uuid.UUID
			startAt, endAt time.Time
		)
		if err := rows.Scan(&id, &startAt, &endAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active reservation", err)
		}
		w, err := reservation.NewWindow(startAt, endAt)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid window", err)
		}
		booked = append(booked, reservation.Booked{ID: id, Window: w})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate active reservations", err)
	}
	return booked, nil
}

// FindScheduledByRoomUser returns the open SCHEDULED reservations a user
// holds on a room; the caller picks the one whose check-in window
// contains now.
func (r *ReservationRepository) FindScheduledByRoomUser(ctx context.Context, roomID, userID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE room_id = $1
		  AND user_id = $2
		  AND status = 'SCHEDULED'
		  AND closed = false
		ORDER BY start_at`, roomID, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list scheduled reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan scheduled reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate scheduled reservations", err)
	}
	return result, nil
}

func (r *ReservationRepository) FindOpenSessionByRoomUser(ctx context.Context, roomID, userID uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE room_id = $1
		  AND user_id = $2
		  AND status = 'IN_SESSION'
		  AND closed = false
		LIMIT 1`, roomID, userID)

	res, err := scanReservation(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("no active session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find open session", err)
	}
	return res, nil
}

// HasOpenSession reports whether the user holds an IN_SESSION reservation
// on any room. A user can occupy at most one room at a time.
func (r *ReservationRepository) HasOpenSession(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE user_id = $1
			  AND status = 'IN_SESSION'
			  AND closed = false
		)`, userID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check open session", err)
	}
	return exists, nil
}

// UpdateWindow rewrites the interval of a still-scheduled reservation.
// The exclusion constraint backstops the conflict check re-run by the
// caller.
func (r *ReservationRepository) UpdateWindow(ctx context.Context, db DBTX, id uuid.UUID, w reservation.Window) error {
	tag, err := db.Exec(ctx, `
		UPDATE reservations
		SET start_at = $2, end_at = $3, updated_at = now()
		WHERE id = $1 AND status = 'SCHEDULED' AND closed = false`,
		id, w.Start(), w.End())
	if err != nil {
		if isPgCode(err, pgErrCodeExclusionViolation) {
			return infra.WrapRepoErr("time slot is already booked", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update reservation window", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation is not open for update", nil, infra.KindPreconditionFailed)
	}
	return nil
}

// MarkInSession is the SCHEDULED -> IN_SESSION conditional write.
func (r *ReservationRepository) MarkInSession(ctx context.Context, db DBTX, id uuid.UUID) error {
	return r.transition(ctx, db, `
		UPDATE reservations
		SET status = 'IN_SESSION', updated_at = now()
		WHERE id = $1 AND status = 'SCHEDULED' AND closed = false`, id)
}

// MarkCompleted is the IN_SESSION -> COMPLETED close, used by both
// user check-out and sweeper auto-checkout.
func (r *ReservationRepository) MarkCompleted(ctx context.Context, db DBTX, id uuid.UUID, finalizedAt time.Time) error {
	return r.transition(ctx, db, `
		UPDATE reservations
		SET status = 'COMPLETED', closed = true, finalized_at = $2, updated_at = now()
		WHERE id = $1 AND status = 'IN_SESSION' AND closed = false`, id, finalizedAt)
}

// MarkNoShow is the SCHEDULED -> NO_SHOW transition; the reservation
// stays open until the finalize sweep.
func (r *ReservationRepository) MarkNoShow(ctx context.Context, db DBTX, id uuid.UUID) error {
	return r.transition(ctx, db, `
		UPDATE reservations
		SET status = 'NO_SHOW', updated_at = now()
		WHERE id = $1 AND status = 'SCHEDULED' AND closed = false`, id)
}

// CloseNoShow latches a NO_SHOW reservation closed.
func (r *ReservationRepository) CloseNoShow(ctx context.Context, db DBTX, id uuid.UUID, finalizedAt time.Time) error {
	return r.transition(ctx, db, `
		UPDATE reservations
		SET closed = true, finalized_at = $2, updated_at = now()
		WHERE id = $1 AND status = 'NO_SHOW' AND closed = false`, id, finalizedAt)
}

// MarkCancelled is the owner's SCHEDULED -> CANCELLED close.
func (r *ReservationRepository) MarkCancelled(ctx context.Context, db DBTX, id uuid.UUID, finalizedAt time.Time) error {
	return r.transition(ctx, db, `
		UPDATE reservations
		SET status = 'CANCELLED', closed = true, finalized_at = $2, updated_at = now()
		WHERE id = $1 AND status = 'SCHEDULED' AND closed = false`, id, finalizedAt)
}

func (r *ReservationRepository) transition(ctx context.Context, db DBTX, sql string, args ...any) error {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to apply reservation transition", err)
	}
	if tag.RowsAffected() == 0 {
		// A concurrent writer got there first; the guard predicate no
		// longer matches.
		return infra.WrapRepoErr("reservation not in expected state", nil, infra.KindPreconditionFailed)
	}
	return nil
}

// ListScheduledStartedBefore returns open SCHEDULED reservations whose
// startAt is at or before the cutoff, for the no-show sweep.
func (r *ReservationRepository) ListScheduledStartedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id
		FROM reservations
		WHERE status = 'SCHEDULED' AND closed = false AND start_at <= $1
		ORDER BY start_at
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan for no-show candidates", err)
	}
	defer rows.Close()
	return collectIDs(rows)
}

// SweepSession carries what the finalize sweep needs to write the
// synthetic AUTO check-out event.
type SweepSession struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	UserID uuid.UUID
}

// ListInSessionEndedBefore returns open IN_SESSION reservations whose
// endAt is at or before the cutoff, for auto-checkout.
func (r *ReservationRepository) ListInSessionEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]SweepSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_id, user_id
		FROM reservations
		WHERE status = 'IN_SESSION' AND closed = false AND end_at <= $1
		ORDER BY end_at
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan for auto-checkout candidates", err)
	}
	defer rows.Close()

	var sessions []SweepSession
	for rows.Next() {
		var s SweepSession
		if err := rows.Scan(&s.ID, &s.RoomID, &s.UserID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan auto-checkout candidate", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate auto-checkout candidates", err)
	}
	return sessions, nil
}

// ListNoShowEndedBefore returns open NO_SHOW reservations whose endAt is
// at or before the cutoff, ready to be closed.
func (r *ReservationRepository) ListNoShowEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id
		FROM reservations
		WHERE status = 'NO_SHOW' AND closed = false AND end_at <= $1
		ORDER BY end_at
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan for closable no-shows", err)
	}
	defer rows.Close()
	return collectIDs(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id, roomID, userID   uuid.UUID
		startAt, endAt       time.Time
		status               string
		closed               bool
		finalizedAt          *time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &roomID, &userID, &startAt, &endAt, &status, &closed, &finalizedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	w, err := reservation.NewWindow(startAt, endAt)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id, roomID, userID, w,
		reservation.Status(status), closed, finalizedAt,
		createdAt, updatedAt,
	), nil
}

func collectIDs(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation ids", err)
	}
	return ids, nil
}
