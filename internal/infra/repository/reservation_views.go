package repository

import (
	"context"
	"time"

	"roomtrack/internal/infra"
	"roomtrack/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReservationReadStore serves the read side: denormalized views joined
// with room and user data.
type ReservationReadStore struct {
	db DBTX
}

func NewReservationReadStore(db DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (s *ReservationReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := s.db.QueryRow(ctx, `
		SELECT r.id, r.room_id, rm.name, r.user_id, u.email,
		       r.start_at, r.end_at, r.status, r.closed, r.finalized_at,
		       r.created_at, r.updated_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`, id).Scan(
		&v.ID, &v.RoomID, &v.RoomName, &v.UserID, &v.UserEmail,
		&v.StartAt, &v.EndAt, &v.Status, &v.Closed, &v.FinalizedAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}
	return &v, nil
}

func (s *ReservationReadStore) ListViewsByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.room_id, rm.name, r.start_at, r.end_at, r.status, r.closed
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.user_id = $1
		ORDER BY r.start_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var it queries.ReservationListItem
		if err := rows.Scan(&it.ID, &it.RoomID, &it.RoomName, &it.StartAt, &it.EndAt, &it.Status, &it.Closed); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation list", err)
	}
	return items, nil
}

func (s *ReservationReadStore) ListEventsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*queries.AttendanceEventView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, reservation_id, room_id, user_id, kind, method, event_at
		FROM attendance_events
		WHERE reservation_id = $1
		ORDER BY event_at`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list attendance views", err)
	}
	defer rows.Close()

	var events []*queries.AttendanceEventView
	for rows.Next() {
		var e queries.AttendanceEventView
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.RoomID, &e.UserID, &e.Kind, &e.Method, &e.Timestamp); err != nil {
			return nil, infra.WrapRepoErr("failed to scan attendance view", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate attendance views", err)
	}
	return events, nil
}

// ListGracePending returns open reservations that have crossed a
// lifecycle boundary but whose grace period has not yet expired, i.e.
// the sweeper has not acted on them yet.
func (s *ReservationReadStore) ListGracePending(ctx context.Context, now time.Time, noShowAfter, finalizeAfter time.Duration) ([]*queries.GraceWarning, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.room_id, rm.name, r.user_id, 'PENDING_NO_SHOW', r.start_at + make_interval(secs => $2)
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.status = 'SCHEDULED' AND r.closed = false
		  AND r.start_at <= $1 AND r.start_at + make_interval(secs => $2) > $1
		UNION ALL
		SELECT r.id, r.room_id, rm.name, r.user_id, 'PENDING_AUTO_CHECKOUT', r.end_at + make_interval(secs => $3)
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.status = 'IN_SESSION' AND r.closed = false
		  AND r.end_at <= $1 AND r.end_at + make_interval(secs => $3) > $1
		ORDER BY 6`, now, noShowAfter.Seconds(), finalizeAfter.Seconds())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list grace warnings", err)
	}
	defer rows.Close()

	var warnings []*queries.GraceWarning
	for rows.Next() {
		var w queries.GraceWarning
		if err := rows.Scan(&w.ReservationID, &w.RoomID, &w.RoomName, &w.UserID, &w.Kind, &w.Deadline); err != nil {
			return nil, infra.WrapRepoErr("failed to scan grace warning", err)
		}
		warnings = append(warnings, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate grace warnings", err)
	}
	return warnings, nil
}
