package queries

import (
	"context"
	"time"

	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/domain/user"
	"roomtrack/internal/infra"
	"roomtrack/internal/pkg/clock"
	"roomtrack/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrViewForbidden       = errs.New("not allowed to view this reservation")
)

type ReservationReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListViewsByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	ListEventsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*AttendanceEventView, error)
	ListGracePending(ctx context.Context, now time.Time, noShowAfter, finalizeAfter time.Duration) ([]*GraceWarning, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	ListAttendance(ctx context.Context, actorID uuid.UUID, actorRole user.Role, reservationID uuid.UUID) ([]*AttendanceEventView, error)
	ListGraceWarnings(ctx context.Context) ([]*GraceWarning, error)
}

type reservationQueriesImpl struct {
	store  ReservationReadStore
	clock  clock.Clock
	policy reservation.Policy
}

func NewReservationQueries(store ReservationReadStore, clk clock.Clock, policy reservation.Policy) ReservationQueries {
	return &reservationQueriesImpl{
		store:  store,
		clock:  clk,
		policy: policy,
	}
}

// Terminal reservations are retained for reporting, so reads stay open
// to owners and admins even after closure.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrViewForbidden
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	return q.store.ListViewsByUser(ctx, userID)
}

func (q *reservationQueriesImpl) ListAttendance(ctx context.Context, actorID uuid.UUID, actorRole user.Role, reservationID uuid.UUID) ([]*AttendanceEventView, error) {
	if _, err := q.GetByID(ctx, actorID, actorRole, reservationID); err != nil {
		return nil, err
	}
	return q.store.ListEventsByReservation(ctx, reservationID)
}

func (q *reservationQueriesImpl) ListGraceWarnings(ctx context.Context) ([]*GraceWarning, error) {
	now := q.clock.Now()
	return q.store.ListGracePending(ctx, now, q.policy.NoShowAfter, q.policy.FinalizeAfter)
}
