package commands

import (
	"context"
	"time"

	"roomtrack/internal/domain/attendance"
	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/domain/room"
	"roomtrack/internal/infra/repository"

	"github.com/google/uuid"
)

// TxRunner executes fn inside a single store transaction; everything fn
// writes through db commits or rolls back together.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, db repository.DBTX) error) error
}

type ReservationRepository interface {
	Create(ctx context.Context, db repository.DBTX, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]reservation.Booked, error)
	FindScheduledByRoomUser(ctx context.Context, roomID, userID uuid.UUID) ([]*reservation.Reservation, error)
	FindOpenSessionByRoomUser(ctx context.Context, roomID, userID uuid.UUID) (*reservation.Reservation, error)
	HasOpenSession(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdateWindow(ctx context.Context, db repository.DBTX, id uuid.UUID, w reservation.Window) error
	MarkInSession(ctx context.Context, db repository.DBTX, id uuid.UUID) error
	MarkCompleted(ctx context.Context, db repository.DBTX, id uuid.UUID, finalizedAt time.Time) error
	MarkCancelled(ctx context.Context, db repository.DBTX, id uuid.UUID, finalizedAt time.Time) error
}

type AttendanceRepository interface {
	Insert(ctx context.Context, db repository.DBTX, e *attendance.Event) error
}

type RoomRepository interface {
	Create(ctx context.Context, rm *room.Room) error
	Update(ctx context.Context, rm *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	List(ctx context.Context) ([]*room.Room, error)
}
