package commands

import (
	"context"
	"errors"
	"time"

	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/infra"
	"roomtrack/internal/infra/repository"
	"roomtrack/internal/pkg/clock"
	"roomtrack/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomUnavailable         = errs.New("room is not available")
	ErrInvalidWindow           = errs.New("invalid reservation window")
	ErrRoomConflict            = errs.New("time slot is already booked")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrNotOwner                = errs.New("reservation belongs to another user")
	ErrReservationNotOpen      = errs.New("reservation is not open for changes")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type ReservationCommands interface {
	Create(ctx context.Context, roomID, ownerID uuid.UUID, startAt, endAt time.Time) (uuid.UUID, error)
	Update(ctx context.Context, reservationID, ownerID uuid.UUID, newStartAt, newEndAt *time.Time) (uuid.UUID, error)
	Cancel(ctx context.Context, reservationID, ownerID uuid.UUID) (uuid.UUID, error)
}

type reservationCommandsImpl struct {
	reservations ReservationRepository
	rooms        RoomRepository
	runner       TxRunner
	clock        clock.Clock
}

func NewReservationCommands(
	reservations ReservationRepository,
	rooms RoomRepository,
	runner TxRunner,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservations: reservations,
		rooms:        rooms,
		runner:       runner,
		clock:        clk,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, roomID, ownerID uuid.UUID, startAt, endAt time.Time) (uuid.UUID, error) {
	window, err := reservation.NewWindow(startAt, endAt)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidWindow)
	}

	rm, err := c.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrRoomNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rm.Bookable() {
		return uuid.Nil, ErrRoomUnavailable
	}

	if err := c.ensureNoConflict(ctx, roomID, window, uuid.Nil); err != nil {
		return uuid.Nil, err
	}

	res := reservation.NewReservation(roomID, ownerID, window)

	err = c.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		return c.reservations.Create(ctx, db, res)
	})
	if err != nil {
		// The exclusion constraint catches races the pre-check missed.
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, ErrRoomConflict
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res.ID(), nil
}

func (c *reservationCommandsImpl) Update(ctx context.Context, reservationID, ownerID uuid.UUID, newStartAt, newEndAt *time.Time) (uuid.UUID, error) {
	res, err := c.findOwned(ctx, reservationID, ownerID)
	if err != nil {
		return uuid.Nil, err
	}

	startAt := res.Window().Start()
	endAt := res.Window().End()
	if newStartAt != nil {
		startAt = *newStartAt
	}
	if newEndAt != nil {
		endAt = *newEndAt
	}

	window, err := reservation.NewWindow(startAt, endAt)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidWindow)
	}

	// Reschedule re-validates ownership and open/SCHEDULED state.
	if err := res.Reschedule(ownerID, window); err != nil {
		return uuid.Nil, mapTransitionErr(err)
	}

	if err := c.ensureNoConflict(ctx, res.RoomID(), window, res.ID()); err != nil {
		return uuid.Nil, err
	}

	err = c.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		return c.reservations.UpdateWindow(ctx, db, res.ID(), window)
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return uuid.Nil, ErrRoomConflict
		case infra.IsKind(err, infra.KindPreconditionFailed):
			return uuid.Nil, ErrReservationNotOpen
		default:
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return res.ID(), nil
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, reservationID, ownerID uuid.UUID) (uuid.UUID, error) {
	res, err := c.findOwned(ctx, reservationID, ownerID)
	if err != nil {
		return uuid.Nil, err
	}

	now := c.clock.Now()
	if err := res.Cancel(ownerID, now); err != nil {
		return uuid.Nil, mapTransitionErr(err)
	}

	err = c.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		return c.reservations.MarkCancelled(ctx, db, res.ID(), now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return uuid.Nil, ErrReservationNotOpen
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res.ID(), nil
}

func (c *reservationCommandsImpl) findOwned(ctx context.Context, reservationID, ownerID uuid.UUID) (*reservation.Reservation, error) {
	res, err := c.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if res.UserID() != ownerID {
		return nil, ErrNotOwner
	}
	return res, nil
}

func (c *reservationCommandsImpl) ensureNoConflict(ctx context.Context, roomID uuid.UUID, window reservation.Window, excludeID uuid.UUID) error {
	booked, err := c.reservations.FindActiveByRoom(ctx, roomID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if reservation.HasConflict(booked, window, excludeID) {
		return ErrRoomConflict
	}
	return nil
}

func mapTransitionErr(err error) error {
	if errors.Is(err, reservation.ErrNotOwner) {
		return ErrNotOwner
	}
	return errs.Mark(err, ErrReservationNotOpen)
}
