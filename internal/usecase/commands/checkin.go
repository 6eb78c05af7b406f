package commands

import (
	"context"
	"time"

	"roomtrack/internal/domain/attendance"
	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/infra"
	"roomtrack/internal/infra/repository"
	"roomtrack/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrActiveSessionExists    = errs.New("user already has an active session")
	ErrStaleQRCode            = errs.New("QR code has been invalidated")
	ErrNoEligibleReservation  = errs.New("no reservation within the check-in window")
	ErrNoActiveSession        = errs.New("no active session to check out of")
	ErrConcurrentStateChange  = errs.New("reservation state changed concurrently")
	ErrInvalidAttendanceEvent = errs.New("invalid attendance event")
)

type CheckInResult struct {
	EventID       uuid.UUID
	ReservationID uuid.UUID
	StartTime     time.Time
}

type CheckOutResult struct {
	EventID       uuid.UUID
	ReservationID uuid.UUID
	EndTime       time.Time
}

type CheckInCommands interface {
	CheckIn(ctx context.Context, roomID, userID uuid.UUID, qrVersion int, now time.Time) (*CheckInResult, error)
	CheckOut(ctx context.Context, roomID, userID uuid.UUID, now time.Time) (*CheckOutResult, error)
}

type checkInCommandsImpl struct {
	reservations ReservationRepository
	events       AttendanceRepository
	rooms        RoomRepository
	runner       TxRunner
	policy       reservation.Policy
}

func NewCheckInCommands(
	reservations ReservationRepository,
	events AttendanceRepository,
	rooms RoomRepository,
	runner TxRunner,
	policy reservation.Policy,
) CheckInCommands {
	return &checkInCommandsImpl{
		reservations: reservations,
		events:       events,
		rooms:        rooms,
		runner:       runner,
		policy:       policy,
	}
}

// CheckIn records a QR check-in: one attendance event plus the
// SCHEDULED -> IN_SESSION transition, committed atomically. If the
// sweeper marks the reservation NO_SHOW first, the conditional update
// affects zero rows and the whole transaction rolls back.
func (c *checkInCommandsImpl) CheckIn(ctx context.Context, roomID, userID uuid.UUID, qrVersion int, now time.Time) (*CheckInResult, error) {
	rm, err := c.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rm.Bookable() {
		return nil, ErrRoomUnavailable
	}
	// Printed QR payloads carry the version they were generated under;
	// a bump retires every code already in the wild.
	if qrVersion != rm.QRVersion() {
		return nil, ErrStaleQRCode
	}

	hasSession, err := c.reservations.HasOpenSession(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if hasSession {
		return nil, ErrActiveSessionExists
	}

	candidates, err := c.reservations.FindScheduledByRoomUser(ctx, roomID, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var target *reservation.Reservation
	for _, res := range candidates {
		if err := res.CheckIn(c.policy, now); err == nil {
			target = res
			break
		}
	}
	if target == nil {
		return nil, ErrNoEligibleReservation
	}

	event, err := attendance.NewEvent(target.ID(), roomID, userID, attendance.KindCheckIn, attendance.MethodQR, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAttendanceEvent)
	}

	err = c.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		if err := c.events.Insert(ctx, db, event); err != nil {
			return err
		}
		return c.reservations.MarkInSession(ctx, db, target.ID())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return nil, ErrConcurrentStateChange
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CheckInResult{
		EventID:       event.ID,
		ReservationID: target.ID(),
		StartTime:     target.Window().Start(),
	}, nil
}

// CheckOut finalizes the user's session on the room: one CHECK_OUT event
// plus IN_SESSION -> COMPLETED/closed, committed atomically.
func (c *checkInCommandsImpl) CheckOut(ctx context.Context, roomID, userID uuid.UUID, now time.Time) (*CheckOutResult, error) {
	session, err := c.reservations.FindOpenSessionByRoomUser(ctx, roomID, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := session.CheckOut(now); err != nil {
		return nil, errs.Mark(err, ErrNoActiveSession)
	}

	event, err := attendance.NewEvent(session.ID(), roomID, userID, attendance.KindCheckOut, attendance.MethodQR, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAttendanceEvent)
	}

	err = c.runner.Within(ctx, func(ctx context.Context, db repository.DBTX) error {
		if err := c.events.Insert(ctx, db, event); err != nil {
			return err
		}
		return c.reservations.MarkCompleted(ctx, db, session.ID(), now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return nil, ErrConcurrentStateChange
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CheckOutResult{
		EventID:       event.ID,
		ReservationID: session.ID(),
		EndTime:       now,
	}, nil
}
