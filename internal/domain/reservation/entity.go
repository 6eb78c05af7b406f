package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClosed            = errors.New("reservation is closed")
	ErrIllegalTransition = errors.New("illegal reservation state transition")
	ErrOutsideWindow     = errors.New("outside the check-in window")
	ErrNotYetDue         = errors.New("grace period has not elapsed")
	ErrNotOwner          = errors.New("reservation belongs to another user")
)

// Reservation is the aggregate root for a claim on a room over [start,end).
// Every mutation goes through a transition method so illegal state changes
// are rejected before they reach the store; the store repeats the guard as
// a conditional write so concurrent writers cannot both win.
type Reservation struct {
	id          uuid.UUID
	roomID      uuid.UUID
	userID      uuid.UUID
	window      Window
	status      Status
	closed      bool
	finalizedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(roomID, userID uuid.UUID, window Window) *Reservation {
	return &Reservation{
		id:     uuid.New(),
		roomID: roomID,
		userID: userID,
		window: window,
		status: StatusScheduled,
		closed: false,
	}
}

func ReconstructReservation(
	id, roomID, userID uuid.UUID,
	window Window,
	status Status,
	closed bool,
	finalizedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		roomID:      roomID,
		userID:      userID,
		window:      window,
		status:      status,
		closed:      closed,
		finalizedAt: finalizedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// CheckIn moves SCHEDULED -> IN_SESSION when now is inside the
// [-CheckInEarly, +CheckInLate] window around startAt.
func (r *Reservation) CheckIn(policy Policy, now time.Time) error {
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusScheduled {
		return ErrIllegalTransition
	}
	if !policy.CanCheckIn(now, r.window.Start()) {
		return ErrOutsideWindow
	}
	r.status = StatusInSession
	return nil
}

// CheckOut moves IN_SESSION -> COMPLETED and closes the reservation.
func (r *Reservation) CheckOut(now time.Time) error {
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusInSession {
		return ErrIllegalTransition
	}
	r.status = StatusCompleted
	r.close(now)
	return nil
}

// MarkNoShow moves SCHEDULED -> NO_SHOW once startAt+NoShowAfter has
// passed. The reservation stays open; the finalize sweep closes it later.
func (r *Reservation) MarkNoShow(policy Policy, now time.Time) error {
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusScheduled {
		return ErrIllegalTransition
	}
	if !policy.NoShowDue(now, r.window.Start()) {
		return ErrNotYetDue
	}
	r.status = StatusNoShow
	return nil
}

// AutoCheckOut is the sweeper's forced IN_SESSION -> COMPLETED transition
// once endAt+FinalizeAfter has passed.
func (r *Reservation) AutoCheckOut(policy Policy, now time.Time) error {
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusInSession {
		return ErrIllegalTransition
	}
	if !policy.FinalizeDue(now, r.window.End()) {
		return ErrNotYetDue
	}
	r.status = StatusCompleted
	r.close(now)
	return nil
}

// CloseNoShow latches a NO_SHOW reservation closed once its own end-time
// grace has elapsed. The status does not change.
func (r *Reservation) CloseNoShow(policy Policy, now time.Time) error {
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusNoShow {
		return ErrIllegalTransition
	}
	if !policy.FinalizeDue(now, r.window.End()) {
		return ErrNotYetDue
	}
	r.close(now)
	return nil
}

// Cancel is the owner's SCHEDULED -> CANCELLED transition.
func (r *Reservation) Cancel(ownerID uuid.UUID, now time.Time) error {
	if r.userID != ownerID {
		return ErrNotOwner
	}
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusScheduled {
		return ErrIllegalTransition
	}
	r.status = StatusCancelled
	r.close(now)
	return nil
}

// Reschedule replaces the window of a still-scheduled reservation.
// Conflict checking against other reservations is the caller's job.
func (r *Reservation) Reschedule(ownerID uuid.UUID, window Window) error {
	if r.userID != ownerID {
		return ErrNotOwner
	}
	if r.closed {
		return ErrClosed
	}
	if r.status != StatusScheduled {
		return ErrIllegalTransition
	}
	r.window = window
	return nil
}

func (r *Reservation) close(now time.Time) {
	r.closed = true
	t := now
	r.finalizedAt = &t
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) RoomID() uuid.UUID       { return r.roomID }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) Window() Window          { return r.window }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) Closed() bool            { return r.closed }
func (r *Reservation) FinalizedAt() *time.Time { return r.finalizedAt }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
