// Package attendance holds the append-only check-in/check-out ledger.
// Events are never updated or deleted once written.
package attendance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCheckIn  Kind = "CHECK_IN"
	KindCheckOut Kind = "CHECK_OUT"
)

type Method string

const (
	// MethodQR marks a user-initiated scan.
	MethodQR Method = "QR"
	// MethodAuto marks a sweeper-driven event.
	MethodAuto Method = "AUTO"
)

var ErrInvalidEvent = errors.New("invalid attendance event")

type Event struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	RoomID        uuid.UUID
	UserID        uuid.UUID
	Kind          Kind
	Method        Method
	Timestamp     time.Time
	CreatedAt     time.Time
}

func NewEvent(reservationID, roomID, userID uuid.UUID, kind Kind, method Method, at time.Time) (*Event, error) {
	if reservationID == uuid.Nil || roomID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrInvalidEvent
	}
	switch kind {
	case KindCheckIn, KindCheckOut:
	default:
		return nil, ErrInvalidEvent
	}
	switch method {
	case MethodQR, MethodAuto:
	default:
		return nil, ErrInvalidEvent
	}
	return &Event{
		ID:            uuid.New(),
		ReservationID: reservationID,
		RoomID:        roomID,
		UserID:        userID,
		Kind:          kind,
		Method:        method,
		Timestamp:     at,
	}, nil
}
