package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      uuid.UUID  `json:"room_id"`
	RoomName    string     `json:"room_name"`
	UserID      uuid.UUID  `json:"user_id"`
	UserEmail   string     `json:"user_email"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       time.Time  `json:"end_at"`
	Status      string     `json:"status"`
	Closed      bool       `json:"closed"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID       uuid.UUID `json:"id"`
	RoomID   uuid.UUID `json:"room_id"`
	RoomName string    `json:"room_name"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Status   string    `json:"status"`
	Closed   bool      `json:"closed"`
}

type AttendanceEventView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	UserID        uuid.UUID `json:"user_id"`
	Kind          string    `json:"kind"`
	Method        string    `json:"method"`
	Timestamp     time.Time `json:"timestamp"`
}

// GraceWarning surfaces an open reservation currently inside a grace
// window: past its boundary but not yet swept.
type GraceWarning struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomName      string    `json:"room_name"`
	UserID        uuid.UUID `json:"user_id"`
	Kind          string    `json:"kind"` // PENDING_NO_SHOW | PENDING_AUTO_CHECKOUT
	Deadline      time.Time `json:"deadline"`
}

const (
	GracePendingNoShow       = "PENDING_NO_SHOW"
	GracePendingAutoCheckout = "PENDING_AUTO_CHECKOUT"
)
