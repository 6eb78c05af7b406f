package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID  uuid.UUID `json:"room_id" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

// UpdateReservationRequest carries a partial reschedule; a nil field
// keeps the stored boundary.
type UpdateReservationRequest struct {
	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`
}
