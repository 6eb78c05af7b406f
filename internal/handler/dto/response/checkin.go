package response

import (
	"time"

	"roomtrack/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckInResponse struct {
	EventID       uuid.UUID `json:"event_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	StartAt       time.Time `json:"start_at"`
}

type CheckOutResponse struct {
	EventID       uuid.UUID `json:"event_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	EndedAt       time.Time `json:"ended_at"`
}

func FromCheckInResult(r *commands.CheckInResult) *CheckInResponse {
	return &CheckInResponse{
		EventID:       r.EventID,
		ReservationID: r.ReservationID,
		StartAt:       r.StartTime,
	}
}

func FromCheckOutResult(r *commands.CheckOutResult) *CheckOutResponse {
	return &CheckOutResponse{
		EventID:       r.EventID,
		ReservationID: r.ReservationID,
		EndedAt:       r.EndTime,
	}
}
