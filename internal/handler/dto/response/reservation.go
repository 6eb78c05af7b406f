package response

import (
	"time"

	"roomtrack/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
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

type ReservationListResponse struct {
	ID       uuid.UUID `json:"id"`
	RoomID   uuid.UUID `json:"room_id"`
	RoomName string    `json:"room_name"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Status   string    `json:"status"`
	Closed   bool      `json:"closed"`
}

type AttendanceEventResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	UserID        uuid.UUID `json:"user_id"`
	Kind          string    `json:"kind"`
	Method        string    `json:"method"`
	Timestamp     time.Time `json:"timestamp"`
}

type GraceWarningResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomName      string    `json:"room_name"`
	UserID        uuid.UUID `json:"user_id"`
	Kind          string    `json:"kind"`
	Deadline      time.Time `json:"deadline"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	var resp ReservationListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromAttendanceEventView(rm *queries.AttendanceEventView) *AttendanceEventResponse {
	var resp AttendanceEventResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromGraceWarning(rm *queries.GraceWarning) *GraceWarningResponse {
	var resp GraceWarningResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
