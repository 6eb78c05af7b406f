package request

import (
	"github.com/google/uuid"
)

// CheckInRequest is the decoded QR payload plus the device's clock
// reading; the user comes from the access token.
type CheckInRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	QRVersion int       `json:"qr_version" binding:"required,min=1"`
	// Now is the RFC3339 event time as seen by the scanning device.
	Now string `json:"now" binding:"required"`
	// Signals carries optional device telemetry; accepted but unused.
	Signals map[string]any `json:"signals"`
}

type CheckOutRequest struct {
	RoomID uuid.UUID `json:"room_id" binding:"required"`
	Now    string    `json:"now" binding:"required"`
}
