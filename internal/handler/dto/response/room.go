package response

import (
	"roomtrack/internal/domain/room"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Retired   bool      `json:"retired"`
	QRVersion int       `json:"qr_version"`
}

func FromRoom(rm *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:        rm.ID(),
		Name:      rm.Name(),
		Capacity:  rm.Capacity(),
		Retired:   rm.Retired(),
		QRVersion: rm.QRVersion(),
	}
}
