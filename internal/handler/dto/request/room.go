package request

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type UpdateRoomRequest struct {
	Name          *string `json:"name,omitempty"`
	Capacity      *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Retire        bool    `json:"retire,omitempty"`
	BumpQRVersion bool    `json:"bump_qr_version,omitempty"`
}
