package room

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName     = errors.New("room name is required")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrRetired         = errors.New("room is retired")
)

type Room struct {
	id        uuid.UUID
	name      string
	capacity  int
	retired   bool
	qrVersion int
}

func NewRoom(name string, capacity int) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Room{
		id:        uuid.New(),
		name:      name,
		capacity:  capacity,
		qrVersion: 1,
	}, nil
}

func ReconstructRoom(id uuid.UUID, name string, capacity int, retired bool, qrVersion int) *Room {
	return &Room{
		id:        id,
		name:      name,
		capacity:  capacity,
		retired:   retired,
		qrVersion: qrVersion,
	}
}

func (r *Room) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	r.name = name
	return nil
}

func (r *Room) Resize(capacity int) error {
	if capacity < 1 {
		return ErrInvalidCapacity
	}
	r.capacity = capacity
	return nil
}

// Retire takes the room out of service and invalidates its printed QR
// codes by bumping the version.
func (r *Room) Retire() {
	if r.retired {
		return
	}
	r.retired = true
	r.qrVersion++
}

// BumpQRVersion invalidates outstanding QR payloads for this room.
func (r *Room) BumpQRVersion() {
	r.qrVersion++
}

// Bookable reports whether new reservations may target this room.
func (r *Room) Bookable() bool {
	return !r.retired
}

func (r *Room) ID() uuid.UUID  { return r.id }
func (r *Room) Name() string   { return r.name }
func (r *Room) Capacity() int  { return r.capacity }
func (r *Room) Retired() bool  { return r.retired }
func (r *Room) QRVersion() int { return r.qrVersion }
