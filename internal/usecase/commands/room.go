package commands

import (
	"context"

	"roomtrack/internal/domain/room"
	"roomtrack/internal/infra"
	"roomtrack/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRoom       = errs.New("invalid room data")
	ErrDuplicateRoomName = errs.New("room name already taken")
)

type RoomUpdate struct {
	Name          *string
	Capacity      *int
	Retire        bool
	BumpQRVersion bool
}

type RoomCommands interface {
	Create(ctx context.Context, name string, capacity int) (uuid.UUID, error)
	Update(ctx context.Context, roomID uuid.UUID, upd RoomUpdate) (uuid.UUID, error)
}

type roomCommandsImpl struct {
	rooms RoomRepository
}

func NewRoomCommands(rooms RoomRepository) RoomCommands {
	return &roomCommandsImpl{rooms: rooms}
}

func (c *roomCommandsImpl) Create(ctx context.Context, name string, capacity int) (uuid.UUID, error) {
	rm, err := room.NewRoom(name, capacity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidRoom)
	}

	if err := c.rooms.Create(ctx, rm); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrDuplicateRoomName
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm.ID(), nil
}

func (c *roomCommandsImpl) Update(ctx context.Context, roomID uuid.UUID, upd RoomUpdate) (uuid.UUID, error) {
	rm, err := c.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrRoomNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if upd.Name != nil {
		if err := rm.Rename(*upd.Name); err != nil {
			return uuid.Nil, errs.Mark(err, ErrInvalidRoom)
		}
	}
	if upd.Capacity != nil {
		if err := rm.Resize(*upd.Capacity); err != nil {
			return uuid.Nil, errs.Mark(err, ErrInvalidRoom)
		}
	}
	if upd.Retire {
		rm.Retire()
	} else if upd.BumpQRVersion {
		rm.BumpQRVersion()
	}

	if err := c.rooms.Update(ctx, rm); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm.ID(), nil
}
