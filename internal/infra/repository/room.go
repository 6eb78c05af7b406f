package repository

import (
	"context"

	"roomtrack/internal/domain/room"
	"roomtrack/internal/infra"

	"github.com/google/uuid"
)

type RoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (id, name, capacity, retired, qr_version)
		VALUES ($1, $2, $3, $4, $5)`,
		rm.ID(), rm.Name(), rm.Capacity(), rm.Retired(), rm.QRVersion(),
	)
	if err != nil {
		if isPgCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("room name already taken", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE rooms
		SET name = $2, capacity = $3, retired = $4, qr_version = $5, updated_at = now()
		WHERE id = $1`,
		rm.ID(), rm.Name(), rm.Capacity(), rm.Retired(), rm.QRVersion(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var (
		name                string
		capacity, qrVersion int
		retired             bool
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, capacity, retired, qr_version
		FROM rooms
		WHERE id = $1`, id).Scan(&name, &capacity, &retired, &qrVersion)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return room.ReconstructRoom(id, name, capacity, retired, qrVersion), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*room.Room, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, capacity, retired, qr_version
		FROM rooms
		ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var rooms []*room.Room
	for rows.Next() {
		var (
			id                  uuid.UUID
			name                string
			capacity, qrVersion int
			retired             bool
		)
		if err := rows.Scan(&id, &name, &capacity, &retired, &qrVersion); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		rooms = append(rooms, room.ReconstructRoom(id, name, capacity, retired, qrVersion))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return rooms, nil
}
