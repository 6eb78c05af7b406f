package repository

import (
	"context"

	"roomtrack/internal/domain/user"
	"roomtrack/internal/infra"

	"github.com/google/uuid"
)

// UserRepository is read-only: this service authorizes against the user
// directory but never writes to it.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `
		SELECT id, email, hashed_password, role, is_active
		FROM users
		WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, `
		SELECT id, email, hashed_password, role, is_active
		FROM users
		WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, sql string, arg any) (*user.User, error) {
	var (
		id             uuid.UUID
		email          string
		hashedPassword string
		role           string
		isActive       bool
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(&id, &email, &hashedPassword, &role, &isActive)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return user.ReconstructUser(id, user.Email(email), hashedPassword, user.Role(role), isActive), nil
}
