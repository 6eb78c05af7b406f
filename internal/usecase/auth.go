package usecase

import (
	"context"

	"roomtrack/internal/domain/user"
	"roomtrack/internal/infra"
	"roomtrack/internal/pkg/errs"
	"roomtrack/internal/pkg/jwt"
	"roomtrack/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is inactive")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type LoginResult struct {
	Token string
	User  *user.User
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type authUseCaseImpl struct {
	users UserRepository
	jwt   *jwt.Service
}

func NewAuthUseCase(users UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		users: users,
		jwt:   jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(u.HashedPassword(), plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, User: u}, nil
}

func (a *authUseCaseImpl) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return a.users.FindByID(ctx, id)
}
