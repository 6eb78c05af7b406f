package user

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type Email string

func NewEmail(s string) (Email, error) {
	if !emailPattern.MatchString(s) {
		return "", ErrInvalidEmail
	}
	return Email(s), nil
}

func (e Email) String() string {
	return string(e)
}

// User is consumed read-only by this service: identity and role lookup
// for authorization. Account management lives elsewhere.
type User struct {
	id             uuid.UUID
	email          Email
	hashedPassword string
	role           Role
	isActive       bool
}

func ReconstructUser(id uuid.UUID, email Email, hashedPassword string, role Role, isActive bool) *User {
	return &User{
		id:             id,
		email:          email,
		hashedPassword: hashedPassword,
		role:           role,
		isActive:       isActive,
	}
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) Email() Email           { return u.email }
func (u *User) HashedPassword() string { return u.hashedPassword }
func (u *User) Role() Role             { return u.role }
func (u *User) IsActive() bool         { return u.isActive }
