package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	// RoleViewer can read reports but holds no reservations.
	RoleViewer Role = "viewer"
	// RoleProfessor books rooms and checks in/out.
	RoleProfessor Role = "professor"
	// RoleAdmin additionally manages rooms.
	RoleAdmin Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleProfessor, RoleAdmin:
		return true
	default:
		return false
	}
}
