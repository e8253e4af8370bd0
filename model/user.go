package model

import "time"

// Role is the closed set of caller roles. Elevation checks go through
// Role.Elevated, not string comparisons in handlers.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
)

// Elevated reports whether the role may bypass ownership checks.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleLibrarian
}

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleLibrarian:
		return Role(s)
	default:
		return RoleMember
	}
}

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   int64
	Role Role
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
