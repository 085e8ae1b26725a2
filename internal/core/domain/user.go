package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "ROLE_ADMIN"
	RoleEmployee = "ROLE_EMPLOYEE"
)

var ErrEmailExists = errors.New("email already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// User models a principal: an authenticated actor with credentials and roles.
// Email is unique; every registered user carries at least one role.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
