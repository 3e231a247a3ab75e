package identity

import (
	"fmt"
	"time"
)

// Role is the closed set of access levels a user can hold. There is no
// hierarchy between roles; every endpoint declares its own allow-list.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
	RoleUser     Role = "User"
)

// ParseRole maps a raw claim or column value onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User represents a registered account holder.
type User struct {
	ID            string
	Email         string
	AccountNumber string
	Name          string
	Role          Role
	PasswordHash  []byte
	CreatedAt     time.Time
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email         string
	Name          string
	AccountNumber string
	Password      string
}
