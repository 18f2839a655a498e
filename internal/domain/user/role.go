package user

import (
	"errors"
	"strings"
)

// Role is an operator role carried in dashboard access tokens.
type Role string

const (
	RoleAdmin    Role = "ADMIN"    // full access, may approve applications and accept payments
	RoleOperator Role = "OPERATOR" // read-only access to listings and reports
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole normalizes (uppercases+trims) and validates a role string.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if role.Valid() {
		return role, nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether role is one of the allowed role constants.
func (role Role) Valid() bool {
	switch role {
	case RoleAdmin, RoleOperator:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Role.
func (role Role) String() string {
	return string(role)
}

// Convenience helpers.
func (role Role) IsAdmin() bool    { return role == RoleAdmin }
func (role Role) IsOperator() bool { return role == RoleOperator }
