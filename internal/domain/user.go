package domain

import "time"

// UserRole gates administrative routes.
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleAgent UserRole = "AGENT"
)

// User is an operator of the helpdesk.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
