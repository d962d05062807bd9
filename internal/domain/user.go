package domain

import "time"

// Role distinguishes the two kinds of callers.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for employees who submit tickets. NIP is the
// employee identification number used as the unique login key.
type User struct {
	ID           string
	NIP          string
	Name         string
	Division     string
	Email        string
	Phone        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// Snapshot strips credential material before the record leaves the
// credential store (session writes, API responses).
func (u User) Snapshot() User {
	u.PasswordHash = ""
	return u
}
