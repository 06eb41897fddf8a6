package domain

import "time"

// User is an internal staff account. Role is mandatory, Position optional;
// both are normalized lookup rows.
type User struct {
	ID           int64
	Surname      string
	Forename     string
	Username     string
	Email        string
	PasswordHash string
	RoleID       int64
	PositionID   *int64
	Role         *Lookup
	Position     *Lookup
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "Surname Forename", the order names are displayed in.
func (u *User) FullName() string {
	return u.Surname + " " + u.Forename
}

// RoleName returns the canonical role name, or empty when not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
