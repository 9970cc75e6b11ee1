package domain

import "time"

// User is an authenticated account: administrators build lessons, students
// review them. Accounts are keyed by Google ID, created on first login.
type User struct {
	ID                string
	GoogleID          string
	Email             string
	Name              string
	ProfilePictureURL string
	IsAdmin           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}
