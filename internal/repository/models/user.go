package models

import (
	"database/sql"
	"time"
)

// User represents a user account row.
type User struct {
	ID                string         `db:"id"`
	GoogleID          string         `db:"google_id"`
	Email             string         `db:"email"`
	Name              sql.NullString `db:"name"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	IsAdmin           int            `db:"is_admin"` // Oracle NUMBER(1), 0 or 1
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         sql.NullTime   `db:"deleted_at"`
}
