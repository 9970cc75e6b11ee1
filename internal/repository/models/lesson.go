package models

import (
	"database/sql"
	"time"
)

// Lesson represents a lesson row.
type Lesson struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedBy   string         `db:"created_by"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

// LessonAssignment links a lesson to a student.
type LessonAssignment struct {
	ID         string    `db:"id"`
	LessonID   string    `db:"lesson_id"`
	StudentID  string    `db:"student_id"`
	AssignedAt time.Time `db:"assigned_at"`
}
