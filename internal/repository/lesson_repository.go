package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/repository/models"
	"lingodeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// LessonDatabaseAdapter implements domain.LessonRepository using sqlx.DB
type LessonDatabaseAdapter struct {
	db *sqlx.DB
}

// NewLessonDatabaseAdapter creates a new instance of LessonDatabaseAdapter
func NewLessonDatabaseAdapter(db *sqlx.DB) domain.LessonRepository {
	return &LessonDatabaseAdapter{db: db}
}

// CreateLesson implements domain.LessonRepository
func (a *LessonDatabaseAdapter) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	model := fromDomainLesson(lesson)
	query := `INSERT INTO lessons (id, title, description, created_by, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6)`
	_, err := a.db.ExecContext(ctx, query,
		model.ID, model.Title, model.Description, model.CreatedBy, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lesson: %w", err)
	}
	return nil
}

// GetLessonByID implements domain.LessonRepository
func (a *LessonDatabaseAdapter) GetLessonByID(ctx context.Context, id string) (*domain.Lesson, error) {
	var model models.Lesson
	query := `SELECT
		id "id",
		title "title",
		description "description",
		created_by "created_by",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM lessons
	WHERE id = :1
	AND deleted_at IS NULL`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}
	return toDomainLesson(&model), nil
}

// ListLessons implements domain.LessonRepository
func (a *LessonDatabaseAdapter) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	var lessonModels []models.Lesson
	query := `SELECT
		id "id",
		title "title",
		description "description",
		created_by "created_by",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM lessons
	WHERE deleted_at IS NULL
	ORDER BY created_at`

	if err := a.db.SelectContext(ctx, &lessonModels, query); err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return toDomainLessons(lessonModels), nil
}

// DeleteLesson implements domain.LessonRepository
func (a *LessonDatabaseAdapter) DeleteLesson(ctx context.Context, id string) error {
	query := `UPDATE lessons SET deleted_at = :1 WHERE id = :2 AND deleted_at IS NULL`
	if _, err := a.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

// AssignLesson implements domain.LessonRepository
func (a *LessonDatabaseAdapter) AssignLesson(ctx context.Context, lessonID, studentID string) error {
	query := `INSERT INTO lesson_assignments (id, lesson_id, student_id, assigned_at)
	          VALUES (:1, :2, :3, :4)`
	if _, err := a.db.ExecContext(ctx, query, util.NewULID(), lessonID, studentID, time.Now()); err != nil {
		return fmt.Errorf("failed to assign lesson: %w", err)
	}
	return nil
}

// GetAssignedLessons implements domain.LessonRepository
func (a *LessonDatabaseAdapter) GetAssignedLessons(ctx context.Context, studentID string) ([]*domain.Lesson, error) {
	var lessonModels []models.Lesson
	query := `SELECT
		l.id "id",
		l.title "title",
		l.description "description",
		l.created_by "created_by",
		l.created_at "created_at",
		l.updated_at "updated_at",
		l.deleted_at "deleted_at"
	FROM lessons l
	JOIN lesson_assignments la ON la.lesson_id = l.id
	WHERE la.student_id = :1
	AND l.deleted_at IS NULL
	ORDER BY la.assigned_at`

	if err := a.db.SelectContext(ctx, &lessonModels, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to get assigned lessons: %w", err)
	}
	return toDomainLessons(lessonModels), nil
}

func toDomainLesson(model *models.Lesson) *domain.Lesson {
	if model == nil {
		return nil
	}
	return &domain.Lesson{
		ID:          model.ID,
		Title:       model.Title,
		Description: util.NullStringToString(model.Description),
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toDomainLessons(lessonModels []models.Lesson) []*domain.Lesson {
	lessons := make([]*domain.Lesson, 0, len(lessonModels))
	for i := range lessonModels {
		lessons = append(lessons, toDomainLesson(&lessonModels[i]))
	}
	return lessons
}

func fromDomainLesson(lesson *domain.Lesson) *models.Lesson {
	return &models.Lesson{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: util.StringToNullString(lesson.Description),
		CreatedBy:   lesson.CreatedBy,
		CreatedAt:   lesson.CreatedAt,
		UpdatedAt:   lesson.UpdatedAt,
	}
}
