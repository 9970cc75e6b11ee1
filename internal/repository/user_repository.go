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

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// sqlxUserRepository implements UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, google_id, email, name, profile_picture_url, is_admin, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	model := fromDomainUser(user)

	_, err := r.db.ExecContext(ctx, query,
		model.ID, model.GoogleID, model.Email, model.Name, model.ProfilePictureURL,
		model.IsAdmin, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var model models.User
	query := `SELECT
		id "id",
		google_id "google_id",
		email "email",
		name "name",
		profile_picture_url "profile_picture_url",
		is_admin "is_admin",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM users
	WHERE google_id = :1
	AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &model, query, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var model models.User
	query := `SELECT
		id "id",
		google_id "google_id",
		email "email",
		name "name",
		profile_picture_url "profile_picture_url",
		is_admin "is_admin",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM users
	WHERE id = :1
	AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &model, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
		email = :1,
		name = :2,
		profile_picture_url = :3,
		updated_at = :4
	WHERE id = :5
	AND deleted_at IS NULL`

	user.UpdatedAt = time.Now()
	model := fromDomainUser(user)

	_, err := r.db.ExecContext(ctx, query,
		model.Email, model.Name, model.ProfilePictureURL, model.UpdatedAt, model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func toDomainUser(model *models.User) *domain.User {
	if model == nil {
		return nil
	}
	user := &domain.User{
		ID:                model.ID,
		GoogleID:          model.GoogleID,
		Email:             model.Email,
		Name:              util.NullStringToString(model.Name),
		ProfilePictureURL: util.NullStringToString(model.ProfilePictureURL),
		IsAdmin:           model.IsAdmin != 0,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		user.DeletedAt = &t
	}
	return user
}

func fromDomainUser(user *domain.User) *models.User {
	if user == nil {
		return nil
	}
	model := &models.User{
		ID:                user.ID,
		GoogleID:          user.GoogleID,
		Email:             user.Email,
		Name:              util.StringToNullString(user.Name),
		ProfilePictureURL: util.StringToNullString(user.ProfilePictureURL),
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
	if user.IsAdmin {
		model.IsAdmin = 1
	}
	if user.DeletedAt != nil {
		model.DeletedAt = sql.NullTime{Time: *user.DeletedAt, Valid: true}
	}
	return model
}
