package service

import (
	"context"
	"errors"
	"fmt"

	"lingodeck/internal/dto"
	"lingodeck/internal/repository"
)

// ErrUserProfileNotFound is returned when the requested user does not exist.
var ErrUserProfileNotFound = errors.New("user profile not found")

// UserService defines the interface for user profile operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserProfileNotFound
	}
	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: user.ProfilePictureURL,
		IsAdmin:           user.IsAdmin,
	}, nil
}
