package service

import (
	"context"

	"filmgraph/internal/models"
	"filmgraph/internal/repository"
)

// UserService provides plain user persistence. Friend and like mutations
// live in SocialService.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a user. A blank display name defaults to the login.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Name == "" {
		user.Name = user.Login
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update replaces a user's profile fields.
func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Name == "" {
		user.Name = user.Login
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
