// Package service provides authentication business logic,
// delegating persistence to an AuthRepository.
package service

import (
	"context"

	"github.com/akazakov/keepsafe/internal/models"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// UserExists returns true if a user with the given login exists.
	UserExists(ctx context.Context, login string) (bool, error)
	// RegisterUser creates a new user with its personal organization
	// and returns the created user.
	RegisterUser(ctx context.Context, login string) (*models.User, error)
	// UserByID fetches a user by its identifier.
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService implements authentication operations by delegating
// to an AuthRepository.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// UserExists checks whether a user with the specified login exists.
func (s *AuthService) UserExists(ctx context.Context, login string) (bool, error) {
	return s.repo.UserExists(ctx, login)
}

// RegisterUser registers a new user with the given login and returns it.
func (s *AuthService) RegisterUser(ctx context.Context, login string) (*models.User, error) {
	return s.repo.RegisterUser(ctx, login)
}

// UserByID fetches a user by its identifier.
func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.UserByID(ctx, id)
}
