package service

import (
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
)

// UserService handles the admin-only user management reads. Password hashes
// never leave the model layer's json:"-" field.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService with the provided repository dependency.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers retrieves all registered users.
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.userRepo.GetUsers()
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(id string) (model.User, error) {
	return s.userRepo.GetUser(id)
}
