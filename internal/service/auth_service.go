package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/auth"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
)

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService with the provided dependencies.
func NewAuthService(userRepo *repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new account and returns it with a signed token.
// The role defaults to "user" when absent.
func (s *AuthService) Register(ctx context.Context, req request.RegisterRequest) (model.User, string, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := model.User{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Email:          req.Email,
		Role:           role,
		VirtualBalance: model.DefaultVirtualBalance,
		CreatedAt:      time.Now(),
	}
	if err := user.HashPassword(req.Password); err != nil {
		return model.User{}, "", err
	}

	if err := s.userRepo.InsertUser(ctx, &user); err != nil {
		return model.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown emails and wrong passwords both map to ErrInvalidCredentials.
func (s *AuthService) Login(req request.LoginRequest) (model.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// Identify resolves a bearer token to the current user record. Tokens whose
// user no longer exists are rejected.
func (s *AuthService) Identify(tokenString string) (model.User, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userRepo.GetUser(userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, apperrors.ErrInvalidToken
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (model.User, error) {
	return s.userRepo.GetUser(id)
}
