package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
)

// UserHandler handles the admin-only user management endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the provided service dependency.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Users handles GET requests to list all registered users.
//
// Endpoint: GET /api/users
// Response: 200 OK with array of User (password hashes omitted)
// Error: 401/403 without an admin token (enforced by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *UserHandler) Users(w http.ResponseWriter, _ *http.Request) {
	users, err := h.userService.ListUsers()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUsers.Error(), err.Error())
		return
	}

	count := len(users)
	response.RespondList(w, http.StatusOK, users, count, "")
}

// GetUser handles GET requests to retrieve a single user by ID.
//
// Endpoint: GET /api/users/{id}
// Response: 200 OK with User
// Error: 404 Not Found if the user does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUsers.Error(), err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, user)
}
