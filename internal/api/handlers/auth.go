package handlers

import (
	"errors"
	"net/http"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/middleware"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// AuthHandler handles HTTP requests for registration, login and identity
// endpoints. It serves as the HTTP layer adapter, parsing requests and
// delegating business logic to the authService.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// AuthResponse carries the authenticated user and a signed bearer token.
type AuthResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Register handles POST requests to create a new user account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (name, email, password, optional role)
// Response: 201 Created with AuthResponse
// Error: 400 Bad Request if validation fails or the email is taken
// Error: 500 Internal Server Error if creation fails
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	user, token, err := h.authService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrDuplicateEmail.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register user", err.Error())
		return
	}

	response.RespondData(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// Login handles POST requests to authenticate an existing user.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (email, password)
// Response: 200 OK with AuthResponse
// Error: 400 Bad Request if validation fails
// Error: 401 Unauthorized if the credentials do not match
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	user, token, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// Me handles GET requests for the authenticated user's own record.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with the current user
// Error: 401 Unauthorized without a valid token (enforced by middleware)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrNoIdentity.Error(), nil)
		return
	}

	// Reload so the balance reflects trades made after the token was issued.
	fresh, err := h.authService.GetUser(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve user", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, fresh)
}
