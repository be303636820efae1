package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// IPOHandler handles HTTP requests for IPO endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the ipoService.
type IPOHandler struct {
	ipoService *service.IPOService
}

// NewIPOHandler creates a new IPOHandler with the provided service dependency.
func NewIPOHandler(ipoService *service.IPOService) *IPOHandler {
	return &IPOHandler{
		ipoService: ipoService,
	}
}

// IPOs handles GET requests to retrieve all IPOs, optionally filtered by
// status. List responses carry the element count and whether the data came
// from the cache or the database.
//
// Endpoint: GET /api/ipos?status={status}
// Response: 200 OK with array of IPO
// Error: 400 Bad Request if the status filter is not a known value
// Error: 500 Internal Server Error if retrieval fails
func (h *IPOHandler) IPOs(w http.ResponseWriter, r *http.Request) {
	status := validation.NormalizeIPOStatus(r.URL.Query().Get("status"))
	if status != "" && !validation.ValidIPOStatus[status] {
		response.RespondError(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", status), nil)
		return
	}

	ipos, source, err := h.ipoService.ListIPOs(status)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveIPOs.Error(), err.Error())
		return
	}

	response.RespondList(w, http.StatusOK, ipos, len(ipos), string(source))
}

// UpcomingIPOs handles GET requests for the upcoming listings shortcut.
//
// Endpoint: GET /api/ipos/upcoming
// Response: 200 OK with array of IPO
// Error: 500 Internal Server Error if retrieval fails
func (h *IPOHandler) UpcomingIPOs(w http.ResponseWriter, _ *http.Request) {
	ipos, source, err := h.ipoService.ListUpcomingIPOs()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveIPOs.Error(), err.Error())
		return
	}

	response.RespondList(w, http.StatusOK, ipos, len(ipos), string(source))
}

// GetIPO handles GET requests to retrieve a single IPO by ID.
//
// Endpoint: GET /api/ipos/{id}
// Response: 200 OK with IPO
// Error: 404 Not Found if the IPO does not exist (malformed IDs are handled
// by middleware with the same status)
// Error: 500 Internal Server Error if retrieval fails
func (h *IPOHandler) GetIPO(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ipo, source, err := h.ipoService.GetIPO(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrIPONotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrIPONotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveIPOs.Error(), err.Error())
		return
	}

	response.RespondSourced(w, http.StatusOK, ipo, string(source))
}

// CreateIPO handles POST requests to create a new IPO listing.
//
// Endpoint: POST /api/ipos
// Request Body: CreateIPORequest
// Response: 201 Created with IPO
// Error: 400 Bad Request if validation fails or the symbol is taken
// Error: 500 Internal Server Error if creation fails
func (h *IPOHandler) CreateIPO(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateIPORequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateIPO(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	ipo, err := h.ipoService.CreateIPO(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSymbol) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrDuplicateSymbol.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create IPO", err.Error())
		return
	}

	response.RespondData(w, http.StatusCreated, ipo)
}

// UpdateIPO handles PUT requests to modify an existing IPO. Absent fields
// are left unchanged.
//
// Endpoint: PUT /api/ipos/{id}
// Request Body: UpdateIPORequest
// Response: 200 OK with the updated IPO
// Error: 400 Bad Request if validation fails or the new symbol is taken
// Error: 404 Not Found if the IPO does not exist
// Error: 500 Internal Server Error if the update fails
func (h *IPOHandler) UpdateIPO(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := parseJSON[request.UpdateIPORequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateIPO(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	ipo, err := h.ipoService.UpdateIPO(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrIPONotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrIPONotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrDuplicateSymbol):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrDuplicateSymbol.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update IPO", err.Error())
		}
		return
	}

	response.RespondData(w, http.StatusOK, ipo)
}

// DeleteIPO handles DELETE requests to remove an IPO listing.
//
// Endpoint: DELETE /api/ipos/{id}
// Response: 200 OK with a confirmation message
// Error: 404 Not Found if the IPO does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *IPOHandler) DeleteIPO(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ipoService.DeleteIPO(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrIPONotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrIPONotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete IPO", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, map[string]string{"message": "IPO deleted"})
}
