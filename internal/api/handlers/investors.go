package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// InvestorHandler handles HTTP requests for investor endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the investorService.
type InvestorHandler struct {
	investorService *service.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler with the provided service dependency.
func NewInvestorHandler(investorService *service.InvestorService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
	}
}

// Investors handles GET requests to retrieve all investors.
//
// Endpoint: GET /api/investors
// Response: 200 OK with array of Investor
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) Investors(w http.ResponseWriter, _ *http.Request) {
	investors, source, err := h.investorService.ListInvestors()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	response.RespondList(w, http.StatusOK, investors, len(investors), string(source))
}

// GetInvestor handles GET requests to retrieve a single investor by ID.
//
// Endpoint: GET /api/investors/{id}
// Response: 200 OK with Investor
// Error: 404 Not Found if the investor does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	investor, source, err := h.investorService.GetInvestor(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	response.RespondSourced(w, http.StatusOK, investor, string(source))
}

// CreateInvestor handles POST requests to create a new investor profile.
//
// Endpoint: POST /api/investors
// Request Body: CreateInvestorRequest
// Response: 201 Created with Investor
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	investor, err := h.investorService.CreateInvestor(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create investor", err.Error())
		return
	}

	response.RespondData(w, http.StatusCreated, investor)
}

// UpdateInvestor handles PUT requests to modify an existing investor. Absent
// fields are left unchanged.
//
// Endpoint: PUT /api/investors/{id}
// Request Body: UpdateInvestorRequest
// Response: 200 OK with the updated Investor
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the investor does not exist
// Error: 500 Internal Server Error if the update fails
func (h *InvestorHandler) UpdateInvestor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := parseJSON[request.UpdateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateInvestor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	investor, err := h.investorService.UpdateInvestor(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update investor", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, investor)
}

// DeleteInvestor handles DELETE requests to remove an investor profile.
//
// Endpoint: DELETE /api/investors/{id}
// Response: 200 OK with a confirmation message
// Error: 404 Not Found if the investor does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *InvestorHandler) DeleteInvestor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.investorService.DeleteInvestor(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investor", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, map[string]string{"message": "Investor deleted"})
}
