package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// BrokerHandler handles HTTP requests for broker endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the brokerService.
type BrokerHandler struct {
	brokerService *service.BrokerService
}

// NewBrokerHandler creates a new BrokerHandler with the provided service dependency.
func NewBrokerHandler(brokerService *service.BrokerService) *BrokerHandler {
	return &BrokerHandler{
		brokerService: brokerService,
	}
}

// Brokers handles GET requests to retrieve all brokers.
//
// Endpoint: GET /api/brokers
// Response: 200 OK with array of Broker
// Error: 500 Internal Server Error if retrieval fails
func (h *BrokerHandler) Brokers(w http.ResponseWriter, _ *http.Request) {
	brokers, source, err := h.brokerService.ListBrokers()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBrokers.Error(), err.Error())
		return
	}

	response.RespondList(w, http.StatusOK, brokers, len(brokers), string(source))
}

// CompareBrokers handles GET requests to fetch a selection of brokers side
// by side. At least two IDs are required.
//
// Endpoint: GET /api/brokers/compare?ids=id1,id2[,id3...]
// Response: 200 OK with array of Broker
// Error: 400 Bad Request if fewer than two IDs are given
// Error: 500 Internal Server Error if retrieval fails
func (h *BrokerHandler) CompareBrokers(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")

	ids := []string{}
	for _, id := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) < 2 {
		response.RespondError(w, http.StatusBadRequest, "at least two broker IDs are required for comparison", nil)
		return
	}

	brokers, source, err := h.brokerService.CompareBrokers(ids)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBrokers.Error(), err.Error())
		return
	}

	response.RespondList(w, http.StatusOK, brokers, len(brokers), string(source))
}

// GetBroker handles GET requests to retrieve a single broker by ID.
//
// Endpoint: GET /api/brokers/{id}
// Response: 200 OK with Broker
// Error: 404 Not Found if the broker does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *BrokerHandler) GetBroker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	broker, source, err := h.brokerService.GetBroker(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBrokerNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBrokerNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBrokers.Error(), err.Error())
		return
	}

	response.RespondSourced(w, http.StatusOK, broker, string(source))
}

// CreateBroker handles POST requests to create a new broker.
//
// Endpoint: POST /api/brokers
// Request Body: CreateBrokerRequest
// Response: 201 Created with Broker
// Error: 400 Bad Request if validation fails or the name is taken
// Error: 500 Internal Server Error if creation fails
func (h *BrokerHandler) CreateBroker(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateBrokerRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateBroker(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	broker, err := h.brokerService.CreateBroker(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateBrokerName) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrDuplicateBrokerName.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create broker", err.Error())
		return
	}

	response.RespondData(w, http.StatusCreated, broker)
}

// UpdateBroker handles PUT requests to modify an existing broker. Absent
// fields are left unchanged.
//
// Endpoint: PUT /api/brokers/{id}
// Request Body: UpdateBrokerRequest
// Response: 200 OK with the updated Broker
// Error: 400 Bad Request if validation fails or the new name is taken
// Error: 404 Not Found if the broker does not exist
// Error: 500 Internal Server Error if the update fails
func (h *BrokerHandler) UpdateBroker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := parseJSON[request.UpdateBrokerRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateBroker(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	broker, err := h.brokerService.UpdateBroker(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBrokerNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBrokerNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrDuplicateBrokerName):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrDuplicateBrokerName.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update broker", err.Error())
		}
		return
	}

	response.RespondData(w, http.StatusOK, broker)
}

// DeleteBroker handles DELETE requests to remove a broker.
//
// Endpoint: DELETE /api/brokers/{id}
// Response: 200 OK with a confirmation message
// Error: 404 Not Found if the broker does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *BrokerHandler) DeleteBroker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.brokerService.DeleteBroker(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrBrokerNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBrokerNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete broker", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, map[string]string{"message": "Broker deleted"})
}
