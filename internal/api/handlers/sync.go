package handlers

import (
	"net/http"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
)

// SyncHandler handles HTTP requests for the external feed integration:
// triggering a sync and reading or updating its configuration.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler with the provided service dependency.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// Sync handles POST requests to pull the external feed and reconcile it into
// the local IPO table.
//
// Endpoint: POST /api/ipos/sync
// Response: 200 OK with SyncStats
// Error: 401/403 without an admin token (enforced by middleware)
// Error: 500 Internal Server Error if the feed cannot be reached
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	stats, err := h.syncService.Sync(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to sync IPO data", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, stats)
}

// Status handles GET requests for the feed integration status.
//
// Endpoint: GET /api/ipos/sync/status
// Response: 200 OK with SyncStatus
// Error: 500 Internal Server Error if the status cannot be read
func (h *SyncHandler) Status(w http.ResponseWriter, _ *http.Request) {
	status, err := h.syncService.GetStatus()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read sync status", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, status)
}

// Config handles GET requests for the stored feed configuration. The API key
// itself is never returned, only whether one is set.
//
// Endpoint: GET /api/ipos/sync/config
// Response: 200 OK with SyncConfig
// Error: 500 Internal Server Error if the configuration cannot be read
func (h *SyncHandler) Config(w http.ResponseWriter, _ *http.Request) {
	cfg, err := h.syncService.GetConfig()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read sync configuration", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, cfg)
}

// UpdateConfig handles PUT requests to store a feed API key and auto-sync
// flag. An empty key keeps the currently stored one.
//
// Endpoint: PUT /api/ipos/sync/config
// Request Body: UpdateSyncConfigRequest (apiKey, autoSync)
// Response: 200 OK with the resulting SyncConfig
// Error: 400 Bad Request if the request body is invalid
// Error: 500 Internal Server Error if the configuration cannot be stored
func (h *SyncHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSyncConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cfg, err := h.syncService.UpdateConfig(r.Context(), req.APIKey, req.AutoSync)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store sync configuration", err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, cfg)
}
