package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/middleware"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the authenticated user's
// virtual portfolio: the overview plus buy and sell orders.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolio handles GET requests for the authenticated user's holdings and
// remaining balance.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with Portfolio
// Error: 401 Unauthorized without a valid token (enforced by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrNoIdentity.Error(), nil)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondData(w, http.StatusOK, portfolio)
}

// Buy handles POST requests to purchase shares of an IPO against the user's
// virtual balance.
//
// Endpoint: POST /api/portfolio/buy/{ipoId}
// Request Body: TradeRequest (shares)
// Response: 200 OK with PurchaseResult
// Error: 400 Bad Request if shares is not positive, the IPO cannot be
// bought, its price is not set, or the balance is insufficient
// Error: 404 Not Found if the IPO does not exist
// Error: 500 Internal Server Error if the order fails
func (h *PortfolioHandler) Buy(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrNoIdentity.Error(), nil)
		return
	}
	ipoID := chi.URLParam(r, "ipoId")

	req, err := parseJSON[request.TradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Shares <= 0 {
		response.RespondError(w, http.StatusBadRequest, "shares must be a positive number", nil)
		return
	}

	result, err := h.portfolioService.Buy(r.Context(), user.ID, ipoID, req.Shares)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrIPONotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrIPONotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrIPONotPurchasable):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrIPONotPurchasable.Error(), nil)
		case errors.Is(err, apperrors.ErrPriceNotDetermined):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrPriceNotDetermined.Error(), nil)
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientBalance.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to execute buy order", err.Error())
		}
		return
	}

	response.RespondData(w, http.StatusOK, result)
}

// Sell handles POST requests to dispose shares from one of the user's
// holdings.
//
// Endpoint: POST /api/portfolio/sell/{holdingId}
// Request Body: TradeRequest (shares)
// Response: 200 OK with SaleResult
// Error: 400 Bad Request if shares is not positive or exceeds the position
// Error: 403 Forbidden if the holding belongs to another user
// Error: 404 Not Found if the holding does not exist
// Error: 500 Internal Server Error if the order fails
func (h *PortfolioHandler) Sell(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrNoIdentity.Error(), nil)
		return
	}
	holdingID := chi.URLParam(r, "holdingId")

	req, err := parseJSON[request.TradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Shares <= 0 {
		response.RespondError(w, http.StatusBadRequest, "shares must be a positive number", nil)
		return
	}

	result, err := h.portfolioService.Sell(r.Context(), user.ID, holdingID, req.Shares)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrNotOwner):
			response.RespondError(w, http.StatusForbidden, apperrors.ErrNotOwner.Error(), nil)
		case errors.Is(err, apperrors.ErrInsufficientShares):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientShares.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to execute sell order", err.Error())
		}
		return
	}

	response.RespondData(w, http.StatusOK, result)
}
