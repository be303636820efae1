package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/handlers"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/middleware"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/testutil"
)

type portfolioEnvelope struct {
	Success bool            `json:"success"`
	Data    model.Portfolio `json:"data"`
	Error   string          `json:"error"`
}

type purchaseEnvelope struct {
	Success bool                 `json:"success"`
	Data    model.PurchaseResult `json:"data"`
	Error   string               `json:"error"`
}

type saleEnvelope struct {
	Success bool             `json:"success"`
	Data    model.SaleResult `json:"data"`
	Error   string           `json:"error"`
}

func asUser(r *http.Request, user model.User) *http.Request {
	return r.WithContext(middleware.ContextWithUser(r.Context(), user))
}

func TestPortfolioHandler_Portfolio(t *testing.T) {
	t.Run("returns balance and holdings for the authenticated user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().WithBalance(42000).Build(t, db)
		ipo := testutil.NewIPO().Build(t, db)
		holding := testutil.NewHolding(user, ipo).WithShares(25).Build(t, db)

		req := asUser(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), user)
		w := httptest.NewRecorder()
		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp portfolioEnvelope
		testutil.DecodeEnvelope(t, w, &resp)
		if resp.Data.VirtualBalance != 42000 {
			t.Errorf("Expected balance 42000, got %f", resp.Data.VirtualBalance)
		}
		if len(resp.Data.Holdings) != 1 || resp.Data.Holdings[0].ID != holding.ID {
			t.Errorf("Expected the seeded holding, got %+v", resp.Data.Holdings)
		}
		if resp.Data.Holdings[0].Shares != 25 {
			t.Errorf("Expected 25 shares, got %d", resp.Data.Holdings[0].Shares)
		}
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		w := httptest.NewRecorder()
		handler.Portfolio(w, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_Buy(t *testing.T) {
	t.Run("buy debits the balance and returns the holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().WithBalance(10000).Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).WithPriceRange(100, 120).Build(t, db)

		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/buy/"+ipo.ID,
			request.TradeRequest{Shares: 10},
			map[string]string{"ipoId": ipo.ID},
		), user)
		w := httptest.NewRecorder()
		handler.Buy(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp purchaseEnvelope
		testutil.DecodeEnvelope(t, w, &resp)
		if resp.Data.TotalCost != 1200 {
			t.Errorf("Expected total cost 1200, got %f", resp.Data.TotalCost)
		}
		if resp.Data.NewBalance != 8800 {
			t.Errorf("Expected new balance 8800, got %f", resp.Data.NewBalance)
		}
		if resp.Data.Holding.Shares != 10 || resp.Data.Holding.IPOID != ipo.ID {
			t.Errorf("Unexpected holding %+v", resp.Data.Holding)
		}
	})

	t.Run("non-positive shares is a bad request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).Build(t, db)

		for _, shares := range []int64{0, -5} {
			req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/buy/"+ipo.ID,
				request.TradeRequest{Shares: shares},
				map[string]string{"ipoId": ipo.ID},
			), user)
			w := httptest.NewRecorder()
			handler.Buy(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Shares %d: expected status 400, got %d", shares, w.Code)
			}
		}
	})

	t.Run("insufficient balance is a bad request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().WithBalance(50).Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).WithPriceRange(100, 120).Build(t, db)

		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/buy/"+ipo.ID,
			request.TradeRequest{Shares: 1},
			map[string]string{"ipoId": ipo.ID},
		), user)
		w := httptest.NewRecorder()
		handler.Buy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("buying an unknown IPO is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().Build(t, db)
		id := testutil.MakeID()

		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/buy/"+id,
			request.TradeRequest{Shares: 1},
			map[string]string{"ipoId": id},
		), user)
		w := httptest.NewRecorder()
		handler.Buy(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_Sell(t *testing.T) {
	t.Run("sell credits the proceeds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().WithBalance(1000).Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).WithPriceRange(100, 120).Build(t, db)
		holding := testutil.NewHolding(user, ipo).WithShares(10).Build(t, db)

		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/sell/"+holding.ID,
			request.TradeRequest{Shares: 4},
			map[string]string{"holdingId": holding.ID},
		), user)
		w := httptest.NewRecorder()
		handler.Sell(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp saleEnvelope
		testutil.DecodeEnvelope(t, w, &resp)
		if resp.Data.SharesSold != 4 {
			t.Errorf("Expected 4 shares sold, got %d", resp.Data.SharesSold)
		}
		if resp.Data.Proceeds != 480 {
			t.Errorf("Expected proceeds 480, got %f", resp.Data.Proceeds)
		}
		if resp.Data.NewBalance != 1480 {
			t.Errorf("Expected new balance 1480, got %f", resp.Data.NewBalance)
		}
	})

	t.Run("selling another user's holding is forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		owner := testutil.NewUser().Build(t, db)
		intruder := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).Build(t, db)
		holding := testutil.NewHolding(owner, ipo).Build(t, db)

		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/sell/"+holding.ID,
			request.TradeRequest{Shares: 1},
			map[string]string{"holdingId": holding.ID},
		), intruder)
		w := httptest.NewRecorder()
		handler.Sell(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", w.Code)
		}
	})

	t.Run("selling more than held is a bad request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		user := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).Build(t, db)
		holding := testutil.NewHolding(user, ipo).WithShares(3).Build(t, db)

		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/sell/"+holding.ID,
			request.TradeRequest{Shares: 5},
			map[string]string{"holdingId": holding.ID},
		), user)
		w := httptest.NewRecorder()
		handler.Sell(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
