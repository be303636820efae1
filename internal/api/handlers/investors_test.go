package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/handlers"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/testutil"
)

type investorListEnvelope struct {
	Success bool             `json:"success"`
	Data    []model.Investor `json:"data"`
	Error   string           `json:"error"`
	Count   int              `json:"count"`
	Source  string           `json:"source"`
}

type investorEnvelope struct {
	Success bool           `json:"success"`
	Data    model.Investor `json:"data"`
	Error   string         `json:"error"`
}

func TestInvestorHandler_Investors(t *testing.T) {
	t.Run("lists all investors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db))

		testutil.NewInvestor().Build(t, db)
		testutil.NewInvestor().Build(t, db)

		w := httptest.NewRecorder()
		handler.Investors(w, httptest.NewRequest(http.MethodGet, "/api/investors", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp investorListEnvelope
		testutil.DecodeEnvelope(t, w, &resp)
		if resp.Count != 2 {
			t.Errorf("Expected 2 investors, got %d", resp.Count)
		}
	})
}

func TestInvestorHandler_CreateInvestor(t *testing.T) {
	t.Run("created investor reads back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db))

		body := request.CreateInvestorRequest{
			Name:         "Horizon Anchor Fund",
			InvestorType: "institutional",
			Description:  "Anchor investor in growth listings",
		}
		w := httptest.NewRecorder()
		handler.CreateInvestor(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/investors", body, nil))

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var created investorEnvelope
		testutil.DecodeEnvelope(t, w, &created)

		getW := httptest.NewRecorder()
		handler.GetInvestor(getW, testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/investors/"+created.Data.ID, map[string]string{"id": created.Data.ID}))

		var fetched investorEnvelope
		testutil.DecodeEnvelope(t, getW, &fetched)
		if fetched.Data.Name != "Horizon Anchor Fund" || fetched.Data.InvestorType != "institutional" {
			t.Errorf("Round trip mismatch: %+v", fetched.Data)
		}
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db))

		body := request.CreateInvestorRequest{Description: "No name given"}
		w := httptest.NewRecorder()
		handler.CreateInvestor(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/investors", body, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestInvestorHandler_DeleteInvestor(t *testing.T) {
	t.Run("deleting a missing investor is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db))

		id := testutil.MakeID()
		w := httptest.NewRecorder()
		handler.DeleteInvestor(w, testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/investors/"+id, map[string]string{"id": id}))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
