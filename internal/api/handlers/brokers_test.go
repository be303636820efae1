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

type brokerListEnvelope struct {
	Success bool           `json:"success"`
	Data    []model.Broker `json:"data"`
	Error   string         `json:"error"`
	Count   int            `json:"count"`
	Source  string         `json:"source"`
}

type brokerEnvelope struct {
	Success bool         `json:"success"`
	Data    model.Broker `json:"data"`
	Error   string       `json:"error"`
}

func TestBrokerHandler_CompareBrokers(t *testing.T) {
	t.Run("returns the requested brokers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		first := testutil.NewBroker().WithRating(4.8).Build(t, db)
		second := testutil.NewBroker().WithRating(3.1).Build(t, db)
		testutil.NewBroker().Build(t, db)

		req := httptest.NewRequest(http.MethodGet,
			"/api/brokers/compare?ids="+first.ID+","+second.ID, nil)
		w := httptest.NewRecorder()

		handler.CompareBrokers(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp brokerListEnvelope
		testutil.DecodeEnvelope(t, w, &resp)
		if resp.Count != 2 {
			t.Fatalf("Expected 2 brokers, got %d", resp.Count)
		}
		got := map[string]bool{resp.Data[0].ID: true, resp.Data[1].ID: true}
		if !got[first.ID] || !got[second.ID] {
			t.Errorf("Expected brokers %s and %s, got %+v", first.ID, second.ID, resp.Data)
		}
	})

	t.Run("fewer than two IDs is a bad request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		broker := testutil.NewBroker().Build(t, db)

		for _, query := range []string{"", "ids=", "ids=" + broker.ID, "ids=" + broker.ID + ",%20"} {
			req := httptest.NewRequest(http.MethodGet, "/api/brokers/compare?"+query, nil)
			w := httptest.NewRecorder()

			handler.CompareBrokers(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Query %q: expected status 400, got %d", query, w.Code)
			}
		}
	})
}

func TestBrokerHandler_CreateBroker(t *testing.T) {
	t.Run("created broker reads back with its features", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		body := request.CreateBrokerRequest{
			Name:        "Alpine Securities",
			Description: "Full service brokerage",
			Website:     "https://alpine.example.com",
			Fees:        "Flat 20 per order",
			Rating:      4.5,
			Features:    []string{"IPO applications", "Margin funding"},
		}
		w := httptest.NewRecorder()
		handler.CreateBroker(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/brokers", body, nil))

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var created brokerEnvelope
		testutil.DecodeEnvelope(t, w, &created)

		getReq := testutil.NewRequestWithURLParams(http.MethodGet, "/api/brokers/"+created.Data.ID,
			map[string]string{"id": created.Data.ID})
		getW := httptest.NewRecorder()
		handler.GetBroker(getW, getReq)

		var fetched brokerEnvelope
		testutil.DecodeEnvelope(t, getW, &fetched)
		if fetched.Data.Name != "Alpine Securities" {
			t.Errorf("Expected name Alpine Securities, got %s", fetched.Data.Name)
		}
		if len(fetched.Data.Features) != 2 || fetched.Data.Features[1] != "Margin funding" {
			t.Errorf("Expected features to survive the round trip, got %+v", fetched.Data.Features)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		existing := testutil.NewBroker().Build(t, db)

		body := request.CreateBrokerRequest{
			Name:        existing.Name,
			Description: "Same name, different shop",
			Rating:      3.0,
		}
		w := httptest.NewRecorder()
		handler.CreateBroker(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/brokers", body, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("out of range rating fails validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		body := request.CreateBrokerRequest{
			Name:        "Overrated Broking",
			Description: "Too good to be true",
			Rating:      7.5,
		}
		w := httptest.NewRecorder()
		handler.CreateBroker(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/brokers", body, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestBrokerHandler_UpdateBroker(t *testing.T) {
	t.Run("update changes only the provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		broker := testutil.NewBroker().WithRating(2.5).Build(t, db)

		rating := 4.0
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/brokers/"+broker.ID,
			request.UpdateBrokerRequest{Rating: &rating},
			map[string]string{"id": broker.ID},
		)
		w := httptest.NewRecorder()
		handler.UpdateBroker(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp brokerEnvelope
		testutil.DecodeEnvelope(t, w, &resp)
		if resp.Data.Rating != 4.0 {
			t.Errorf("Expected rating 4.0, got %f", resp.Data.Rating)
		}
		if resp.Data.Name != broker.Name {
			t.Errorf("Expected name to stay %s, got %s", broker.Name, resp.Data.Name)
		}
	})

	t.Run("updating a missing broker is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		rating := 4.0
		id := testutil.MakeID()
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/brokers/"+id,
			request.UpdateBrokerRequest{Rating: &rating},
			map[string]string{"id": id},
		)
		w := httptest.NewRecorder()
		handler.UpdateBroker(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestBrokerHandler_DeleteBroker(t *testing.T) {
	t.Run("delete removes the broker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewBrokerHandler(testutil.NewTestBrokerService(t, db))

		broker := testutil.NewBroker().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/brokers/"+broker.ID,
			map[string]string{"id": broker.ID})
		w := httptest.NewRecorder()
		handler.DeleteBroker(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		getW := httptest.NewRecorder()
		handler.GetBroker(getW, testutil.NewRequestWithURLParams(http.MethodGet, "/api/brokers/"+broker.ID,
			map[string]string{"id": broker.ID}))
		if getW.Code != http.StatusNotFound {
			t.Errorf("Expected deleted broker to be gone, got %d", getW.Code)
		}
	})
}
