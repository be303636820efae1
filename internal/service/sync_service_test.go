package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/config"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/events"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/ipoalerts"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/testutil"
)

func newSyncService(t *testing.T, db *sql.DB, baseURL string, production bool) *service.SyncService {
	t.Helper()

	cfg := config.SyncConfig{
		BaseURL:   baseURL,
		APIKey:    "env-key",
		SecretKey: newFernetKey(t),
	}
	return service.NewSyncService(
		cfg,
		production,
		ipoalerts.NewClient(baseURL, cfg.APIKey),
		repository.NewIPORepository(db),
		repository.NewSyncRepository(db),
		cache.NewDisabled(),
		events.NopNotifier{},
	)
}

func newFernetKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

func newFeedServer(t *testing.T, records []ipoalerts.IPO) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ipos" {
			http.NotFound(w, r)
			return
		}
		response.RespondJSON(w, http.StatusOK, response.Envelope{Success: true, Data: records})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSyncService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts by symbol and counts the outcome", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		changed := testutil.NewIPO().WithSymbol("EXIST").WithPriceRange(100, 120).Build(t, db)
		same := testutil.NewIPO().WithSymbol("SAME").WithPriceRange(50, 60).Build(t, db)

		server := newFeedServer(t, []ipoalerts.IPO{
			{
				CompanyNameSnake:    "Newly Listed Ltd",
				Symbol:              "NEWCO",
				IPODateSnake:        "2026-09-20",
				PriceRangeLowSnake:  10,
				PriceRangeHighSnake: 12,
				SharesOfferedSnake:  500000,
				Status:              "open",
				Description:         "Fresh listing",
			},
			{
				CompanyNameSnake:    changed.CompanyName,
				Symbol:              changed.Symbol,
				IPODateSnake:        changed.IPODate.Format(time.RFC3339),
				PriceRangeLowSnake:  changed.PriceRangeLow,
				PriceRangeHighSnake: 150, // wider band than stored
				SharesOfferedSnake:  changed.SharesOffered,
				Status:              changed.Status,
				Description:         changed.Description,
			},
			{
				CompanyNameSnake:    same.CompanyName,
				Symbol:              same.Symbol,
				IPODateSnake:        same.IPODate.Format(time.RFC3339),
				PriceRangeLowSnake:  same.PriceRangeLow,
				PriceRangeHighSnake: same.PriceRangeHigh,
				SharesOfferedSnake:  same.SharesOffered,
				Status:              same.Status,
				Description:         same.Description,
			},
			{
				// No symbol; counted as failed, not raised.
				CompanyNameSnake: "Anonymous Corp",
				IPODateSnake:     "2026-09-20",
			},
		})

		svc := newSyncService(t, db, server.URL, true)

		stats, err := svc.Sync(ctx)
		if err != nil {
			t.Fatalf("Sync failed: %v", err)
		}

		want := model.SyncStats{Added: 1, Updated: 1, Unchanged: 1, Failed: 1}
		if stats != want {
			t.Errorf("Expected stats %+v, got %+v", want, stats)
		}

		ipoRepo := repository.NewIPORepository(db)
		added, err := ipoRepo.GetIPOBySymbol("NEWCO")
		if err != nil {
			t.Fatalf("Added IPO not found: %v", err)
		}
		if added.Status != model.IPOStatusOpen {
			t.Errorf("Expected added IPO status open, got %s", added.Status)
		}

		updated, err := ipoRepo.GetIPOBySymbol("EXIST")
		if err != nil {
			t.Fatalf("Updated IPO not found: %v", err)
		}
		if updated.PriceRangeHigh != 150 {
			t.Errorf("Expected updated high band 150, got %v", updated.PriceRangeHigh)
		}
		if updated.ID != changed.ID {
			t.Errorf("Update must keep the existing ID, got %s", updated.ID)
		}
	})

	t.Run("records the run for the status endpoint", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		server := newFeedServer(t, nil)
		svc := newSyncService(t, db, server.URL, true)

		if _, err := svc.Sync(ctx); err != nil {
			t.Fatalf("Sync failed: %v", err)
		}

		status, err := svc.GetStatus()
		if err != nil {
			t.Fatalf("GetStatus failed: %v", err)
		}
		if status.Provider != ipoalerts.Provider {
			t.Errorf("Expected provider %s, got %s", ipoalerts.Provider, status.Provider)
		}
		if status.LastRun == nil || !status.LastRun.Success {
			t.Errorf("Expected a successful last run, got %+v", status.LastRun)
		}
	})

	t.Run("falls back to mock data outside production", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		// Nothing listens on this address.
		svc := newSyncService(t, db, "http://127.0.0.1:1", false)

		stats, err := svc.Sync(ctx)
		if err != nil {
			t.Fatalf("Sync failed: %v", err)
		}
		if stats.Added != 4 {
			t.Errorf("Expected 4 mock records added, got %+v", stats)
		}
	})

	t.Run("raises a fetch failure in production", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newSyncService(t, db, "http://127.0.0.1:1", true)

		_, err := svc.Sync(ctx)
		if !errors.Is(err, apperrors.ErrFailedToSyncIPOs) {
			t.Fatalf("Expected ErrFailedToSyncIPOs, got %v", err)
		}

		status, gerr := svc.GetStatus()
		if gerr != nil {
			t.Fatalf("GetStatus failed: %v", gerr)
		}
		if status.LastRun == nil || status.LastRun.Success {
			t.Errorf("Expected a failed last run, got %+v", status.LastRun)
		}
	})
}

func TestSyncService_Config(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newSyncService(t, db, "http://example.invalid", true)

		cfg, err := svc.GetConfig()
		if err != nil {
			t.Fatalf("GetConfig failed: %v", err)
		}
		if cfg.Configured || cfg.APIKeySet {
			t.Errorf("Expected unconfigured state, got %+v", cfg)
		}
	})

	t.Run("stored key is encrypted at rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newSyncService(t, db, "http://example.invalid", true)

		autoSync := true
		cfg, err := svc.UpdateConfig(ctx, "feed-key-123", &autoSync)
		if err != nil {
			t.Fatalf("UpdateConfig failed: %v", err)
		}
		if !cfg.Configured || !cfg.APIKeySet || !cfg.AutoSync {
			t.Errorf("Expected configured state with key set, got %+v", cfg)
		}

		var stored string
		if err := db.QueryRow(`SELECT api_key_encrypted FROM sync_config`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored key: %v", err)
		}
		if stored == "" || stored == "feed-key-123" {
			t.Errorf("Expected an encrypted key at rest, got %q", stored)
		}
	})

	t.Run("empty key keeps the stored one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newSyncService(t, db, "http://example.invalid", true)

		if _, err := svc.UpdateConfig(ctx, "feed-key-123", nil); err != nil {
			t.Fatalf("First UpdateConfig failed: %v", err)
		}
		autoSync := false
		cfg, err := svc.UpdateConfig(ctx, "", &autoSync)
		if err != nil {
			t.Fatalf("Second UpdateConfig failed: %v", err)
		}
		if !cfg.APIKeySet {
			t.Error("Expected the stored key to survive a key-less update")
		}
		if cfg.AutoSync {
			t.Error("Expected autoSync to be switched off")
		}
	})
}
