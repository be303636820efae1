package ipoalerts_test

import (
	"testing"
	"time"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/ipoalerts"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		external string
		want     string
	}{
		{"upcoming", model.IPOStatusUpcoming},
		{"open", model.IPOStatusOpen},
		{"active", model.IPOStatusOpen},
		{"closed", model.IPOStatusPast},
		{"listed", model.IPOStatusPast},
		{"LISTED", model.IPOStatusPast},
		{"", model.IPOStatusUpcoming},
		{"something-new", model.IPOStatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.external, func(t *testing.T) {
			if got := ipoalerts.MapStatus(tt.external); got != tt.want {
				t.Errorf("MapStatus(%q) = %q, want %q", tt.external, got, tt.want)
			}
		})
	}
}

func TestMapToLocal(t *testing.T) {
	t.Run("snake_case fields", func(t *testing.T) {
		record := ipoalerts.IPO{
			CompanyNameSnake:    "Acme Ltd",
			Symbol:              "acme",
			IPODateSnake:        "2026-09-15",
			PriceRangeLowSnake:  100,
			PriceRangeHighSnake: 120,
			SharesOfferedSnake:  5000000,
			Status:              "active",
			Description:         "Widgets",
		}

		local, err := record.MapToLocal()
		if err != nil {
			t.Fatalf("MapToLocal failed: %v", err)
		}

		if local.Symbol != "ACME" {
			t.Errorf("Expected uppercased symbol ACME, got %s", local.Symbol)
		}
		if local.CompanyName != "Acme Ltd" {
			t.Errorf("Expected company name Acme Ltd, got %s", local.CompanyName)
		}
		if local.Status != model.IPOStatusOpen {
			t.Errorf("Expected status open, got %s", local.Status)
		}
		want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		if !local.IPODate.Equal(want) {
			t.Errorf("Expected date %v, got %v", want, local.IPODate)
		}
	})

	t.Run("camelCase fields fill in when snake_case is absent", func(t *testing.T) {
		record := ipoalerts.IPO{
			CompanyNameCamel:    "Camel Corp",
			Symbol:              "CAML",
			IPODateCamel:        "2026-10-01T00:00:00Z",
			PriceRangeLowCamel:  50,
			PriceRangeHighCamel: 60,
			SharesOfferedCamel:  100000,
			Status:              "upcoming",
		}

		local, err := record.MapToLocal()
		if err != nil {
			t.Fatalf("MapToLocal failed: %v", err)
		}

		if local.CompanyName != "Camel Corp" {
			t.Errorf("Expected company name Camel Corp, got %s", local.CompanyName)
		}
		if local.PriceRangeLow != 50 || local.PriceRangeHigh != 60 {
			t.Errorf("Expected price band 50-60, got %v-%v", local.PriceRangeLow, local.PriceRangeHigh)
		}
		if local.SharesOffered != 100000 {
			t.Errorf("Expected 100000 shares, got %d", local.SharesOffered)
		}
	})

	t.Run("unparseable date is an error", func(t *testing.T) {
		record := ipoalerts.IPO{
			CompanyNameSnake: "Bad Date Inc",
			Symbol:           "BAD",
			IPODateSnake:     "soon",
		}

		if _, err := record.MapToLocal(); err == nil {
			t.Error("Expected an error for unparseable date")
		}
	})
}
