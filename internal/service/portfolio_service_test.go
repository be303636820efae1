package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/testutil"
)

func TestPortfolioService_Buy(t *testing.T) {
	ctx := context.Background()

	t.Run("first buy creates a holding and debits the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().WithBalance(10000).Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).WithPriceRange(100, 120).Build(t, db)

		result, err := svc.Buy(ctx, user.ID, ipo.ID, 10)
		if err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		// 10 shares at the high end of the band.
		if result.TotalCost != 1200 {
			t.Errorf("Expected cost 1200, got %v", result.TotalCost)
		}
		if result.NewBalance != 8800 {
			t.Errorf("Expected balance 8800, got %v", result.NewBalance)
		}
		if result.Holding.Shares != 10 {
			t.Errorf("Expected 10 shares, got %d", result.Holding.Shares)
		}
		if result.Holding.IPOSymbol != ipo.Symbol {
			t.Errorf("Expected symbol %s, got %s", ipo.Symbol, result.Holding.IPOSymbol)
		}

		portfolio, err := svc.GetPortfolio(user.ID)
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if portfolio.VirtualBalance != 8800 {
			t.Errorf("Expected persisted balance 8800, got %v", portfolio.VirtualBalance)
		}
		if len(portfolio.Holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(portfolio.Holdings))
		}
	})

	t.Run("repeat buy merges into the existing holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().WithBalance(10000).Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusUpcoming).WithPriceRange(100, 0).Build(t, db)

		if _, err := svc.Buy(ctx, user.ID, ipo.ID, 5); err != nil {
			t.Fatalf("First buy failed: %v", err)
		}
		result, err := svc.Buy(ctx, user.ID, ipo.ID, 3)
		if err != nil {
			t.Fatalf("Second buy failed: %v", err)
		}

		// Low band used because the high band is unset.
		if result.TotalCost != 300 {
			t.Errorf("Expected cost 300, got %v", result.TotalCost)
		}
		if result.Holding.Shares != 8 {
			t.Errorf("Expected merged holding of 8 shares, got %d", result.Holding.Shares)
		}

		portfolio, err := svc.GetPortfolio(user.ID)
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if len(portfolio.Holdings) != 1 {
			t.Fatalf("Expected a single merged holding, got %d", len(portfolio.Holdings))
		}
	})

	t.Run("insufficient balance rejects the order and changes nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().WithBalance(100).Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).WithPriceRange(100, 120).Build(t, db)

		_, err := svc.Buy(ctx, user.ID, ipo.ID, 10)
		if !errors.Is(err, apperrors.ErrInsufficientBalance) {
			t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
		}

		portfolio, err := svc.GetPortfolio(user.ID)
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if portfolio.VirtualBalance != 100 {
			t.Errorf("Expected untouched balance 100, got %v", portfolio.VirtualBalance)
		}
		if len(portfolio.Holdings) != 0 {
			t.Errorf("Expected no holdings, got %d", len(portfolio.Holdings))
		}
	})

	t.Run("past IPO cannot be bought", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusPast).Build(t, db)

		_, err := svc.Buy(ctx, user.ID, ipo.ID, 1)
		if !errors.Is(err, apperrors.ErrIPONotPurchasable) {
			t.Errorf("Expected ErrIPONotPurchasable, got %v", err)
		}
	})

	t.Run("IPO without a price band cannot be bought", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().WithStatus(model.IPOStatusOpen).WithPriceRange(0, 0).Build(t, db)

		_, err := svc.Buy(ctx, user.ID, ipo.ID, 1)
		if !errors.Is(err, apperrors.ErrPriceNotDetermined) {
			t.Errorf("Expected ErrPriceNotDetermined, got %v", err)
		}
	})

	t.Run("unknown IPO is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)

		_, err := svc.Buy(ctx, user.ID, testutil.MakeID(), 1)
		if !errors.Is(err, apperrors.ErrIPONotFound) {
			t.Errorf("Expected ErrIPONotFound, got %v", err)
		}
	})
}

func TestPortfolioService_Sell(t *testing.T) {
	ctx := context.Background()

	t.Run("partial sale credits proceeds and reduces the position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().WithBalance(1000).Build(t, db)
		ipo := testutil.NewIPO().WithPriceRange(100, 150).Build(t, db)
		holding := testutil.NewHolding(user, ipo).WithShares(10).WithPurchasePrice(150).Build(t, db)

		result, err := svc.Sell(ctx, user.ID, holding.ID, 4)
		if err != nil {
			t.Fatalf("Sell failed: %v", err)
		}

		if result.SharesSold != 4 {
			t.Errorf("Expected 4 shares sold, got %d", result.SharesSold)
		}
		if result.Proceeds != 600 {
			t.Errorf("Expected proceeds 600, got %v", result.Proceeds)
		}
		if result.NewBalance != 1600 {
			t.Errorf("Expected balance 1600, got %v", result.NewBalance)
		}

		portfolio, err := svc.GetPortfolio(user.ID)
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if len(portfolio.Holdings) != 1 || portfolio.Holdings[0].Shares != 6 {
			t.Errorf("Expected 6 remaining shares, got %+v", portfolio.Holdings)
		}
	})

	t.Run("selling the full position removes the holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().Build(t, db)
		holding := testutil.NewHolding(user, ipo).WithShares(10).Build(t, db)

		if _, err := svc.Sell(ctx, user.ID, holding.ID, 10); err != nil {
			t.Fatalf("Sell failed: %v", err)
		}

		portfolio, err := svc.GetPortfolio(user.ID)
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if len(portfolio.Holdings) != 0 {
			t.Errorf("Expected no holdings after full sale, got %d", len(portfolio.Holdings))
		}
	})

	t.Run("selling more than held is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().Build(t, db)
		holding := testutil.NewHolding(user, ipo).WithShares(5).Build(t, db)

		_, err := svc.Sell(ctx, user.ID, holding.ID, 6)
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
	})

	t.Run("selling another user's holding is forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		owner := testutil.NewUser().Build(t, db)
		other := testutil.NewUser().Build(t, db)
		ipo := testutil.NewIPO().Build(t, db)
		holding := testutil.NewHolding(owner, ipo).Build(t, db)

		_, err := svc.Sell(ctx, other.ID, holding.ID, 1)
		if !errors.Is(err, apperrors.ErrNotOwner) {
			t.Errorf("Expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("unknown holding is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)

		_, err := svc.Sell(ctx, user.ID, testutil.MakeID(), 1)
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected ErrHoldingNotFound, got %v", err)
		}
	})
}
