package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
)

// PortfolioService handles the virtual trading ledger: portfolio reads and
// buy/sell orders against a user's virtual balance. Orders run inside a
// single database transaction so the balance check, the balance mutation and
// the holding change commit or roll back together.
type PortfolioService struct {
	db          *sql.DB
	userRepo    *repository.UserRepository
	ipoRepo     *repository.IPORepository
	holdingRepo *repository.HoldingRepository
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	ipoRepo *repository.IPORepository,
	holdingRepo *repository.HoldingRepository,
) *PortfolioService {
	return &PortfolioService{
		db:          db,
		userRepo:    userRepo,
		ipoRepo:     ipoRepo,
		holdingRepo: holdingRepo,
	}
}

// GetPortfolio retrieves the user's balance and all current holdings.
func (s *PortfolioService) GetPortfolio(userID string) (model.Portfolio, error) {
	user, err := s.userRepo.GetUser(userID)
	if err != nil {
		return model.Portfolio{}, err
	}

	holdings, err := s.holdingRepo.GetHoldingsByUser(userID)
	if err != nil {
		return model.Portfolio{}, err
	}

	return model.Portfolio{
		UserID:         user.ID,
		Name:           user.Name,
		Email:          user.Email,
		VirtualBalance: user.VirtualBalance,
		Holdings:       holdings,
	}, nil
}

// Buy purchases shares of an IPO for the user. The price is the IPO's high
// price band, falling back to the low band. Repeat buys of the same IPO
// accumulate into the existing holding. The debit is conditional on the
// user holding sufficient balance inside the same transaction, so concurrent
// buys cannot overdraw the account.
func (s *PortfolioService) Buy(ctx context.Context, userID, ipoID string, shares int64) (model.PurchaseResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.PurchaseResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	userRepo := s.userRepo.WithTx(tx)
	ipoRepo := s.ipoRepo.WithTx(tx)
	holdingRepo := s.holdingRepo.WithTx(tx)

	user, err := userRepo.GetUser(userID)
	if err != nil {
		return model.PurchaseResult{}, err
	}

	ipo, err := ipoRepo.GetIPO(ipoID)
	if err != nil {
		return model.PurchaseResult{}, err
	}
	if !ipo.Purchasable() {
		return model.PurchaseResult{}, apperrors.ErrIPONotPurchasable
	}

	price := ipo.PurchasePrice()
	if price <= 0 {
		return model.PurchaseResult{}, apperrors.ErrPriceNotDetermined
	}
	cost := price * float64(shares)

	if err = userRepo.DebitBalance(ctx, userID, cost); err != nil {
		return model.PurchaseResult{}, err
	}

	holding, err := holdingRepo.FindByUserAndIPO(userID, ipoID)
	switch {
	case err == nil:
		if err = holdingRepo.AddShares(ctx, holding.ID, shares); err != nil {
			return model.PurchaseResult{}, err
		}
		holding.Shares += shares
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		holding = model.Holding{
			ID:             uuid.New().String(),
			UserID:         userID,
			IPOID:          ipo.ID,
			IPOSymbol:      ipo.Symbol,
			IPOCompanyName: ipo.CompanyName,
			Shares:         shares,
			PurchasePrice:  price,
			PurchaseDate:   time.Now().UTC(),
		}
		if err = holdingRepo.InsertHolding(ctx, &holding); err != nil {
			return model.PurchaseResult{}, err
		}
	default:
		return model.PurchaseResult{}, err
	}

	if err = tx.Commit(); err != nil {
		return model.PurchaseResult{}, fmt.Errorf("failed to commit buy transaction: %w", err)
	}

	return model.PurchaseResult{
		Message:    fmt.Sprintf("Purchased %d shares of %s", shares, ipo.Symbol),
		Holding:    holding,
		TotalCost:  cost,
		NewBalance: user.VirtualBalance - cost,
	}, nil
}

// Sell disposes shares from one of the user's holdings at the recorded
// purchase price. Selling the full position removes the holding row.
func (s *PortfolioService) Sell(ctx context.Context, userID, holdingID string, shares int64) (model.SaleResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.SaleResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	userRepo := s.userRepo.WithTx(tx)
	holdingRepo := s.holdingRepo.WithTx(tx)

	holding, err := holdingRepo.GetHolding(holdingID)
	if err != nil {
		return model.SaleResult{}, err
	}
	if holding.UserID != userID {
		return model.SaleResult{}, apperrors.ErrNotOwner
	}
	if shares > holding.Shares {
		return model.SaleResult{}, apperrors.ErrInsufficientShares
	}

	user, err := userRepo.GetUser(userID)
	if err != nil {
		return model.SaleResult{}, err
	}

	proceeds := float64(shares) * holding.PurchasePrice

	if err = userRepo.CreditBalance(ctx, userID, proceeds); err != nil {
		return model.SaleResult{}, err
	}

	if shares == holding.Shares {
		err = holdingRepo.DeleteHolding(ctx, holding.ID)
	} else {
		err = holdingRepo.AddShares(ctx, holding.ID, -shares)
	}
	if err != nil {
		return model.SaleResult{}, err
	}

	if err = tx.Commit(); err != nil {
		return model.SaleResult{}, fmt.Errorf("failed to commit sell transaction: %w", err)
	}

	return model.SaleResult{
		Message:    fmt.Sprintf("Sold %d shares of %s", shares, holding.IPOSymbol),
		SharesSold: shares,
		Proceeds:   proceeds,
		NewBalance: user.VirtualBalance + proceeds,
	}, nil
}
