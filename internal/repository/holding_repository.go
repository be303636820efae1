package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// HoldingRepository provides data access methods for the portfolio_holding
// table. The (user, ipo) pair is unique; buys accumulate into one row.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *HoldingRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const holdingColumns = `id, user_id, ipo_id, ipo_symbol, ipo_company_name, shares, purchase_price, purchase_date`

func scanHolding(scan func(dest ...any) error) (model.Holding, error) {
	var h model.Holding
	var purchaseDate string

	err := scan(
		&h.ID,
		&h.UserID,
		&h.IPOID,
		&h.IPOSymbol,
		&h.IPOCompanyName,
		&h.Shares,
		&h.PurchasePrice,
		&purchaseDate,
	)
	if err != nil {
		return model.Holding{}, err
	}

	if h.PurchaseDate, err = parseStoredTime(purchaseDate); err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// GetHoldingsByUser retrieves all holdings owned by a user, newest first.
func (r *HoldingRepository) GetHoldingsByUser(userID string) ([]model.Holding, error) {
	rows, err := r.getQuerier().Query(
		`SELECT `+holdingColumns+` FROM portfolio_holding WHERE user_id = ? ORDER BY purchase_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_holding results: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_holding table: %w", err)
	}

	return holdings, nil
}

// GetHolding retrieves a single holding by ID.
func (r *HoldingRepository) GetHolding(id string) (model.Holding, error) {
	row := r.getQuerier().QueryRow(`SELECT `+holdingColumns+` FROM portfolio_holding WHERE id = ?`, id)

	h, err := scanHolding(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query portfolio_holding table: %w", err)
	}
	return h, nil
}

// FindByUserAndIPO retrieves the holding a user has in a specific IPO, if any.
func (r *HoldingRepository) FindByUserAndIPO(userID, ipoID string) (model.Holding, error) {
	row := r.getQuerier().QueryRow(
		`SELECT `+holdingColumns+` FROM portfolio_holding WHERE user_id = ? AND ipo_id = ?`,
		userID, ipoID,
	)

	h, err := scanHolding(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query portfolio_holding table: %w", err)
	}
	return h, nil
}

// InsertHolding persists a new holding row.
func (r *HoldingRepository) InsertHolding(ctx context.Context, holding *model.Holding) error {
	_, err := r.getQuerier().ExecContext(ctx, `
        INSERT INTO portfolio_holding (id, user_id, ipo_id, ipo_symbol, ipo_company_name, shares, purchase_price, purchase_date)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		holding.ID,
		holding.UserID,
		holding.IPOID,
		holding.IPOSymbol,
		holding.IPOCompanyName,
		holding.Shares,
		holding.PurchasePrice,
		storeTime(holding.PurchaseDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}
	return nil
}

// AddShares adjusts the share count of a holding by delta (negative to
// reduce).
func (r *HoldingRepository) AddShares(ctx context.Context, id string, delta int64) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE portfolio_holding SET shares = shares + ? WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding shares: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}
	return nil
}

// DeleteHolding removes a holding by ID.
func (r *HoldingRepository) DeleteHolding(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM portfolio_holding WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}
	return nil
}
