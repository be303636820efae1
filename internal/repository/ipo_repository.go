package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// IPORepository provides data access methods for the ipo table.
type IPORepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewIPORepository creates a new IPORepository with the provided database connection.
func NewIPORepository(db *sql.DB) *IPORepository {
	return &IPORepository{db: db}
}

func (r *IPORepository) WithTx(tx *sql.Tx) *IPORepository {
	return &IPORepository{
		db: r.db,
		tx: tx,
	}
}

func (r *IPORepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const ipoColumns = `id, company_name, symbol, description, ipo_date, price_range_low, price_range_high, shares_offered, status, created_at`

func scanIPO(scan func(dest ...any) error) (model.IPO, error) {
	var i model.IPO
	var ipoDate, createdAt string

	err := scan(
		&i.ID,
		&i.CompanyName,
		&i.Symbol,
		&i.Description,
		&ipoDate,
		&i.PriceRangeLow,
		&i.PriceRangeHigh,
		&i.SharesOffered,
		&i.Status,
		&createdAt,
	)
	if err != nil {
		return model.IPO{}, err
	}

	if i.IPODate, err = parseStoredTime(ipoDate); err != nil {
		return model.IPO{}, err
	}
	if i.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return model.IPO{}, err
	}
	return i, nil
}

// GetIPOs retrieves IPOs sorted ascending by IPO date, optionally filtered
// by status. Returns an empty slice if none match.
func (r *IPORepository) GetIPOs(status string) ([]model.IPO, error) {
	query := `SELECT ` + ipoColumns + ` FROM ipo`

	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY ipo_date ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ipo table: %w", err)
	}
	defer rows.Close()

	ipos := []model.IPO{}
	for rows.Next() {
		i, err := scanIPO(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ipo table results: %w", err)
		}
		ipos = append(ipos, i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ipo table: %w", err)
	}

	return ipos, nil
}

// GetIPO retrieves a single IPO by ID.
func (r *IPORepository) GetIPO(id string) (model.IPO, error) {
	row := r.getQuerier().QueryRow(`SELECT `+ipoColumns+` FROM ipo WHERE id = ?`, id)

	i, err := scanIPO(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.IPO{}, apperrors.ErrIPONotFound
	}
	if err != nil {
		return model.IPO{}, fmt.Errorf("failed to query ipo table: %w", err)
	}
	return i, nil
}

// GetIPOBySymbol retrieves a single IPO by its unique symbol.
func (r *IPORepository) GetIPOBySymbol(symbol string) (model.IPO, error) {
	row := r.getQuerier().QueryRow(`SELECT `+ipoColumns+` FROM ipo WHERE symbol = ?`, symbol)

	i, err := scanIPO(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.IPO{}, apperrors.ErrIPONotFound
	}
	if err != nil {
		return model.IPO{}, fmt.Errorf("failed to query ipo table: %w", err)
	}
	return i, nil
}

// InsertIPO persists a new IPO. A duplicate symbol maps to ErrDuplicateSymbol.
func (r *IPORepository) InsertIPO(ctx context.Context, ipo *model.IPO) error {
	_, err := r.getQuerier().ExecContext(ctx, `
        INSERT INTO ipo (id, company_name, symbol, description, ipo_date, price_range_low, price_range_high, shares_offered, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ipo.ID,
		ipo.CompanyName,
		ipo.Symbol,
		ipo.Description,
		storeTime(ipo.IPODate),
		ipo.PriceRangeLow,
		ipo.PriceRangeHigh,
		ipo.SharesOffered,
		ipo.Status,
		storeTime(ipo.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to insert ipo: %w", err)
	}
	return nil
}

// UpdateIPO overwrites all mutable fields of an existing IPO.
func (r *IPORepository) UpdateIPO(ctx context.Context, ipo *model.IPO) error {
	result, err := r.getQuerier().ExecContext(ctx, `
        UPDATE ipo
        SET company_name = ?, symbol = ?, description = ?, ipo_date = ?,
            price_range_low = ?, price_range_high = ?, shares_offered = ?, status = ?
        WHERE id = ?`,
		ipo.CompanyName,
		ipo.Symbol,
		ipo.Description,
		storeTime(ipo.IPODate),
		ipo.PriceRangeLow,
		ipo.PriceRangeHigh,
		ipo.SharesOffered,
		ipo.Status,
		ipo.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to update ipo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrIPONotFound
	}
	return nil
}

// DeleteIPO removes an IPO by ID.
func (r *IPORepository) DeleteIPO(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM ipo WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ipo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrIPONotFound
	}
	return nil
}
