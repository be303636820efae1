package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
type InvestorRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestorRepository creates a new InvestorRepository with the provided database connection.
func NewInvestorRepository(db *sql.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

func (r *InvestorRepository) WithTx(tx *sql.Tx) *InvestorRepository {
	return &InvestorRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *InvestorRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const investorColumns = `id, name, investor_type, description, website, created_at`

func scanInvestor(scan func(dest ...any) error) (model.Investor, error) {
	var inv model.Investor
	var description, website sql.NullString
	var createdAt string

	err := scan(
		&inv.ID,
		&inv.Name,
		&inv.InvestorType,
		&description,
		&website,
		&createdAt,
	)
	if err != nil {
		return model.Investor{}, err
	}

	inv.Description = description.String
	inv.Website = website.String
	if inv.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return model.Investor{}, err
	}
	return inv, nil
}

// GetInvestors retrieves all investors. Returns an empty slice if none exist.
func (r *InvestorRepository) GetInvestors() ([]model.Investor, error) {
	rows, err := r.getQuerier().Query(`SELECT ` + investorColumns + ` FROM investor ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor table: %w", err)
	}
	defer rows.Close()

	investors := []model.Investor{}
	for rows.Next() {
		inv, err := scanInvestor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor table results: %w", err)
		}
		investors = append(investors, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor table: %w", err)
	}

	return investors, nil
}

// GetInvestor retrieves a single investor by ID.
func (r *InvestorRepository) GetInvestor(id string) (model.Investor, error) {
	row := r.getQuerier().QueryRow(`SELECT `+investorColumns+` FROM investor WHERE id = ?`, id)

	inv, err := scanInvestor(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to query investor table: %w", err)
	}
	return inv, nil
}

// InsertInvestor persists a new investor.
func (r *InvestorRepository) InsertInvestor(ctx context.Context, investor *model.Investor) error {
	_, err := r.getQuerier().ExecContext(ctx, `
        INSERT INTO investor (id, name, investor_type, description, website, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		investor.ID,
		investor.Name,
		investor.InvestorType,
		investor.Description,
		investor.Website,
		storeTime(investor.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investor: %w", err)
	}
	return nil
}

// UpdateInvestor overwrites all mutable fields of an existing investor.
func (r *InvestorRepository) UpdateInvestor(ctx context.Context, investor *model.Investor) error {
	result, err := r.getQuerier().ExecContext(ctx, `
        UPDATE investor
        SET name = ?, investor_type = ?, description = ?, website = ?
        WHERE id = ?`,
		investor.Name,
		investor.InvestorType,
		investor.Description,
		investor.Website,
		investor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}
	return nil
}

// DeleteInvestor removes an investor by ID.
func (r *InvestorRepository) DeleteInvestor(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM investor WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}
	return nil
}
