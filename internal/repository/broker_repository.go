package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// BrokerRepository provides data access methods for the broker table.
// The features list is stored as a JSON array in a TEXT column.
type BrokerRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewBrokerRepository creates a new BrokerRepository with the provided database connection.
func NewBrokerRepository(db *sql.DB) *BrokerRepository {
	return &BrokerRepository{db: db}
}

func (r *BrokerRepository) WithTx(tx *sql.Tx) *BrokerRepository {
	return &BrokerRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *BrokerRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const brokerColumns = `id, name, description, website, fees, rating, features, created_at`

func scanBroker(scan func(dest ...any) error) (model.Broker, error) {
	var b model.Broker
	var website, fees sql.NullString
	var features, createdAt string

	err := scan(
		&b.ID,
		&b.Name,
		&b.Description,
		&website,
		&fees,
		&b.Rating,
		&features,
		&createdAt,
	)
	if err != nil {
		return model.Broker{}, err
	}

	b.Website = website.String
	b.Fees = fees.String
	if err := json.Unmarshal([]byte(features), &b.Features); err != nil {
		return model.Broker{}, fmt.Errorf("failed to decode broker features: %w", err)
	}
	if b.Features == nil {
		b.Features = []string{}
	}
	if b.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return model.Broker{}, err
	}
	return b, nil
}

// GetBrokers retrieves all brokers. Returns an empty slice if none exist.
func (r *BrokerRepository) GetBrokers() ([]model.Broker, error) {
	rows, err := r.getQuerier().Query(`SELECT ` + brokerColumns + ` FROM broker ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query broker table: %w", err)
	}
	defer rows.Close()

	brokers := []model.Broker{}
	for rows.Next() {
		b, err := scanBroker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan broker table results: %w", err)
		}
		brokers = append(brokers, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating broker table: %w", err)
	}

	return brokers, nil
}

// GetBroker retrieves a single broker by ID.
func (r *BrokerRepository) GetBroker(id string) (model.Broker, error) {
	row := r.getQuerier().QueryRow(`SELECT `+brokerColumns+` FROM broker WHERE id = ?`, id)

	b, err := scanBroker(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Broker{}, apperrors.ErrBrokerNotFound
	}
	if err != nil {
		return model.Broker{}, fmt.Errorf("failed to query broker table: %w", err)
	}
	return b, nil
}

// GetBrokersByIDs retrieves the brokers matching the given IDs. IDs without
// a matching row are silently skipped.
func (r *BrokerRepository) GetBrokersByIDs(ids []string) ([]model.Broker, error) {
	if len(ids) == 0 {
		return []model.Broker{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `SELECT ` + brokerColumns + ` FROM broker WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query broker table: %w", err)
	}
	defer rows.Close()

	brokers := []model.Broker{}
	for rows.Next() {
		b, err := scanBroker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan broker table results: %w", err)
		}
		brokers = append(brokers, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating broker table: %w", err)
	}

	return brokers, nil
}

// InsertBroker persists a new broker. A duplicate name maps to
// ErrDuplicateBrokerName.
func (r *BrokerRepository) InsertBroker(ctx context.Context, broker *model.Broker) error {
	features, err := json.Marshal(broker.Features)
	if err != nil {
		return fmt.Errorf("failed to encode broker features: %w", err)
	}

	_, err = r.getQuerier().ExecContext(ctx, `
        INSERT INTO broker (id, name, description, website, fees, rating, features, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		broker.ID,
		broker.Name,
		broker.Description,
		broker.Website,
		broker.Fees,
		broker.Rating,
		string(features),
		storeTime(broker.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateBrokerName, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to insert broker: %w", err)
	}
	return nil
}

// UpdateBroker overwrites all mutable fields of an existing broker.
func (r *BrokerRepository) UpdateBroker(ctx context.Context, broker *model.Broker) error {
	features, err := json.Marshal(broker.Features)
	if err != nil {
		return fmt.Errorf("failed to encode broker features: %w", err)
	}

	result, err := r.getQuerier().ExecContext(ctx, `
        UPDATE broker
        SET name = ?, description = ?, website = ?, fees = ?, rating = ?, features = ?
        WHERE id = ?`,
		broker.Name,
		broker.Description,
		broker.Website,
		broker.Fees,
		broker.Rating,
		string(features),
		broker.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateBrokerName, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to update broker: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBrokerNotFound
	}
	return nil
}

// DeleteBroker removes a broker by ID.
func (r *BrokerRepository) DeleteBroker(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM broker WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete broker: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBrokerNotFound
	}
	return nil
}
