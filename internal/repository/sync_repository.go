package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// SyncRepository provides data access for the sync_config and sync_run
// tables. A single config row exists at most; runs are append-only history.
type SyncRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSyncRepository creates a new SyncRepository with the provided database connection.
func NewSyncRepository(db *sql.DB) *SyncRepository {
	return &SyncRepository{db: db}
}

func (r *SyncRepository) WithTx(tx *sql.Tx) *SyncRepository {
	return &SyncRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SyncRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// StoredSyncConfig is the raw config row, including the encrypted API key.
type StoredSyncConfig struct {
	ID              string
	APIKeyEncrypted string
	AutoSync        bool
	LastSyncedAt    *time.Time
	UpdatedAt       time.Time
}

// GetConfig retrieves the stored sync configuration.
func (r *SyncRepository) GetConfig() (StoredSyncConfig, error) {
	row := r.getQuerier().QueryRow(`
        SELECT id, api_key_encrypted, auto_sync, last_synced_at, updated_at
        FROM sync_config LIMIT 1`)

	var cfg StoredSyncConfig
	var apiKey, lastSynced sql.NullString
	var updatedAt string

	err := row.Scan(&cfg.ID, &apiKey, &cfg.AutoSync, &lastSynced, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredSyncConfig{}, apperrors.ErrSyncConfigNotFound
	}
	if err != nil {
		return StoredSyncConfig{}, fmt.Errorf("failed to query sync_config table: %w", err)
	}

	cfg.APIKeyEncrypted = apiKey.String
	if lastSynced.Valid {
		t, err := parseStoredTime(lastSynced.String)
		if err != nil {
			return StoredSyncConfig{}, err
		}
		cfg.LastSyncedAt = &t
	}
	if cfg.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return StoredSyncConfig{}, err
	}
	return cfg, nil
}

// UpsertConfig creates or replaces the single configuration row.
func (r *SyncRepository) UpsertConfig(ctx context.Context, apiKeyEncrypted string, autoSync bool) error {
	existing, err := r.GetConfig()
	if errors.Is(err, apperrors.ErrSyncConfigNotFound) {
		now := storeTime(time.Now())
		_, err = r.getQuerier().ExecContext(ctx, `
            INSERT INTO sync_config (id, api_key_encrypted, auto_sync, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), apiKeyEncrypted, autoSync, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sync config: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	// Keep the stored key when the update does not carry a new one.
	if apiKeyEncrypted == "" {
		apiKeyEncrypted = existing.APIKeyEncrypted
	}

	_, err = r.getQuerier().ExecContext(ctx, `
        UPDATE sync_config SET api_key_encrypted = ?, auto_sync = ?, updated_at = ? WHERE id = ?`,
		apiKeyEncrypted, autoSync, storeTime(time.Now()), existing.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sync config: %w", err)
	}
	return nil
}

// MarkSynced records the completion time of a successful sync on the config
// row, if one exists.
func (r *SyncRepository) MarkSynced(ctx context.Context, at time.Time) error {
	_, err := r.getQuerier().ExecContext(ctx,
		`UPDATE sync_config SET last_synced_at = ? WHERE id IN (SELECT id FROM sync_config LIMIT 1)`,
		storeTime(at),
	)
	if err != nil {
		return fmt.Errorf("failed to mark sync time: %w", err)
	}
	return nil
}

// InsertRun appends a sync run record.
func (r *SyncRepository) InsertRun(ctx context.Context, run *model.SyncRun) error {
	_, err := r.getQuerier().ExecContext(ctx, `
        INSERT INTO sync_run (id, started_at, finished_at, success, message, added, updated, unchanged, failed)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		storeTime(run.StartedAt),
		storeTime(run.FinishedAt),
		run.Success,
		run.Message,
		run.Stats.Added,
		run.Stats.Updated,
		run.Stats.Unchanged,
		run.Stats.Failed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

// GetLatestRun retrieves the most recent sync run, or nil when no sync has
// ever executed.
func (r *SyncRepository) GetLatestRun() (*model.SyncRun, error) {
	row := r.getQuerier().QueryRow(`
        SELECT id, started_at, finished_at, success, message, added, updated, unchanged, failed
        FROM sync_run ORDER BY started_at DESC LIMIT 1`)

	var run model.SyncRun
	var startedAt, finishedAt string
	var message sql.NullString

	err := row.Scan(
		&run.ID,
		&startedAt,
		&finishedAt,
		&run.Success,
		&message,
		&run.Stats.Added,
		&run.Stats.Updated,
		&run.Stats.Unchanged,
		&run.Stats.Failed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync_run table: %w", err)
	}

	run.Message = message.String
	if run.StartedAt, err = parseStoredTime(startedAt); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseStoredTime(finishedAt); err != nil {
		return nil, err
	}
	return &run, nil
}
