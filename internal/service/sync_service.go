package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/config"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/events"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/ipoalerts"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
)

// SyncService pulls IPO listings from the external feed and reconciles them
// into the local ipo table by symbol. The feed API key can come from the
// environment or from the admin-stored configuration; the stored key is kept
// fernet-encrypted at rest.
type SyncService struct {
	cfg        config.SyncConfig
	production bool
	client     *ipoalerts.Client
	ipoRepo    *repository.IPORepository
	syncRepo   *repository.SyncRepository
	cache      *cache.Store
	notifier   events.Notifier
}

// NewSyncService creates a new SyncService with the provided dependencies.
func NewSyncService(
	cfg config.SyncConfig,
	production bool,
	client *ipoalerts.Client,
	ipoRepo *repository.IPORepository,
	syncRepo *repository.SyncRepository,
	cacheStore *cache.Store,
	notifier events.Notifier,
) *SyncService {
	return &SyncService{
		cfg:        cfg,
		production: production,
		client:     client,
		ipoRepo:    ipoRepo,
		syncRepo:   syncRepo,
		cache:      cacheStore,
		notifier:   notifier,
	}
}

// Sync fetches the feed and upserts each record by symbol, returning counts
// of added, updated, unchanged and failed records. Outside production a
// failed fetch falls back to a fixed mock data set so development setups work
// without a key. Every attempt is recorded as a sync run.
func (s *SyncService) Sync(ctx context.Context) (model.SyncStats, error) {
	started := time.Now().UTC()

	records, err := s.fetch(ctx)
	if err != nil {
		s.recordRun(ctx, started, false, err.Error(), model.SyncStats{})
		return model.SyncStats{}, fmt.Errorf("%w: %s", apperrors.ErrFailedToSyncIPOs, err.Error())
	}

	var stats model.SyncStats
	for _, record := range records {
		if err := s.upsert(ctx, record, &stats); err != nil {
			log.Printf("sync: failed to process %q: %v", record.Symbol, err)
			stats.Failed++
		}
	}

	s.recordRun(ctx, started, true, "", stats)
	if err := s.syncRepo.MarkSynced(ctx, time.Now().UTC()); err != nil {
		log.Printf("sync: failed to record sync time: %v", err)
	}

	if stats.Added > 0 || stats.Updated > 0 {
		cache.InvalidateIPOs(s.cache, "")
		s.notifier.Notify(events.EventIPOUpdate, map[string]any{
			"action": "synced",
			"stats":  stats,
		})
	}

	return stats, nil
}

// fetch retrieves feed records with the resolved API key, substituting the
// mock fixture set on failure outside production.
func (s *SyncService) fetch(ctx context.Context) ([]ipoalerts.IPO, error) {
	client := s.client
	if key, err := s.storedAPIKey(); err == nil && key != "" {
		client = client.WithAPIKey(key)
	}

	records, err := client.FetchOpenIPOs(ctx)
	if err != nil {
		if s.production {
			return nil, err
		}
		log.Printf("sync: feed unavailable, using mock data: %v", err)
		return ipoalerts.MockIPOs(time.Now().UTC()), nil
	}
	return records, nil
}

// upsert reconciles one feed record against the ipo table by symbol.
func (s *SyncService) upsert(ctx context.Context, record ipoalerts.IPO, stats *model.SyncStats) error {
	incoming, err := record.MapToLocal()
	if err != nil {
		return err
	}
	if incoming.Symbol == "" || incoming.CompanyName == "" {
		return fmt.Errorf("record missing symbol or company name")
	}

	existing, err := s.ipoRepo.GetIPOBySymbol(incoming.Symbol)
	if errors.Is(err, apperrors.ErrIPONotFound) {
		incoming.ID = uuid.New().String()
		incoming.CreatedAt = time.Now().UTC()
		if err := s.ipoRepo.InsertIPO(ctx, &incoming); err != nil {
			return err
		}
		stats.Added++
		return nil
	}
	if err != nil {
		return err
	}

	if !changed(existing, incoming) {
		stats.Unchanged++
		return nil
	}

	incoming.ID = existing.ID
	incoming.CreatedAt = existing.CreatedAt
	if err := s.ipoRepo.UpdateIPO(ctx, &incoming); err != nil {
		return err
	}
	stats.Updated++
	return nil
}

// changed reports whether a feed record differs from the stored row in any
// synced field.
func changed(existing, incoming model.IPO) bool {
	return existing.Status != incoming.Status ||
		!existing.IPODate.Equal(incoming.IPODate) ||
		existing.PriceRangeLow != incoming.PriceRangeLow ||
		existing.PriceRangeHigh != incoming.PriceRangeHigh ||
		existing.SharesOffered != incoming.SharesOffered ||
		existing.CompanyName != incoming.CompanyName ||
		existing.Description != incoming.Description
}

func (s *SyncService) recordRun(ctx context.Context, started time.Time, success bool, message string, stats model.SyncStats) {
	run := model.SyncRun{
		ID:         uuid.New().String(),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Success:    success,
		Message:    message,
		Stats:      stats,
	}
	if err := s.syncRepo.InsertRun(ctx, &run); err != nil {
		log.Printf("sync: failed to persist run: %v", err)
	}
}

// GetStatus reports whether the feed integration is ready and the outcome of
// the most recent run.
func (s *SyncService) GetStatus() (model.SyncStatus, error) {
	lastRun, err := s.syncRepo.GetLatestRun()
	if err != nil {
		return model.SyncStatus{}, err
	}

	key, err := s.storedAPIKey()
	if err != nil {
		return model.SyncStatus{}, err
	}
	ready := key != "" || s.cfg.APIKey != ""

	return model.SyncStatus{
		Provider: ipoalerts.Provider,
		Ready:    ready,
		LastRun:  lastRun,
	}, nil
}

// GetConfig returns the stored feed configuration without exposing the key.
func (s *SyncService) GetConfig() (model.SyncConfig, error) {
	stored, err := s.syncRepo.GetConfig()
	if errors.Is(err, apperrors.ErrSyncConfigNotFound) {
		return model.SyncConfig{Configured: false}, nil
	}
	if err != nil {
		return model.SyncConfig{}, err
	}

	return model.SyncConfig{
		Configured:   true,
		APIKeySet:    stored.APIKeyEncrypted != "",
		AutoSync:     stored.AutoSync,
		LastSyncedAt: stored.LastSyncedAt,
		UpdatedAt:    stored.UpdatedAt,
	}, nil
}

// UpdateConfig stores a new feed API key and auto-sync flag. An empty key
// keeps the currently stored one; the key is encrypted before it is written.
func (s *SyncService) UpdateConfig(ctx context.Context, apiKey string, autoSync *bool) (model.SyncConfig, error) {
	encrypted := ""
	if apiKey != "" {
		var err error
		if encrypted, err = s.encryptAPIKey(apiKey); err != nil {
			return model.SyncConfig{}, err
		}
	}

	autoSyncValue := false
	if existing, err := s.syncRepo.GetConfig(); err == nil {
		autoSyncValue = existing.AutoSync
	} else if !errors.Is(err, apperrors.ErrSyncConfigNotFound) {
		return model.SyncConfig{}, err
	}
	if autoSync != nil {
		autoSyncValue = *autoSync
	}

	if err := s.syncRepo.UpsertConfig(ctx, encrypted, autoSyncValue); err != nil {
		return model.SyncConfig{}, err
	}
	return s.GetConfig()
}

// storedAPIKey decrypts the admin-stored API key, returning "" when no key
// has been stored.
func (s *SyncService) storedAPIKey() (string, error) {
	stored, err := s.syncRepo.GetConfig()
	if errors.Is(err, apperrors.ErrSyncConfigNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if stored.APIKeyEncrypted == "" {
		return "", nil
	}

	key, err := fernet.DecodeKey(s.cfg.SecretKey)
	if err != nil {
		return "", fmt.Errorf("invalid SYNC_SECRET_KEY: %w", err)
	}
	plain := fernet.VerifyAndDecrypt([]byte(stored.APIKeyEncrypted), 0, []*fernet.Key{key})
	if plain == nil {
		return "", fmt.Errorf("stored API key cannot be decrypted")
	}
	return string(plain), nil
}

func (s *SyncService) encryptAPIKey(apiKey string) (string, error) {
	if s.cfg.SecretKey == "" {
		return "", fmt.Errorf("SYNC_SECRET_KEY is required to store an API key")
	}
	key, err := fernet.DecodeKey(s.cfg.SecretKey)
	if err != nil {
		return "", fmt.Errorf("invalid SYNC_SECRET_KEY: %w", err)
	}
	token, err := fernet.EncryptAndSign([]byte(apiKey), key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt API key: %w", err)
	}
	return string(token), nil
}
