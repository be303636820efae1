package model

import "time"

// SyncStats aggregates the outcome of one feed synchronization pass.
type SyncStats struct {
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// SyncRun records a single synchronization attempt, persisted so the status
// endpoint can report the last real run instead of a canned value.
type SyncRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	Stats      SyncStats `json:"stats"`
}

// SyncConfig holds the stored feed configuration. The API key is kept
// encrypted at rest and only reported as present or absent.
type SyncConfig struct {
	Configured   bool       `json:"configured"`
	APIKeySet    bool       `json:"apiKeySet"`
	AutoSync     bool       `json:"autoSync"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// SyncStatus is the response payload for the sync status endpoint.
type SyncStatus struct {
	Provider string   `json:"provider"`
	Ready    bool     `json:"ready"`
	LastRun  *SyncRun `json:"lastRun,omitempty"`
}
