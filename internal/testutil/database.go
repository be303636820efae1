package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database schema.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- IPO table
		CREATE TABLE ipo (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			company_name VARCHAR(255) NOT NULL,
			symbol VARCHAR(20) NOT NULL UNIQUE,
			description TEXT NOT NULL,
			ipo_date DATETIME NOT NULL,
			price_range_low FLOAT NOT NULL DEFAULT 0,
			price_range_high FLOAT NOT NULL DEFAULT 0,
			shares_offered INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'upcoming',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Broker table
		CREATE TABLE broker (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT NOT NULL,
			website VARCHAR(255),
			fees TEXT,
			rating FLOAT NOT NULL DEFAULT 0,
			features TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Investor table
		CREATE TABLE investor (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			investor_type VARCHAR(20) NOT NULL DEFAULT 'other',
			description TEXT,
			website VARCHAR(255),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- User table
		CREATE TABLE user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(100) NOT NULL,
			role VARCHAR(10) NOT NULL DEFAULT 'user',
			virtual_balance FLOAT NOT NULL DEFAULT 100000,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Portfolio holding table
		CREATE TABLE portfolio_holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			ipo_id VARCHAR(36) NOT NULL,
			ipo_symbol VARCHAR(20) NOT NULL,
			ipo_company_name VARCHAR(255) NOT NULL,
			shares INTEGER NOT NULL,
			purchase_price FLOAT NOT NULL,
			purchase_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES user(id) ON DELETE CASCADE,
			FOREIGN KEY(ipo_id) REFERENCES ipo(id) ON DELETE CASCADE,
			CONSTRAINT unique_user_ipo UNIQUE (user_id, ipo_id)
		);

		-- Feed configuration table
		CREATE TABLE sync_config (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			api_key_encrypted TEXT,
			auto_sync BOOLEAN NOT NULL DEFAULT FALSE,
			last_synced_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Feed run history table
		CREATE TABLE sync_run (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			success BOOLEAN NOT NULL,
			message TEXT,
			added INTEGER NOT NULL DEFAULT 0,
			updated INTEGER NOT NULL DEFAULT 0,
			unchanged INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX idx_ipo_status ON ipo(status);
		CREATE INDEX idx_holding_user ON portfolio_holding(user_id);
	`

	_, err := db.Exec(schema)
	return err
}
