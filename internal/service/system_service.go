package service

import (
	"database/sql"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/database"
)

// SystemService exposes operational checks for the health endpoint.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}
