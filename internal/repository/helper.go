package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// querier abstracts over *sql.DB and *sql.Tx so repositories can run either
// standalone or inside a caller-owned transaction.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// parseStoredTime parses a timestamp read back from sqlite. Values written
// by this package use RFC3339; rows created by column defaults use the
// sqlite CURRENT_TIMESTAMP format.
func parseStoredTime(str string) (time.Time, error) {
	if str == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse stored time %q", str)
}

// storeTime formats a timestamp for persistence.
func storeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure, used to map duplicates onto the domain's conflict errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
