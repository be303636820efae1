package testutil

import (
	"database/sql"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/auth"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/events"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
)

// TestJWTSecret is the signing secret used by test token managers.
const TestJWTSecret = "test-secret"

// MakeID generates a UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return strings.ToUpper(base + randomAlphanumeric(4))
}

// MakeEmail generates a unique email address for testing.
func MakeEmail(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "-" + strings.ToLower(randomAlphanumeric(6)) + "@example.com"
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomAlphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))] //nolint:gosec // test data
	}
	return string(b)
}

// NewTestTokenManager creates a token manager with a fixed secret and a
// one-hour expiry.
func NewTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	return auth.NewTokenManager(TestJWTSecret, time.Hour)
}

// NewTestAuthService wires an auth service against the given test database.
func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	return service.NewAuthService(
		userRepo,
		NewTestTokenManager(t),
	)
}

// NewTestIPOService wires an IPO service with an enabled cache and a no-op
// notifier.
func NewTestIPOService(t *testing.T, db *sql.DB) *service.IPOService {
	t.Helper()

	ipoRepo := repository.NewIPORepository(db)

	return service.NewIPOService(
		ipoRepo,
		cache.New(cache.DefaultTTL),
		events.NopNotifier{},
	)
}

// NewTestBrokerService wires a broker service with an enabled cache.
func NewTestBrokerService(t *testing.T, db *sql.DB) *service.BrokerService {
	t.Helper()

	brokerRepo := repository.NewBrokerRepository(db)

	return service.NewBrokerService(
		brokerRepo,
		cache.New(cache.DefaultTTL),
	)
}

// NewTestInvestorService wires an investor service with an enabled cache.
func NewTestInvestorService(t *testing.T, db *sql.DB) *service.InvestorService {
	t.Helper()

	investorRepo := repository.NewInvestorRepository(db)

	return service.NewInvestorService(
		investorRepo,
		cache.New(cache.DefaultTTL),
	)
}

// NewTestUserService wires a user service against the given test database.
func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	return service.NewUserService(repository.NewUserRepository(db))
}

// NewTestPortfolioService wires a portfolio service against the given test
// database.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	ipoRepo := repository.NewIPORepository(db)
	holdingRepo := repository.NewHoldingRepository(db)

	return service.NewPortfolioService(
		db,
		userRepo,
		ipoRepo,
		holdingRepo,
	)
}
