package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrIPONotFound indicates that an IPO with the given ID does not exist.
	ErrIPONotFound = errors.New("IPO not found")

	// ErrBrokerNotFound indicates that a broker with the given ID does not exist.
	ErrBrokerNotFound = errors.New("broker not found")

	// ErrInvestorNotFound indicates that an investor with the given ID does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrHoldingNotFound indicates that a portfolio holding does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrSyncConfigNotFound indicates the feed configuration has not been set up.
	ErrSyncConfigNotFound = errors.New("sync configuration not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrDuplicateSymbol indicates an IPO with the same symbol already exists.
	ErrDuplicateSymbol = errors.New("IPO with this symbol already exists")

	// ErrDuplicateBrokerName indicates a broker with the same name already exists.
	ErrDuplicateBrokerName = errors.New("broker with this name already exists")

	// ErrDuplicateEmail indicates a user with this email already exists.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInsufficientBalance indicates a buy order exceeds the user's virtual balance.
	ErrInsufficientBalance = errors.New("insufficient virtual balance")

	// ErrInsufficientShares indicates a sell order exceeds the shares held.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrIPONotPurchasable indicates the IPO status does not allow purchases.
	ErrIPONotPurchasable = errors.New("IPO is not available for purchase")

	// ErrPriceNotDetermined indicates the IPO has no usable price range yet.
	ErrPriceNotDetermined = errors.New("IPO price not determined")

	// ErrNotOwner indicates the requested holding belongs to a different user.
	ErrNotOwner = errors.New("not authorized to access this holding")
)

// Authentication errors cover token and credential failures.
var (
	// ErrInvalidCredentials indicates a failed email/password login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a missing, malformed or expired bearer token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrNoIdentity indicates a protected route was reached without an
	// authenticated identity attached to the request.
	ErrNoIdentity = errors.New("no authenticated identity")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveIPOs      = errors.New("failed to retrieve IPOs")
	ErrFailedToRetrieveBrokers   = errors.New("failed to retrieve brokers")
	ErrFailedToRetrieveInvestors = errors.New("failed to retrieve investors")
	ErrFailedToRetrieveUsers     = errors.New("failed to retrieve users")
	ErrFailedToRetrievePortfolio = errors.New("failed to retrieve portfolio")
	ErrFailedToSyncIPOs          = errors.New("failed to sync IPO data")
)
