package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// IPOBuilder provides a fluent interface for creating test IPOs.
//
// Example usage:
//
//	// Simple creation with defaults
//	ipo := testutil.NewIPO().Build(t, db)
//
//	// Customized IPO
//	ipo := testutil.NewIPO().
//	    WithSymbol("ACME").
//	    WithStatus(model.IPOStatusOpen).
//	    WithPriceRange(100, 120).
//	    Build(t, db)
type IPOBuilder struct {
	ID             string
	CompanyName    string
	Symbol         string
	Description    string
	IPODate        time.Time
	PriceRangeLow  float64
	PriceRangeHigh float64
	SharesOffered  int64
	Status         string
	CreatedAt      time.Time
}

// NewIPO creates an IPOBuilder with sensible defaults.
func NewIPO() *IPOBuilder {
	return &IPOBuilder{
		ID:             MakeID(),
		CompanyName:    "Test Company Ltd",
		Symbol:         MakeSymbol("TST"),
		Description:    "Test IPO description",
		IPODate:        time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second),
		PriceRangeLow:  100,
		PriceRangeHigh: 120,
		SharesOffered:  1000000,
		Status:         model.IPOStatusUpcoming,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

// WithID sets a custom ID.
func (b *IPOBuilder) WithID(id string) *IPOBuilder {
	b.ID = id
	return b
}

// WithCompanyName sets a custom company name.
func (b *IPOBuilder) WithCompanyName(name string) *IPOBuilder {
	b.CompanyName = name
	return b
}

// WithSymbol sets a custom symbol.
func (b *IPOBuilder) WithSymbol(symbol string) *IPOBuilder {
	b.Symbol = symbol
	return b
}

// WithStatus sets a custom status.
func (b *IPOBuilder) WithStatus(status string) *IPOBuilder {
	b.Status = status
	return b
}

// WithPriceRange sets the price band.
func (b *IPOBuilder) WithPriceRange(low, high float64) *IPOBuilder {
	b.PriceRangeLow = low
	b.PriceRangeHigh = high
	return b
}

// WithIPODate sets a custom listing date.
func (b *IPOBuilder) WithIPODate(date time.Time) *IPOBuilder {
	b.IPODate = date
	return b
}

// Build creates the IPO in the database and returns it.
func (b *IPOBuilder) Build(t *testing.T, db *sql.DB) model.IPO {
	t.Helper()

	query := `
		INSERT INTO ipo (id, company_name, symbol, description, ipo_date, price_range_low,
			price_range_high, shares_offered, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.CompanyName, b.Symbol, b.Description,
		b.IPODate.Format(time.RFC3339), b.PriceRangeLow, b.PriceRangeHigh,
		b.SharesOffered, b.Status, b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test IPO: %v", err)
	}

	return model.IPO{
		ID:             b.ID,
		CompanyName:    b.CompanyName,
		Symbol:         b.Symbol,
		Description:    b.Description,
		IPODate:        b.IPODate,
		PriceRangeLow:  b.PriceRangeLow,
		PriceRangeHigh: b.PriceRangeHigh,
		SharesOffered:  b.SharesOffered,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
	}
}

// BrokerBuilder provides a fluent interface for creating test brokers.
type BrokerBuilder struct {
	ID          string
	Name        string
	Description string
	Website     string
	Fees        string
	Rating      float64
	Features    []string
	CreatedAt   time.Time
}

// NewBroker creates a BrokerBuilder with sensible defaults.
func NewBroker() *BrokerBuilder {
	return &BrokerBuilder{
		ID:          MakeID(),
		Name:        "Test Broker " + randomAlphanumeric(6),
		Description: "Test broker description",
		Website:     "https://broker.example.com",
		Fees:        "Zero brokerage on delivery",
		Rating:      4.2,
		Features:    []string{"IPO applications", "Research reports"},
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

// WithID sets a custom ID.
func (b *BrokerBuilder) WithID(id string) *BrokerBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *BrokerBuilder) WithName(name string) *BrokerBuilder {
	b.Name = name
	return b
}

// WithRating sets a custom rating.
func (b *BrokerBuilder) WithRating(rating float64) *BrokerBuilder {
	b.Rating = rating
	return b
}

// WithFeatures sets a custom feature list.
func (b *BrokerBuilder) WithFeatures(features ...string) *BrokerBuilder {
	b.Features = features
	return b
}

// Build creates the broker in the database and returns it.
func (b *BrokerBuilder) Build(t *testing.T, db *sql.DB) model.Broker {
	t.Helper()

	features, err := json.Marshal(b.Features)
	if err != nil {
		t.Fatalf("Failed to encode broker features: %v", err)
	}

	query := `
		INSERT INTO broker (id, name, description, website, fees, rating, features, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query,
		b.ID, b.Name, b.Description, b.Website, b.Fees, b.Rating,
		string(features), b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test broker: %v", err)
	}

	return model.Broker{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Website:     b.Website,
		Fees:        b.Fees,
		Rating:      b.Rating,
		Features:    b.Features,
		CreatedAt:   b.CreatedAt,
	}
}

// InvestorBuilder provides a fluent interface for creating test investors.
type InvestorBuilder struct {
	ID           string
	Name         string
	InvestorType string
	Description  string
	Website      string
	CreatedAt    time.Time
}

// NewInvestor creates an InvestorBuilder with sensible defaults.
func NewInvestor() *InvestorBuilder {
	return &InvestorBuilder{
		ID:           MakeID(),
		Name:         "Test Investor " + randomAlphanumeric(6),
		InvestorType: model.InvestorTypeIndividual,
		Description:  "Test investor description",
		Website:      "https://investor.example.com",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// WithName sets a custom name.
func (b *InvestorBuilder) WithName(name string) *InvestorBuilder {
	b.Name = name
	return b
}

// WithType sets a custom investor type.
func (b *InvestorBuilder) WithType(investorType string) *InvestorBuilder {
	b.InvestorType = investorType
	return b
}

// Build creates the investor in the database and returns it.
func (b *InvestorBuilder) Build(t *testing.T, db *sql.DB) model.Investor {
	t.Helper()

	query := `
		INSERT INTO investor (id, name, investor_type, description, website, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Name, b.InvestorType, b.Description, b.Website,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return model.Investor{
		ID:           b.ID,
		Name:         b.Name,
		InvestorType: b.InvestorType,
		Description:  b.Description,
		Website:      b.Website,
		CreatedAt:    b.CreatedAt,
	}
}

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	user := testutil.NewUser().AsAdmin().Build(t, db)
type UserBuilder struct {
	ID             string
	Name           string
	Email          string
	Password       string
	Role           string
	VirtualBalance float64
	CreatedAt      time.Time
}

// NewUser creates a UserBuilder with sensible defaults. The plaintext
// password is "password123" unless overridden.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:             MakeID(),
		Name:           "Test User",
		Email:          MakeEmail("user"),
		Password:       "password123",
		Role:           model.RoleUser,
		VirtualBalance: model.DefaultVirtualBalance,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPassword sets a custom plaintext password.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// WithBalance sets a custom virtual balance.
func (b *UserBuilder) WithBalance(balance float64) *UserBuilder {
	b.VirtualBalance = balance
	return b
}

// AsAdmin marks the user as an administrator.
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Role = model.RoleAdmin
	return b
}

// Build creates the user in the database and returns it. The stored password
// is the bcrypt hash of the builder's plaintext.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	user := model.User{
		ID:             b.ID,
		Name:           b.Name,
		Email:          b.Email,
		Role:           b.Role,
		VirtualBalance: b.VirtualBalance,
		CreatedAt:      b.CreatedAt,
	}
	if err := user.HashPassword(b.Password); err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	query := `
		INSERT INTO user (id, name, email, password, role, virtual_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		user.ID, user.Name, user.Email, user.Password, user.Role,
		user.VirtualBalance, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// HoldingBuilder provides a fluent interface for creating test holdings.
type HoldingBuilder struct {
	ID            string
	UserID        string
	IPOID         string
	Symbol        string
	CompanyName   string
	Shares        int64
	PurchasePrice float64
	PurchaseDate  time.Time
}

// NewHolding creates a HoldingBuilder for the given user and IPO.
func NewHolding(user model.User, ipo model.IPO) *HoldingBuilder {
	return &HoldingBuilder{
		ID:            MakeID(),
		UserID:        user.ID,
		IPOID:         ipo.ID,
		Symbol:        ipo.Symbol,
		CompanyName:   ipo.CompanyName,
		Shares:        10,
		PurchasePrice: ipo.PurchasePrice(),
		PurchaseDate:  time.Now().UTC().Truncate(time.Second),
	}
}

// WithShares sets a custom share count.
func (b *HoldingBuilder) WithShares(shares int64) *HoldingBuilder {
	b.Shares = shares
	return b
}

// WithPurchasePrice sets a custom purchase price.
func (b *HoldingBuilder) WithPurchasePrice(price float64) *HoldingBuilder {
	b.PurchasePrice = price
	return b
}

// Build creates the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	query := `
		INSERT INTO portfolio_holding (id, user_id, ipo_id, ipo_symbol, ipo_company_name,
			shares, purchase_price, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.IPOID, b.Symbol, b.CompanyName,
		b.Shares, b.PurchasePrice, b.PurchaseDate.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		ID:             b.ID,
		UserID:         b.UserID,
		IPOID:          b.IPOID,
		IPOSymbol:      b.Symbol,
		IPOCompanyName: b.CompanyName,
		Shares:         b.Shares,
		PurchasePrice:  b.PurchasePrice,
		PurchaseDate:   b.PurchaseDate,
	}
}
