package model

import "time"

// Holding represents a user's position in a single IPO. At most one holding
// exists per (user, IPO) pair; repeat buys accumulate into the same row.
// Symbol and company name are captured at purchase time and are not kept in
// sync with later IPO edits.
type Holding struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	IPOID          string    `json:"ipoId"`
	IPOSymbol      string    `json:"ipoSymbol"`
	IPOCompanyName string    `json:"ipoCompanyName"`
	Shares         int64     `json:"shares"`
	PurchasePrice  float64   `json:"purchasePrice"`
	PurchaseDate   time.Time `json:"purchaseDate"`
}

// Portfolio is the response payload for the portfolio overview: the owning
// user's identity, remaining balance and all current holdings.
type Portfolio struct {
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	VirtualBalance float64   `json:"virtualBalance"`
	Holdings       []Holding `json:"holdings"`
}

// PurchaseResult is the response payload for a completed buy order.
type PurchaseResult struct {
	Message    string  `json:"message"`
	Holding    Holding `json:"holding"`
	TotalCost  float64 `json:"totalCost"`
	NewBalance float64 `json:"newBalance"`
}

// SaleResult is the response payload for a completed sell order.
type SaleResult struct {
	Message    string  `json:"message"`
	SharesSold int64   `json:"sharesSold"`
	Proceeds   float64 `json:"proceeds"`
	NewBalance float64 `json:"newBalance"`
}
