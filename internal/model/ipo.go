package model

import "time"

// IPO status values. The external feed uses a wider vocabulary that is
// normalized into this set on sync.
const (
	IPOStatusUpcoming  = "upcoming"
	IPOStatusOpen      = "open"
	IPOStatusPast      = "past"
	IPOStatusCancelled = "cancelled"
)

// IPO represents an initial public offering tracked by the application.
// Symbol is unique and stored uppercased.
type IPO struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"companyName"`
	Symbol         string    `json:"symbol"`
	Description    string    `json:"description"`
	IPODate        time.Time `json:"ipoDate"`
	PriceRangeLow  float64   `json:"priceRangeLow"`
	PriceRangeHigh float64   `json:"priceRangeHigh"`
	SharesOffered  int64     `json:"sharesOffered"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PurchasePrice returns the per-share price used by the portfolio ledger:
// the high end of the price range, falling back to the low end. A zero
// return means the price has not been determined yet.
func (i IPO) PurchasePrice() float64 {
	if i.PriceRangeHigh > 0 {
		return i.PriceRangeHigh
	}
	return i.PriceRangeLow
}

// Purchasable reports whether shares of this IPO can currently be bought.
func (i IPO) Purchasable() bool {
	return i.Status == IPOStatusUpcoming || i.Status == IPOStatusOpen
}
