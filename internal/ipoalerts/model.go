package ipoalerts

import (
	"strings"
	"time"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// Response represents the raw JSON envelope returned by the IPOAlerts API.
type Response struct {
	Success bool   `json:"success"`
	Data    []IPO  `json:"data"`
	Error   string `json:"error,omitempty"`
}

// IPO is one record from the feed. The provider has shipped both snake_case
// and camelCase field names over time, so both spellings are accepted and
// merged during mapping.
type IPO struct {
	CompanyNameSnake    string  `json:"company_name"`
	CompanyNameCamel    string  `json:"companyName"`
	Symbol              string  `json:"symbol"`
	IPODateSnake        string  `json:"ipo_date"`
	IPODateCamel        string  `json:"ipoDate"`
	PriceRangeLowSnake  float64 `json:"price_range_low"`
	PriceRangeLowCamel  float64 `json:"priceRangeLow"`
	PriceRangeHighSnake float64 `json:"price_range_high"`
	PriceRangeHighCamel float64 `json:"priceRangeHigh"`
	SharesOfferedSnake  int64   `json:"shares_offered"`
	SharesOfferedCamel  int64   `json:"sharesOffered"`
	Status              string  `json:"status"`
	Description         string  `json:"description"`
}

// statusMap translates the provider's status vocabulary into the local enum.
// Unknown or missing statuses default to "upcoming".
var statusMap = map[string]string{
	"upcoming": model.IPOStatusUpcoming,
	"open":     model.IPOStatusOpen,
	"active":   model.IPOStatusOpen,
	"closed":   model.IPOStatusPast,
	"listed":   model.IPOStatusPast,
}

// MapStatus normalizes a provider status value.
func MapStatus(external string) string {
	if mapped, ok := statusMap[strings.ToLower(external)]; ok {
		return mapped
	}
	return model.IPOStatusUpcoming
}

// MapToLocal converts a feed record into the local schema. Missing numeric
// fields default to zero; the symbol is uppercased to satisfy the symbol
// uniqueness rule.
func (e IPO) MapToLocal() (model.IPO, error) {
	date, err := parseFeedDate(firstNonEmpty(e.IPODateSnake, e.IPODateCamel))
	if err != nil {
		return model.IPO{}, err
	}

	return model.IPO{
		CompanyName:    firstNonEmpty(e.CompanyNameSnake, e.CompanyNameCamel),
		Symbol:         strings.ToUpper(strings.TrimSpace(e.Symbol)),
		Description:    e.Description,
		IPODate:        date,
		PriceRangeLow:  firstNonZero(e.PriceRangeLowSnake, e.PriceRangeLowCamel),
		PriceRangeHigh: firstNonZero(e.PriceRangeHighSnake, e.PriceRangeHighCamel),
		SharesOffered:  firstNonZeroInt(e.SharesOfferedSnake, e.SharesOfferedCamel),
		Status:         MapStatus(e.Status),
	}, nil
}

func parseFeedDate(str string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}

func firstNonZeroInt(a, b int64) int64 {
	if a != 0 {
		return a
	}
	return b
}
