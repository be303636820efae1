package request

// CreateIPORequest is the body for POST /api/ipos. IpoDate accepts
// "2006-01-02" or RFC3339.
type CreateIPORequest struct {
	CompanyName    string  `json:"companyName"`
	Symbol         string  `json:"symbol"`
	Description    string  `json:"description"`
	IpoDate        string  `json:"ipoDate"`
	PriceRangeLow  float64 `json:"priceRangeLow"`
	PriceRangeHigh float64 `json:"priceRangeHigh"`
	SharesOffered  int64   `json:"sharesOffered"`
	Status         string  `json:"status,omitempty"`
}

// UpdateIPORequest is the body for PUT /api/ipos/{id}. Nil fields are left
// unchanged.
type UpdateIPORequest struct {
	CompanyName    *string  `json:"companyName,omitempty"`
	Symbol         *string  `json:"symbol,omitempty"`
	Description    *string  `json:"description,omitempty"`
	IpoDate        *string  `json:"ipoDate,omitempty"`
	PriceRangeLow  *float64 `json:"priceRangeLow,omitempty"`
	PriceRangeHigh *float64 `json:"priceRangeHigh,omitempty"`
	SharesOffered  *int64   `json:"sharesOffered,omitempty"`
	Status         *string  `json:"status,omitempty"`
}
