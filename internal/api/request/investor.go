package request

// CreateInvestorRequest is the body for POST /api/investors.
type CreateInvestorRequest struct {
	Name         string `json:"name"`
	InvestorType string `json:"investorType,omitempty"`
	Description  string `json:"description,omitempty"`
	Website      string `json:"website,omitempty"`
}

// UpdateInvestorRequest is the body for PUT /api/investors/{id}. Nil fields
// are left unchanged.
type UpdateInvestorRequest struct {
	Name         *string `json:"name,omitempty"`
	InvestorType *string `json:"investorType,omitempty"`
	Description  *string `json:"description,omitempty"`
	Website      *string `json:"website,omitempty"`
}
