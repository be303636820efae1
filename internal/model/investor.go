package model

import "time"

// Investor type values.
const (
	InvestorTypeIndividual     = "individual"
	InvestorTypeVentureCapital = "venture_capital"
	InvestorTypeAngel          = "angel"
	InvestorTypeInstitutional  = "institutional"
	InvestorTypeOther          = "other"
)

// Investor represents a notable investor profiled by the application.
type Investor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	InvestorType string    `json:"investorType"`
	Description  string    `json:"description,omitempty"`
	Website      string    `json:"website,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
