package request

// CreateBrokerRequest is the body for POST /api/brokers.
type CreateBrokerRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Website     string   `json:"website,omitempty"`
	Fees        string   `json:"fees,omitempty"`
	Rating      float64  `json:"rating"`
	Features    []string `json:"features,omitempty"`
}

// UpdateBrokerRequest is the body for PUT /api/brokers/{id}. Nil fields are
// left unchanged.
type UpdateBrokerRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Fees        *string   `json:"fees,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Features    *[]string `json:"features,omitempty"`
}
