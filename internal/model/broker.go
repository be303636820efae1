package model

import "time"

// Broker represents a stock broker listed for IPO applications.
// Name is unique. Features is stored as a JSON array in the database.
type Broker struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website,omitempty"`
	Fees        string    `json:"fees,omitempty"`
	Rating      float64   `json:"rating"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
}
