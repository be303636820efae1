package request

// TradeRequest is the body for the buy and sell portfolio endpoints.
type TradeRequest struct {
	Shares int64 `json:"shares"`
}

// UpdateSyncConfigRequest is the body for PUT /api/ipos/sync/config.
type UpdateSyncConfigRequest struct {
	APIKey   string `json:"apiKey,omitempty"`
	AutoSync *bool  `json:"autoSync,omitempty"`
}
