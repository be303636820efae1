// Package ipoalerts implements the client for the IPOAlerts.in feed, the
// third-party source of currently-open IPO listings.
package ipoalerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is the display name reported by the sync status endpoint.
const Provider = "IPOAlerts.in"

// Client fetches IPO listings from the IPOAlerts API using a bearer API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a feed client. The API key is sent as a bearer token on
// every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithAPIKey returns a copy of the client using a different key. Used when
// an admin-stored key overrides the environment fallback.
func (c *Client) WithAPIKey(apiKey string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		apiKey:     apiKey,
		httpClient: c.httpClient,
	}
}

// FetchOpenIPOs retrieves the feed of currently-open IPOs.
func (c *Client) FetchOpenIPOs(ctx context.Context) ([]IPO, error) {
	url := fmt.Sprintf("%s/ipos?status=open", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("invalid or missing API key for %s", Provider)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}
	if !response.Success {
		return nil, fmt.Errorf("feed error: %s", response.Error)
	}

	return response.Data, nil
}

// MockIPOs returns the fixed development fixture set used when the feed is
// unreachable outside production.
func MockIPOs(now time.Time) []IPO {
	day := 24 * time.Hour
	return []IPO{
		{
			CompanyNameSnake:    "TechInnovate Solutions Ltd",
			Symbol:              "TECHINO",
			IPODateSnake:        now.Add(7 * day).Format(time.RFC3339),
			PriceRangeLowSnake:  450,
			PriceRangeHighSnake: 500,
			SharesOfferedSnake:  35000000,
			Status:              "upcoming",
			Description:         "TechInnovate Solutions is a leading provider of AI-driven enterprise solutions.",
		},
		{
			CompanyNameSnake:    "GreenEnergy Power Corp",
			Symbol:              "GREENPWR",
			IPODateSnake:        now.Add(3 * day).Format(time.RFC3339),
			PriceRangeLowSnake:  300,
			PriceRangeHighSnake: 350,
			SharesOfferedSnake:  25000000,
			Status:              "upcoming",
			Description:         "GreenEnergy Power specializes in renewable energy solutions and sustainable power generation.",
		},
		{
			CompanyNameSnake:    "HealthPlus Pharmaceuticals",
			Symbol:              "HLTHPLUS",
			IPODateSnake:        now.Add(1 * day).Format(time.RFC3339),
			PriceRangeLowSnake:  600,
			PriceRangeHighSnake: 650,
			SharesOfferedSnake:  15000000,
			Status:              "open",
			Description:         "HealthPlus develops innovative pharmaceutical products and healthcare solutions.",
		},
		{
			CompanyNameSnake:    "FinSecure Banking Ltd",
			Symbol:              "FINSEC",
			IPODateSnake:        now.Add(-5 * day).Format(time.RFC3339),
			PriceRangeLowSnake:  250,
			PriceRangeHighSnake: 275,
			SharesOfferedSnake:  40000000,
			Status:              "listed",
			Description:         "FinSecure provides secure digital banking and financial technology services.",
		},
	}
}
