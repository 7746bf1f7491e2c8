package seatcounter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPFetcher reads the capacity snapshot from the availability
// endpoint (GET /v1/conference/reserve).
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher for the given availability URL.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// availabilityEnvelope matches the endpoint's response wrapper.
type availabilityEnvelope struct {
	Success bool     `json:"success"`
	Data    Snapshot `json:"data"`
	Error   string   `json:"error"`
}

// Availability fetches and decodes the current snapshot.
func (f *HTTPFetcher) Availability(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return Snapshot{}, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("availability request failed: %s", resp.Status)
	}
	var env availabilityEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Snapshot{}, err
	}
	if !env.Success {
		return Snapshot{}, fmt.Errorf("availability request rejected: %s", env.Error)
	}
	return env.Data, nil
}
