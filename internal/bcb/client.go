// Package bcb fetches economic index series from the Banco Central do Brasil
// SGS open data API.
package bcb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public SGS endpoint.
const DefaultBaseURL = "https://api.bcb.gov.br/dados/serie"

// Client fetches observations of one series within a date range.
type Client interface {
	QuerySeries(ctx context.Context, code int, start, end time.Time) ([]Observation, error)
}

// SGSClient queries the SGS HTTP API.
type SGSClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSGSClient creates a client for baseURL, or DefaultBaseURL when empty.
func NewSGSClient(baseURL string) *SGSClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &SGSClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// QuerySeries returns the observations of series code between start and end, inclusive.
func (c *SGSClient) QuerySeries(ctx context.Context, code int, start, end time.Time) ([]Observation, error) {
	url := fmt.Sprintf(
		"%s/bcdata.sgs.%d/dados?formato=json&dataInicial=%s&dataFinal=%s",
		c.baseURL,
		code,
		start.Format(DateLayout),
		end.Format(DateLayout),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bcb error: %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var observations []Observation
	if err := json.Unmarshal(data, &observations); err != nil {
		return nil, fmt.Errorf("failed to decode series %d: %w", code, err)
	}
	return observations, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
