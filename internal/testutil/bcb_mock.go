package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/bcb"
)

// MockBCBClient is a mock implementation of bcb.Client for testing.
// It returns predefined observations per series code instead of calling the API.
type MockBCBClient struct {
	mu sync.Mutex
	// Responses maps a series code to the observations returned for every window
	Responses map[int][]bcb.Observation
	// MockError is the error to return from QuerySeries
	MockError error
	// QueryCount tracks how many times QuerySeries was called
	QueryCount int
}

// NewMockBCBClient creates a new mock client with a few observations for every series.
func NewMockBCBClient() *MockBCBClient {
	return &MockBCBClient{
		Responses: map[int][]bcb.Observation{
			11:  CreateMockObservations("0.05", 3),
			12:  CreateMockObservations("0.04", 3),
			433: CreateMockObservations("0.40", 3),
			189: CreateMockObservations("0.30", 3),
		},
	}
}

// QuerySeries returns the configured observations for code that fall between
// start and end, and records the call.
func (m *MockBCBClient) QuerySeries(_ context.Context, code int, start, end time.Time) ([]bcb.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	if m.MockError != nil {
		return nil, m.MockError
	}

	out := []bcb.Observation{}
	for _, o := range m.Responses[code] {
		t, err := o.Time()
		if err != nil || t.Before(start) || t.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// Calls returns the number of QuerySeries calls so far.
func (m *MockBCBClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// WithError configures the mock to return the specified error.
func (m *MockBCBClient) WithError(err error) *MockBCBClient {
	m.mu.Lock()
	m.MockError = err
	m.mu.Unlock()
	return m
}

// WithResponse configures the observations returned for a series code.
func (m *MockBCBClient) WithResponse(code int, obs []bcb.Observation) *MockBCBClient {
	m.mu.Lock()
	m.Responses[code] = obs
	m.mu.Unlock()
	return m
}

// CreateMockObservations creates `days` consecutive observations in January 2024,
// all with the given value.
func CreateMockObservations(value string, days int) []bcb.Observation {
	obs := make([]bcb.Observation, days)
	for i := range obs {
		obs[i] = bcb.Observation{
			Date:  fmt.Sprintf("%02d/01/2024", i+2),
			Value: value,
		}
	}
	return obs
}
