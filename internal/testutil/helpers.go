package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/bcb"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/cache"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// FixedNow is the reference "today" used by service test helpers, at midnight
// UTC so valuations cover whole days.
var FixedNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// StaticRates is a RateSource returning fixed index levels.
type StaticRates valuation.IndexRates

// LatestRates implements service.RateSource.
func (r StaticRates) LatestRates(context.Context) valuation.IndexRates {
	return valuation.IndexRates(r)
}

// NewTestTokenManager creates a token manager with a fresh random key.
func NewTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()

	tokens, err := auth.NewTokenManager("", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}
	return tokens
}

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	return service.NewAuthService(
		repository.NewUserRepository(db),
		NewTestTokenManager(t),
		testBcryptCost,
	).WithClock(func() time.Time { return FixedNow })
}

// NewTestInvestmentService creates an InvestmentService valued at FixedNow,
// formatting in USD and quoting previews against rates.
func NewTestInvestmentService(t *testing.T, db *sql.DB, rates valuation.IndexRates) *service.InvestmentService {
	t.Helper()

	return service.NewInvestmentService(
		repository.NewInvestmentRepository(db),
		StaticRates(rates),
		valuation.NewFormatter("USD"),
	).WithClock(func() time.Time { return FixedNow })
}

func NewTestChartService(t *testing.T, db *sql.DB) *service.ChartService {
	t.Helper()

	return service.NewChartService(NewTestInvestmentService(t, db, service.FallbackIndexRates))
}

// NewTestIndicesService creates an IndicesService on client with a one hour cache.
func NewTestIndicesService(t *testing.T, client bcb.Client) *service.IndicesService {
	t.Helper()

	return service.NewIndicesService(client, cache.NewTTL[[]bcb.Observation](time.Hour)).
		WithClock(func() time.Time { return FixedNow })
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID returns a new random UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeEmail returns a unique, lower-case email address starting with base.
func MakeEmail(base string) string {
	return strings.ToLower(base) + "-" + uuid.New().String()[:8] + "@example.com"
}
