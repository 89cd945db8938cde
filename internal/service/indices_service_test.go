package service_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

var errUpstream = errors.New("connection refused")

// TestIndicesService_GetSeries tests series retrieval through the cache.
//
// WHY: The central bank API is slow and rate limited. Daily series need two
// windowed requests, and a cached series must not hit the API again until it
// expires.
func TestIndicesService_GetSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once and serves from cache", func(t *testing.T) {
		// Setup
		mock := testutil.NewMockBCBClient()
		svc := testutil.NewTestIndicesService(t, mock)

		// Execute
		first, err := svc.GetSeries(ctx, "cdi")
		if err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}
		second, err := svc.GetSeries(ctx, "CDI")
		if err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}

		// Assert
		if first.Index != "cdi" || len(first.Data) != 3 {
			t.Errorf("Unexpected series %+v", first)
		}
		if len(second.Data) != len(first.Data) {
			t.Errorf("Expected cached series, got %d points", len(second.Data))
		}
		if mock.Calls() != 2 {
			t.Errorf("Expected 2 API calls for one daily series, got %d", mock.Calls())
		}
	})

	t.Run("monthly series needs a single call", func(t *testing.T) {
		mock := testutil.NewMockBCBClient()
		svc := testutil.NewTestIndicesService(t, mock)

		if _, err := svc.GetSeries(ctx, "ipca"); err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}
		if mock.Calls() != 1 {
			t.Errorf("Expected 1 API call, got %d", mock.Calls())
		}
	})

	t.Run("unknown index is rejected before any call", func(t *testing.T) {
		mock := testutil.NewMockBCBClient()
		svc := testutil.NewTestIndicesService(t, mock)

		_, err := svc.GetSeries(ctx, "bitcoin")
		if !errors.Is(err, apperrors.ErrUnknownIndex) {
			t.Errorf("Expected ErrUnknownIndex, got %v", err)
		}
		if mock.Calls() != 0 {
			t.Errorf("Expected no API calls, got %d", mock.Calls())
		}
	})

	t.Run("upstream failure is remembered until the backoff passes", func(t *testing.T) {
		now := testutil.FixedNow
		mock := testutil.NewMockBCBClient().WithError(errUpstream)
		svc := testutil.NewTestIndicesService(t, mock).WithClock(func() time.Time { return now })

		if _, err := svc.GetSeries(ctx, "selic"); !errors.Is(err, errUpstream) {
			t.Fatalf("Expected upstream error, got %v", err)
		}
		calls := mock.Calls()

		mock.WithError(nil)
		if _, err := svc.GetSeries(ctx, "selic"); !errors.Is(err, errUpstream) {
			t.Errorf("Expected remembered error during backoff, got %v", err)
		}
		if mock.Calls() != calls {
			t.Errorf("Expected no API calls during backoff, got %d more", mock.Calls()-calls)
		}

		now = now.Add(service.FailureBackoff)
		series, err := svc.GetSeries(ctx, "selic")
		if err != nil {
			t.Fatalf("GetSeries() returned unexpected error after backoff: %v", err)
		}
		if len(series.Data) != 3 {
			t.Errorf("Expected 3 points, got %d", len(series.Data))
		}
	})
}

func TestIndicesService_GetYearly(t *testing.T) {
	svc := testutil.NewTestIndicesService(t, testutil.NewMockBCBClient())

	years, err := svc.GetYearly(context.Background(), "ipca")
	if err != nil {
		t.Fatalf("GetYearly() returned unexpected error: %v", err)
	}
	if len(years) != 1 {
		t.Fatalf("Expected 1 year, got %d", len(years))
	}
	// Three months of 0.40% compound to 1.2048%.
	if years[0].Year != "2024" || years[0].Percent != 1.2 {
		t.Errorf("Expected 2024 at 1.2%%, got %+v", years[0])
	}
}

func TestIndicesService_GetOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("every index with its annualized level", func(t *testing.T) {
		svc := testutil.NewTestIndicesService(t, testutil.NewMockBCBClient())

		overview, err := svc.GetOverview(ctx)
		if err != nil {
			t.Fatalf("GetOverview() returned unexpected error: %v", err)
		}

		want := []string{"cdi", "igpm", "ipca", "selic"}
		if len(overview) != len(want) {
			t.Fatalf("Expected %d indices, got %d", len(want), len(overview))
		}
		for i, name := range want {
			if overview[i].Index != name {
				t.Errorf("Position %d: expected %s, got %s", i, name, overview[i].Index)
			}
			if overview[i].LastDate != "04/01/2024" {
				t.Errorf("%s: expected last date 04/01/2024, got %s", name, overview[i].LastDate)
			}
		}

		ipca := overview[2]
		if ipca.LastValue != 0.4 || ipca.Periodicity != "monthly" {
			t.Errorf("Unexpected ipca overview %+v", ipca)
		}
		if ipca.Display != "4.91% a.a." {
			t.Errorf("Expected display 4.91%% a.a., got %s", ipca.Display)
		}
	})

	t.Run("empty series shows a placeholder", func(t *testing.T) {
		mock := testutil.NewMockBCBClient().WithResponse(189, nil)
		svc := testutil.NewTestIndicesService(t, mock)

		overview, err := svc.GetOverview(ctx)
		if err != nil {
			t.Fatalf("GetOverview() returned unexpected error: %v", err)
		}
		igpm := overview[1]
		if igpm.Index != "igpm" || igpm.LastDate != "" || igpm.Display != "—" {
			t.Errorf("Unexpected igpm overview %+v", igpm)
		}
	})

	t.Run("any failure fails the overview", func(t *testing.T) {
		svc := testutil.NewTestIndicesService(t, testutil.NewMockBCBClient().WithError(errUpstream))

		if _, err := svc.GetOverview(ctx); !errors.Is(err, errUpstream) {
			t.Errorf("Expected upstream error, got %v", err)
		}
	})
}

func TestIndicesService_LatestRates(t *testing.T) {
	ctx := context.Background()

	t.Run("annualizes the last observation", func(t *testing.T) {
		svc := testutil.NewTestIndicesService(t, testutil.NewMockBCBClient())

		rates := svc.LatestRates(ctx)

		// 0.04% per business day, 0.05% per business day and 0.40% per month.
		checks := map[string][2]float64{
			"cdi":   {rates.CDI, 10.60},
			"selic": {rates.SELIC, 13.42},
			"ipca":  {rates.IPCA, 4.91},
		}
		for name, c := range checks {
			if math.Abs(c[0]-c[1]) > 0.01 {
				t.Errorf("%s: expected about %.2f, got %.4f", name, c[1], c[0])
			}
		}
	})

	t.Run("falls back when the API fails", func(t *testing.T) {
		svc := testutil.NewTestIndicesService(t, testutil.NewMockBCBClient().WithError(errUpstream))

		if rates := svc.LatestRates(ctx); rates != service.FallbackIndexRates {
			t.Errorf("Expected fallback rates %+v, got %+v", service.FallbackIndexRates, rates)
		}
	})

	t.Run("concurrent cold callers share one fetch per index", func(t *testing.T) {
		mock := testutil.NewMockBCBClient()
		svc := testutil.NewTestIndicesService(t, mock)

		results := make([]valuation.IndexRates, 20)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = svc.LatestRates(ctx)
			}()
		}
		wg.Wait()

		// CDI and SELIC take two windows each, IPCA one.
		if mock.Calls() != 5 {
			t.Errorf("Expected 5 API calls, got %d", mock.Calls())
		}
		for i, r := range results {
			if r != results[0] {
				t.Errorf("Caller %d got %+v, expected %+v", i, r, results[0])
			}
		}
	})

	t.Run("an outage is not retried on every call", func(t *testing.T) {
		mock := testutil.NewMockBCBClient().WithError(errUpstream)
		svc := testutil.NewTestIndicesService(t, mock)

		svc.LatestRates(ctx)
		calls := mock.Calls()
		for range 4 {
			if rates := svc.LatestRates(ctx); rates != service.FallbackIndexRates {
				t.Errorf("Expected fallback rates, got %+v", rates)
			}
		}
		if mock.Calls() != calls {
			t.Errorf("Expected %d API calls, got %d", calls, mock.Calls())
		}
	})

	t.Run("empty series keeps the fallback for that index", func(t *testing.T) {
		mock := testutil.NewMockBCBClient().WithResponse(433, nil)
		svc := testutil.NewTestIndicesService(t, mock)

		rates := svc.LatestRates(ctx)
		if rates.IPCA != service.FallbackIndexRates.IPCA {
			t.Errorf("Expected fallback IPCA %v, got %v", service.FallbackIndexRates.IPCA, rates.IPCA)
		}
		if rates.CDI == service.FallbackIndexRates.CDI {
			t.Error("Expected CDI from the API")
		}
	})
}

func TestIndicesService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("warms the cache for every index", func(t *testing.T) {
		mock := testutil.NewMockBCBClient()
		svc := testutil.NewTestIndicesService(t, mock)

		if err := svc.Refresh(ctx); err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}
		// Two daily series with two windows each, two monthly series with one.
		if mock.Calls() != 6 {
			t.Errorf("Expected 6 API calls, got %d", mock.Calls())
		}

		if _, err := svc.GetOverview(ctx); err != nil {
			t.Fatalf("GetOverview() returned unexpected error: %v", err)
		}
		if mock.Calls() != 6 {
			t.Errorf("Expected overview from cache, got %d calls", mock.Calls())
		}
	})

	t.Run("failure keeps the previous entries", func(t *testing.T) {
		mock := testutil.NewMockBCBClient()
		svc := testutil.NewTestIndicesService(t, mock)
		if _, err := svc.GetSeries(ctx, "cdi"); err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}

		mock.WithError(errUpstream)
		if err := svc.Refresh(ctx); !errors.Is(err, errUpstream) {
			t.Errorf("Expected upstream error, got %v", err)
		}

		series, err := svc.GetSeries(ctx, "cdi")
		if err != nil {
			t.Fatalf("Expected cached series after failed refresh, got %v", err)
		}
		if len(series.Data) != 3 {
			t.Errorf("Expected 3 cached points, got %d", len(series.Data))
		}
	})
}
