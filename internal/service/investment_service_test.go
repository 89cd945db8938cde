package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

var testRates = valuation.IndexRates{CDI: 10, SELIC: 11, IPCA: 4}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// TestInvestmentService_ListInvestments tests listing with estimated values.
//
// WHY: The list is the main table of the dashboard. Every row must carry its
// value at the reference date, and paging metadata must describe all matching
// rows, not just the current page.
func TestInvestmentService_ListInvestments(t *testing.T) {
	ctx := context.Background()

	t.Run("rows carry estimated value and display strings", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		testutil.NewInvestment(user.ID).Build(t, db)

		// Execute
		page, err := svc.ListInvestments(ctx, model.InvestmentFilter{UserID: user.ID})

		// Assert
		if err != nil {
			t.Fatalf("ListInvestments() returned unexpected error: %v", err)
		}
		if len(page.Investments) != 1 {
			t.Fatalf("Expected 1 investment, got %d", len(page.Investments))
		}
		row := page.Investments[0]
		if row.EstimatedValue != 1100.29 {
			t.Errorf("Expected estimated value 1100.29, got %v", row.EstimatedValue)
		}
		if row.Display.EstimatedValue != "$1,100.29" || row.Display.YieldRate != "+10.00%" {
			t.Errorf("Unexpected display %+v", row.Display)
		}
		if page.Total != 1 || page.Page != 1 || page.TotalPages != 1 {
			t.Errorf("Unexpected paging %+v", page)
		}
	})

	t.Run("paging metadata", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		for i := 1; i <= 5; i++ {
			testutil.NewInvestment(user.ID).WithDate(day(2024, 1, i)).Build(t, db)
		}

		// Execute
		page, err := svc.ListInvestments(ctx, model.InvestmentFilter{UserID: user.ID, Page: 2, PerPage: 2})

		// Assert
		if err != nil {
			t.Fatalf("ListInvestments() returned unexpected error: %v", err)
		}
		if len(page.Investments) != 2 || page.Total != 5 || page.Page != 2 || page.PerPage != 2 || page.TotalPages != 3 {
			t.Errorf("Unexpected page %d rows, %+v", len(page.Investments), page)
		}
	})
}

func TestInvestmentService_CreateInvestment(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestInvestmentService(t, db, testRates)
	user := testutil.CreateUser(t, db)

	row, err := svc.CreateInvestment(ctx, user.ID, request.CreateInvestmentRequest{
		Name:         " CDB Banco X ",
		Type:         "CDB",
		Amount:       1000,
		YieldRate:    10,
		Date:         "2024-01-01",
		MaturityDate: ptr("2026-01-01"),
	})
	if err != nil {
		t.Fatalf("CreateInvestment() returned unexpected error: %v", err)
	}

	if row.ID == "" || row.Name != "CDB Banco X" {
		t.Errorf("Unexpected row %+v", row)
	}
	if row.EstimatedValue != 1100.29 {
		t.Errorf("Expected estimated value 1100.29, got %v", row.EstimatedValue)
	}
	if row.MaturityDate == nil || *row.MaturityDate != "2026-01-01" {
		t.Errorf("Expected maturity 2026-01-01, got %v", row.MaturityDate)
	}

	stored, err := svc.GetInvestment(ctx, user.ID, row.ID)
	if err != nil {
		t.Fatalf("GetInvestment() returned unexpected error: %v", err)
	}
	if stored.Date != "2024-01-01" || stored.Amount != 1000 {
		t.Errorf("Unexpected stored investment %+v", stored)
	}
}

func TestInvestmentService_UpdateInvestment(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only present fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		inv := testutil.NewInvestment(user.ID).WithName("Original").Build(t, db)

		amount := valuation.Number(2000)
		rate := valuation.Number(12)
		row, err := svc.UpdateInvestment(ctx, user.ID, inv.ID, request.UpdateInvestmentRequest{
			Amount:    &amount,
			YieldRate: &rate,
		})
		if err != nil {
			t.Fatalf("UpdateInvestment() returned unexpected error: %v", err)
		}
		if row.Name != "Original" || row.Amount != 2000 || row.YieldRate != 12 {
			t.Errorf("Unexpected row %+v", row)
		}
		if row.EstimatedValue != 2240.7 {
			t.Errorf("Expected estimated value 2240.70, got %v", row.EstimatedValue)
		}
	})

	t.Run("empty maturity clears it", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		inv := testutil.NewInvestment(user.ID).WithMaturity(day(2026, 1, 1)).Build(t, db)

		row, err := svc.UpdateInvestment(ctx, user.ID, inv.ID, request.UpdateInvestmentRequest{MaturityDate: ptr("")})
		if err != nil {
			t.Fatalf("UpdateInvestment() returned unexpected error: %v", err)
		}
		if row.MaturityDate != nil {
			t.Errorf("Expected maturity cleared, got %v", *row.MaturityDate)
		}
	})

	t.Run("moving the date past the stored maturity is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		inv := testutil.NewInvestment(user.ID).WithMaturity(day(2024, 6, 1)).Build(t, db)

		_, err := svc.UpdateInvestment(ctx, user.ID, inv.ID, request.UpdateInvestmentRequest{Date: ptr("2024-07-01")})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected *validation.Error, got %v", err)
		}
		if _, ok := verr.Fields["maturity_date"]; !ok {
			t.Errorf("Expected maturity_date error, got %v", verr.Fields)
		}
	})

	t.Run("another user's investment is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		owner := testutil.CreateUser(t, db)
		intruder := testutil.CreateUser(t, db)
		inv := testutil.NewInvestment(owner.ID).Build(t, db)

		_, err := svc.UpdateInvestment(ctx, intruder.ID, inv.ID, request.UpdateInvestmentRequest{Name: ptr("mine")})
		if !errors.Is(err, apperrors.ErrInvestmentNotFound) {
			t.Errorf("Expected ErrInvestmentNotFound, got %v", err)
		}
	})
}

// TestInvestmentService_GetSummary tests the dashboard totals.
//
// WHY: The summary card is computed from every investment the user owns. An
// empty portfolio must report zero yield instead of dividing by zero.
func TestInvestmentService_GetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("empty portfolio", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)

		// Execute
		sum, err := svc.GetSummary(ctx, user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}
		if sum.Count != 0 || sum.TotalInvested != 0 || sum.TotalCurrent != 0 || sum.YieldPct != 0 {
			t.Errorf("Expected zero summary, got %+v", sum)
		}
		if sum.Display.YieldPct != "+0.00%" {
			t.Errorf("Expected +0.00%%, got %s", sum.Display.YieldPct)
		}
	})

	t.Run("totals across investments", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		testutil.NewInvestment(user.ID).Build(t, db)
		// Starts on the reference date, so it has not grown yet.
		testutil.NewInvestment(user.ID).WithAmount(500).WithDate(day(2025, 1, 1)).Build(t, db)

		// Execute
		sum, err := svc.GetSummary(ctx, user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}
		if sum.Count != 2 || sum.TotalInvested != 1500 || sum.TotalCurrent != 1600.29 || sum.ProfitLoss != 100.29 {
			t.Errorf("Unexpected summary %+v", sum.Summary)
		}
		if sum.YieldPct != 6.69 {
			t.Errorf("Expected yield 6.69, got %v", sum.YieldPct)
		}
		if sum.AsOf != "2025-01-01" || sum.Currency != "USD" {
			t.Errorf("Unexpected asOf/currency %s/%s", sum.AsOf, sum.Currency)
		}
		if sum.Display.ProfitLoss != "+ $100.29" {
			t.Errorf("Expected + $100.29, got %s", sum.Display.ProfitLoss)
		}
	})
}

func TestInvestmentService_GetProjection(t *testing.T) {
	ctx := context.Background()

	t.Run("daily points over one month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)
		testutil.NewInvestment(user.ID).Build(t, db)

		projection, err := svc.GetProjection(ctx, user.ID, request.ProjectionParams{Horizon: valuation.HorizonOneMonth, Step: 1})
		if err != nil {
			t.Fatalf("GetProjection() returned unexpected error: %v", err)
		}

		if projection.Start != "2025-01-01" || projection.End != "2025-02-01" {
			t.Errorf("Unexpected window %s..%s", projection.Start, projection.End)
		}
		if len(projection.Points) != 32 {
			t.Fatalf("Expected 32 points, got %d", len(projection.Points))
		}
		if projection.Points[0].Value != 1100.29 {
			t.Errorf("Expected first value 1100.29, got %v", projection.Points[0].Value)
		}
		for i := 1; i < len(projection.Points); i++ {
			if projection.Points[i].Value < projection.Points[i-1].Value {
				t.Errorf("Value decreased at %s", projection.Points[i].Date)
			}
		}
	})

	t.Run("step thins the series and keeps the end date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db, testRates)
		user := testutil.CreateUser(t, db)

		projection, err := svc.GetProjection(ctx, user.ID, request.ProjectionParams{Horizon: valuation.HorizonOneMonth, Step: 10})
		if err != nil {
			t.Fatalf("GetProjection() returned unexpected error: %v", err)
		}

		var dates []string
		for _, p := range projection.Points {
			dates = append(dates, p.Date)
			if p.Value != 0 {
				t.Errorf("Expected 0 for an empty portfolio, got %v", p.Value)
			}
		}
		if len(dates) == 0 || dates[0] != "2025-01-01" {
			t.Fatalf("Unexpected dates %v", dates)
		}
		if len(dates) > 5 {
			t.Errorf("Expected a thinned series, got %d points", len(dates))
		}
	})
}

func TestInvestmentService_GetDistribution(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestInvestmentService(t, db, testRates)
	user := testutil.CreateUser(t, db)
	testutil.NewInvestment(user.ID).WithType("LCI").WithAmount(700).Build(t, db)
	testutil.NewInvestment(user.ID).WithType("CDB").WithAmount(300).Build(t, db)

	t.Run("categories sorted by name", func(t *testing.T) {
		dist, err := svc.GetDistribution(ctx, user.ID, "")
		if err != nil {
			t.Fatalf("GetDistribution() returned unexpected error: %v", err)
		}
		if dist.Total != 1000 || len(dist.Categories) != 2 {
			t.Fatalf("Unexpected distribution %+v", dist)
		}
		if dist.Categories[0].Category != "CDB" || dist.Categories[0].Percent != 30 {
			t.Errorf("Unexpected first category %+v", dist.Categories[0])
		}
		if dist.Categories[1].Category != "LCI" || dist.Categories[1].Percent != 70 {
			t.Errorf("Unexpected second category %+v", dist.Categories[1])
		}
		if dist.Investments != nil {
			t.Errorf("Expected no investments without a category, got %d", len(dist.Investments))
		}
	})

	t.Run("selected category lists its investments", func(t *testing.T) {
		dist, err := svc.GetDistribution(ctx, user.ID, "LCI")
		if err != nil {
			t.Fatalf("GetDistribution() returned unexpected error: %v", err)
		}
		if dist.Category != "LCI" || len(dist.Investments) != 1 || dist.Investments[0].Amount != 700 {
			t.Errorf("Unexpected selection %+v", dist)
		}
	})
}

func TestInvestmentService_GetDistribution_PercentsAddUp(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestInvestmentService(t, db, testRates)
	user := testutil.CreateUser(t, db)
	for _, category := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		testutil.NewInvestment(user.ID).WithType(category).WithAmount(100).Build(t, db)
	}

	// Execute
	dist, err := svc.GetDistribution(context.Background(), user.ID, "")
	if err != nil {
		t.Fatalf("GetDistribution() returned unexpected error: %v", err)
	}

	// Assert
	var cents int
	for _, c := range dist.Categories {
		if c.Percent != 14.28 && c.Percent != 14.29 {
			t.Errorf("Expected 14.28 or 14.29 for %s, got %v", c.Category, c.Percent)
		}
		cents += int(math.Round(c.Percent * 100))
	}
	if cents != 10000 {
		t.Errorf("Expected percents to sum to 100.00, got %.2f", float64(cents)/100)
	}
}

func TestInvestmentService_Preview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestInvestmentService(t, db, testRates)

	tests := []struct {
		name      string
		params    request.PreviewParams
		effective float64
		estimated float64
	}{
		{"annual", request.PreviewParams{Amount: 1000, YieldRate: 12, Basis: valuation.BasisAnnual}, 12, 1120},
		{"percent of CDI", request.PreviewParams{Amount: 1000, YieldRate: 110, Basis: valuation.BasisCDI}, 11, 1110},
		{"IPCA plus spread", request.PreviewParams{Amount: 1000, YieldRate: 6, Basis: valuation.BasisIPCA}, 10, 1100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := svc.Preview(context.Background(), tc.params)
			if p.EffectiveRate != tc.effective || p.Estimated != tc.estimated {
				t.Errorf("Expected %v / %v, got %v / %v", tc.effective, tc.estimated, p.EffectiveRate, p.Estimated)
			}
			if p.Indices != testRates {
				t.Errorf("Expected indices %+v, got %+v", testRates, p.Indices)
			}
		})
	}
}

// TestInvestmentService_PreviewWithLiveIndices tests previews quoted against
// the central bank series instead of fixed rates.
//
// WHY: Previews call LatestRates on every request, so an API outage must fall
// back quickly and a healthy API must be hit once per index, not per preview.
func TestInvestmentService_PreviewWithLiveIndices(t *testing.T) {
	ctx := context.Background()
	newService := func(t *testing.T, mock *testutil.MockBCBClient) *service.InvestmentService {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return service.NewInvestmentService(
			repository.NewInvestmentRepository(db),
			testutil.NewTestIndicesService(t, mock),
			valuation.NewFormatter("USD"),
		).WithClock(func() time.Time { return testutil.FixedNow })
	}
	params := request.PreviewParams{Amount: 1000, YieldRate: 100, Basis: valuation.BasisCDI}

	t.Run("quotes against the latest CDI", func(t *testing.T) {
		// Setup
		mock := testutil.NewMockBCBClient()
		svc := newService(t, mock)

		// Execute
		first := svc.Preview(ctx, params)
		second := svc.Preview(ctx, params)

		// Assert
		if first.Indices == service.FallbackIndexRates {
			t.Fatal("Expected rates from the API, got the fallback")
		}
		if first.EffectiveRate != first.Indices.CDI {
			t.Errorf("Expected 100%% of CDI (%v), got %v", first.Indices.CDI, first.EffectiveRate)
		}
		if first != second {
			t.Errorf("Expected identical previews, got %+v and %+v", first, second)
		}
		if mock.Calls() != 5 {
			t.Errorf("Expected 5 API calls for both previews, got %d", mock.Calls())
		}
	})

	t.Run("falls back without retrying during an outage", func(t *testing.T) {
		// Setup
		mock := testutil.NewMockBCBClient().WithError(errUpstream)
		svc := newService(t, mock)

		// Execute
		p := svc.Preview(ctx, params)
		calls := mock.Calls()
		svc.Preview(ctx, params)

		// Assert
		if p.Indices != service.FallbackIndexRates {
			t.Errorf("Expected fallback rates, got %+v", p.Indices)
		}
		if p.EffectiveRate != service.FallbackIndexRates.CDI {
			t.Errorf("Expected %v, got %v", service.FallbackIndexRates.CDI, p.EffectiveRate)
		}
		if mock.Calls() != calls {
			t.Errorf("Expected no API calls on the second preview, got %d more", mock.Calls()-calls)
		}
	})
}
