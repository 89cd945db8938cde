package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestChartService_ProjectionPNG(t *testing.T) {
	ctx := context.Background()

	t.Run("renders a PNG", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChartService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewInvestment(user.ID).Build(t, db)

		img, err := svc.ProjectionPNG(ctx, user.ID, request.ProjectionParams{Horizon: valuation.HorizonOneYear, Step: 30})
		if err != nil {
			t.Fatalf("ProjectionPNG() returned unexpected error: %v", err)
		}
		if !bytes.HasPrefix(img, pngSignature) {
			t.Errorf("Expected PNG signature, got %q", img[:min(len(img), 8)])
		}
	})

	t.Run("a single point cannot be drawn", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChartService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewInvestment(user.ID).Build(t, db)

		_, err := svc.ProjectionPNG(ctx, user.ID, request.ProjectionParams{Horizon: valuation.HorizonOneMonth, Step: 60})
		if !errors.Is(err, service.ErrNoChartData) {
			t.Errorf("Expected ErrNoChartData, got %v", err)
		}
	})
}

func TestChartService_DistributionPNG(t *testing.T) {
	ctx := context.Background()

	t.Run("renders a PNG", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChartService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewInvestment(user.ID).WithType("CDB").Build(t, db)
		testutil.NewInvestment(user.ID).WithType("LCA").Build(t, db)

		img, err := svc.DistributionPNG(ctx, user.ID)
		if err != nil {
			t.Fatalf("DistributionPNG() returned unexpected error: %v", err)
		}
		if !bytes.HasPrefix(img, pngSignature) {
			t.Error("Expected PNG signature")
		}
	})

	t.Run("no investments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChartService(t, db)
		user := testutil.CreateUser(t, db)

		if _, err := svc.DistributionPNG(ctx, user.ID); !errors.Is(err, service.ErrNoChartData) {
			t.Errorf("Expected ErrNoChartData, got %v", err)
		}
	})
}
