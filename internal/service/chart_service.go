package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no data to chart")

// ChartService renders investment views as PNG images.
type ChartService struct {
	investmentService *InvestmentService
}

// NewChartService creates a new ChartService on top of the investment views.
func NewChartService(investmentService *InvestmentService) *ChartService {
	return &ChartService{investmentService: investmentService}
}

// xAxisSplit picks how many labels to show for a series of n points.
func xAxisSplit(n int) int {
	switch {
	case n <= 8:
		return max(n-1, 1)
	case n <= 60:
		return 6
	default:
		return 10
	}
}

// ProjectionPNG renders the projected total value as a line chart.
func (s *ChartService) ProjectionPNG(ctx context.Context, userID string, params request.ProjectionParams) ([]byte, error) {
	projection, err := s.investmentService.GetProjection(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	if len(projection.Points) < 2 {
		return nil, ErrNoChartData
	}

	labels := make([]string, len(projection.Points))
	values := make([]float64, len(projection.Points))
	yMin, yMax := projection.Points[0].Value, projection.Points[0].Value
	for i, p := range projection.Points {
		labels[i] = p.Date
		values[i] = p.Value
		yMin = min(yMin, p.Value)
		yMax = max(yMax, p.Value)
	}
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin = max(yMin-pad, 0)
	yMax += pad
	if yMax <= yMin {
		yMax = yMin + 1
	}

	title := fmt.Sprintf("Projection • %s", projection.Period)
	subtitle := fmt.Sprintf("%s → %s", s.investmentService.Formatter().Currency(values[0]),
		s.investmentService.Formatter().Currency(values[len(values)-1]))

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: xAxisSplit(len(labels))}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render projection chart: %w", err)
	}
	return painter.Bytes()
}

// DistributionPNG renders the invested amount per category as a pie chart.
func (s *ChartService) DistributionPNG(ctx context.Context, userID string) ([]byte, error) {
	dist, err := s.investmentService.GetDistribution(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	if len(dist.Categories) == 0 || dist.Total <= 0 {
		return nil, ErrNoChartData
	}

	values := make([]float64, len(dist.Categories))
	labels := make([]string, len(dist.Categories))
	for i, c := range dist.Categories {
		values[i] = c.Amount
		labels[i] = c.Category
	}

	painter, err := charts.PieRender(values,
		charts.TitleTextOptionFunc("Distribution", s.investmentService.Formatter().Currency(dist.Total)),
		charts.LegendLabelsOptionFunc(labels, charts.PositionRight),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render distribution chart: %w", err)
	}
	return painter.Bytes()
}
