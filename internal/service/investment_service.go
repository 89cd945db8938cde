package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// RateSource provides the current annualized index levels.
type RateSource interface {
	LatestRates(ctx context.Context) valuation.IndexRates
}

// InvestmentService handles investment records and their valuation.
// All operations are scoped to a single user.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	rates          RateSource
	formatter      valuation.Formatter
	now            Clock
}

// NewInvestmentService creates a new InvestmentService with the provided dependencies.
func NewInvestmentService(
	investmentRepo *repository.InvestmentRepository,
	rates RateSource,
	formatter valuation.Formatter,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		rates:          rates,
		formatter:      formatter,
		now:            time.Now,
	}
}

// WithClock replaces the clock used as the valuation reference date.
func (s *InvestmentService) WithClock(now Clock) *InvestmentService {
	s.now = now
	return s
}

// Formatter returns the currency formatter used for display strings.
func (s *InvestmentService) Formatter() valuation.Formatter {
	return s.formatter
}

func (s *InvestmentService) row(inv model.Investment, ref time.Time) model.InvestmentRow {
	r := model.InvestmentRow{
		ID:             inv.ID,
		Name:           inv.Name,
		Type:           inv.Type,
		Amount:         inv.Amount,
		YieldRate:      inv.YieldRate,
		Date:           inv.Date.Format(valuation.DateLayout),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt.Format(time.RFC3339),
		EstimatedValue: round(valuation.ProjectedValue(inv.Valuation(), ref)),
	}
	if inv.MaturityDate != nil {
		m := inv.MaturityDate.Format(valuation.DateLayout)
		r.MaturityDate = &m
	}
	r.Display.Amount = s.formatter.Currency(r.Amount)
	r.Display.YieldRate = valuation.FormatPercent(r.YieldRate)
	r.Display.EstimatedValue = s.formatter.Currency(r.EstimatedValue)
	return r
}

func (s *InvestmentService) rows(investments []model.Investment, ref time.Time) []model.InvestmentRow {
	out := make([]model.InvestmentRow, len(investments))
	for i, inv := range investments {
		out[i] = s.row(inv, ref)
	}
	return out
}

func (s *InvestmentService) loadAll(ctx context.Context, userID string) ([]model.Investment, error) {
	investments, _, err := s.investmentRepo.ListInvestments(ctx, model.InvestmentFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}
	return investments, nil
}

// ListInvestments returns the user's investments, newest first, each with its
// estimated value today. Paging applies when filter.PerPage is set.
func (s *InvestmentService) ListInvestments(ctx context.Context, filter model.InvestmentFilter) (model.InvestmentPage, error) {
	investments, total, err := s.investmentRepo.ListInvestments(ctx, filter)
	if err != nil {
		return model.InvestmentPage{}, err
	}

	page := model.InvestmentPage{
		Investments: s.rows(investments, s.now()),
		Total:       total,
		Page:        1,
		PerPage:     total,
		TotalPages:  1,
	}
	if filter.PerPage > 0 {
		page.Page = max(filter.Page, 1)
		page.PerPage = filter.PerPage
		page.TotalPages = (total + filter.PerPage - 1) / filter.PerPage
	}
	return page, nil
}

// GetInvestment returns one of the user's investments.
func (s *InvestmentService) GetInvestment(ctx context.Context, userID, investmentID string) (model.InvestmentRow, error) {
	inv, err := s.investmentRepo.GetInvestment(ctx, userID, investmentID)
	if err != nil {
		return model.InvestmentRow{}, err
	}
	return s.row(inv, s.now()), nil
}

// CreateInvestment stores a new investment for the user. The request must
// already have passed validation.ValidateCreateInvestment.
func (s *InvestmentService) CreateInvestment(ctx context.Context, userID string, req request.CreateInvestmentRequest) (model.InvestmentRow, error) {
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return model.InvestmentRow{}, err
	}
	maturity, err := optionalDate(req.MaturityDate)
	if err != nil {
		return model.InvestmentRow{}, err
	}

	now := s.now().UTC()
	inv := model.Investment{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Type:         strings.TrimSpace(req.Type),
		Amount:       req.Amount.Float64(),
		YieldRate:    req.YieldRate.Float64(),
		Date:         date,
		MaturityDate: maturity,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.investmentRepo.InsertInvestment(ctx, &inv); err != nil {
		return model.InvestmentRow{}, fmt.Errorf("failed to create investment: %w", err)
	}

	return s.row(inv, now), nil
}

// UpdateInvestment applies the fields present in req.
// Returns a *validation.Error when the merged investment is invalid.
func (s *InvestmentService) UpdateInvestment(
	ctx context.Context,
	userID, investmentID string,
	req request.UpdateInvestmentRequest,
) (model.InvestmentRow, error) {
	inv, err := s.investmentRepo.GetInvestment(ctx, userID, investmentID)
	if err != nil {
		return model.InvestmentRow{}, err
	}

	if err := validation.ValidateUpdateInvestment(req, inv.Date, inv.MaturityDate); err != nil {
		return model.InvestmentRow{}, err
	}

	if req.Name != nil {
		inv.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		inv.Type = strings.TrimSpace(*req.Type)
	}
	if req.Amount != nil {
		inv.Amount = req.Amount.Float64()
	}
	if req.YieldRate != nil {
		inv.YieldRate = req.YieldRate.Float64()
	}
	if req.Date != nil {
		if inv.Date, err = validation.ParseDate(*req.Date); err != nil {
			return model.InvestmentRow{}, err
		}
	}
	if req.MaturityDate != nil {
		if inv.MaturityDate, err = optionalDate(req.MaturityDate); err != nil {
			return model.InvestmentRow{}, err
		}
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	inv.UpdatedAt = s.now().UTC()

	if err := s.investmentRepo.UpdateInvestment(ctx, &inv); err != nil {
		return model.InvestmentRow{}, fmt.Errorf("failed to update investment: %w", err)
	}

	return s.row(inv, inv.UpdatedAt), nil
}

// DeleteInvestment removes one of the user's investments.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	return s.investmentRepo.DeleteInvestment(ctx, userID, investmentID)
}

// GetSummary returns the dashboard summary of all the user's investments today.
func (s *InvestmentService) GetSummary(ctx context.Context, userID string) (model.InvestmentSummary, error) {
	investments, err := s.loadAll(ctx, userID)
	if err != nil {
		return model.InvestmentSummary{}, err
	}

	now := s.now()
	sum := valuation.Summarize(model.Valuations(investments), now)

	out := model.InvestmentSummary{
		Summary: valuation.Summary{
			TotalInvested: round(sum.TotalInvested),
			TotalCurrent:  round(sum.TotalCurrent),
			ProfitLoss:    round(sum.ProfitLoss),
			YieldPct:      round(sum.YieldPct),
		},
		Count:    len(investments),
		AsOf:     valuation.DateOf(now).Format(valuation.DateLayout),
		Currency: s.formatter.CurrencyCode(),
	}
	out.Display.TotalInvested = s.formatter.Currency(sum.TotalInvested)
	out.Display.TotalCurrent = s.formatter.Currency(sum.TotalCurrent)
	out.Display.ProfitLoss = s.formatter.SignedCurrency(sum.ProfitLoss)
	out.Display.YieldPct = valuation.FormatPercent(sum.YieldPct)
	return out, nil
}

// GetProjection returns the total value of the user's investments from today
// to the end of the requested horizon.
func (s *InvestmentService) GetProjection(ctx context.Context, userID string, params request.ProjectionParams) (model.Projection, error) {
	investments, err := s.loadAll(ctx, userID)
	if err != nil {
		return model.Projection{}, err
	}

	start := valuation.DateOf(s.now())
	end := params.Horizon.End(start)

	projection := model.Projection{
		Period: string(params.Horizon),
		Start:  start.Format(valuation.DateLayout),
		End:    end.Format(valuation.DateLayout),
		Step:   params.Step,
		Points: []model.ProjectionPoint{},
	}
	for date, value := range valuation.Series(model.Valuations(investments), start, end, params.Step) {
		projection.Points = append(projection.Points, model.ProjectionPoint{
			Date:  date.Format(valuation.DateLayout),
			Value: round(value),
		})
	}
	return projection, nil
}

// GetDistribution returns the invested amount per category. When category is
// set the matching investments are included.
func (s *InvestmentService) GetDistribution(ctx context.Context, userID, category string) (model.Distribution, error) {
	investments, err := s.loadAll(ctx, userID)
	if err != nil {
		return model.Distribution{}, err
	}

	shares := valuation.Distribution(valuation.GroupByCategory(model.Valuations(investments)))
	percents := roundPercents(shares)
	out := model.Distribution{Categories: make([]valuation.Share, len(shares))}
	for i, sh := range shares {
		out.Total += sh.Amount
		out.Categories[i] = valuation.Share{Category: sh.Category, Amount: round(sh.Amount), Percent: percents[i]}
	}
	out.Total = round(out.Total)

	if category != "" {
		out.Category = category
		var selected []model.Investment
		for _, inv := range investments {
			if inv.Type == category {
				selected = append(selected, inv)
			}
		}
		out.Investments = s.rows(selected, s.now())
	}
	return out, nil
}

// roundPercents rounds share percentages to hundredths with the largest
// remainder method, so the rounded values still add up to 100.
func roundPercents(shares []valuation.Share) []float64 {
	units := make([]float64, len(shares))
	remainders := make([]float64, len(shares))
	var exact, floored float64
	for i, sh := range shares {
		scaled := sh.Percent * RoundingPrecision
		units[i] = math.Floor(scaled)
		remainders[i] = scaled - units[i]
		exact += scaled
		floored += units[i]
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(remainders[b], remainders[a])
	})
	for _, i := range order[:min(len(order), int(math.Round(exact-floored)))] {
		units[i]++
	}

	percents := make([]float64, len(shares))
	for i, u := range units {
		percents[i] = u / RoundingPrecision
	}
	return percents
}

// Preview estimates an unsaved investment one year ahead using current index levels.
func (s *InvestmentService) Preview(ctx context.Context, params request.PreviewParams) model.InvestmentPreview {
	indices := s.rates.LatestRates(ctx)
	effective := valuation.EffectiveRate(params.YieldRate, params.Basis, indices)
	estimated := valuation.OneYearEstimate(params.Amount, params.YieldRate, params.Basis, indices)

	p := model.InvestmentPreview{
		Amount:        params.Amount,
		YieldRate:     params.YieldRate,
		YieldType:     string(params.Basis),
		EffectiveRate: round(effective),
		Estimated:     round(estimated),
		Indices: valuation.IndexRates{
			CDI:   round(indices.CDI),
			SELIC: round(indices.SELIC),
			IPCA:  round(indices.IPCA),
		},
	}
	p.Display.EffectiveRate = valuation.FormatPercent(effective)
	p.Display.Estimated = s.formatter.Currency(estimated)
	return p
}

func optionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := validation.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
