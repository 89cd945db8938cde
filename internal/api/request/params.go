package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// DefaultPerPage is the page size used when paging is requested without per_page.
const DefaultPerPage = 10

// MaxStepDays bounds the projection step.
const MaxStepDays = 366

// ParseInvestmentFilter extracts list filters from query parameters.
// Paging is off unless page or per_page is given; page defaults to 1 and
// per_page to DefaultPerPage, capped at 100.
func ParseInvestmentFilter(typeParam, pageParam, perPageParam string) (model.InvestmentFilter, error) {
	filter := model.InvestmentFilter{
		Type: strings.TrimSpace(typeParam),
	}

	if pageParam == "" && perPageParam == "" {
		return filter, nil
	}

	filter.Page = 1
	if pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil || page < 1 {
			return model.InvestmentFilter{}, fmt.Errorf("invalid page: must be a positive number")
		}
		filter.Page = page
	}

	filter.PerPage = DefaultPerPage
	if perPageParam != "" {
		perPage, err := strconv.Atoi(perPageParam)
		if err != nil {
			return model.InvestmentFilter{}, fmt.Errorf("invalid per_page: must be a number")
		}
		if perPage < 1 || perPage > 100 {
			return model.InvestmentFilter{}, fmt.Errorf("invalid per_page: must be between 1 and 100")
		}
		filter.PerPage = perPage
	}

	return filter, nil
}

// ProjectionParams are the query parameters of the projection endpoints.
type ProjectionParams struct {
	Horizon valuation.Horizon
	Step    int
}

// ParseProjectionParams reads period (1m, 6m, 1y, 10y; default 6m) and step
// (days between points; default 1).
func ParseProjectionParams(periodParam, stepParam string) (ProjectionParams, error) {
	params := ProjectionParams{Horizon: valuation.DefaultHorizon, Step: 1}

	if periodParam != "" {
		h, ok := valuation.ParseHorizon(periodParam)
		if !ok {
			return ProjectionParams{}, fmt.Errorf("invalid period: must be one of 1m, 6m, 1y, 10y")
		}
		params.Horizon = h
	}

	if stepParam != "" {
		step, err := strconv.Atoi(stepParam)
		if err != nil {
			return ProjectionParams{}, fmt.Errorf("invalid step: must be a number")
		}
		if step < 1 || step > MaxStepDays {
			return ProjectionParams{}, fmt.Errorf("invalid step: must be between 1 and %d", MaxStepDays)
		}
		params.Step = step
	}

	return params, nil
}

// PreviewParams are the query parameters of the preview endpoint.
type PreviewParams struct {
	Amount    float64
	YieldRate float64
	Basis     valuation.RateBasis
}

// ParsePreviewParams reads amount, yield_rate and yield_type. Non-numeric
// amounts and rates read as 0, unknown yield types as a plain annual rate.
func ParsePreviewParams(amountParam, yieldParam, typeParam string) PreviewParams {
	return PreviewParams{
		Amount:    valuation.ParseNumber(amountParam),
		YieldRate: valuation.ParseNumber(yieldParam),
		Basis:     valuation.ParseRateBasis(typeParam),
	}
}
