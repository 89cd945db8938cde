package model

import (
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// Investment represents a fixed-income position recorded by a user.
type Investment struct {
	ID           string
	UserID       string
	Name         string
	Type         string
	Amount       float64
	YieldRate    float64
	Date         time.Time
	MaturityDate *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Valuation returns the engine view of the investment.
func (i Investment) Valuation() valuation.Investment {
	return valuation.Investment{
		Name:         i.Name,
		Type:         i.Type,
		Amount:       i.Amount,
		YieldRate:    i.YieldRate,
		Date:         i.Date,
		MaturityDate: i.MaturityDate,
		Notes:        i.Notes,
	}
}

// Valuations converts a slice of investments for the engine.
func Valuations(investments []Investment) []valuation.Investment {
	out := make([]valuation.Investment, len(investments))
	for i, inv := range investments {
		out[i] = inv.Valuation()
	}
	return out
}

// InvestmentFilter for listing a user's investments.
// A zero PerPage returns every row.
type InvestmentFilter struct {
	UserID  string
	Type    string
	Page    int
	PerPage int
}

// InvestmentRow is an investment as shown in tables, with its value at the request time.
type InvestmentRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	YieldRate      float64 `json:"yield_rate"`
	Date           string  `json:"date"`
	MaturityDate   *string `json:"maturity_date"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
	EstimatedValue float64 `json:"estimated_value"`
	Display        struct {
		Amount         string `json:"amount"`
		YieldRate      string `json:"yield_rate"`
		EstimatedValue string `json:"estimated_value"`
	} `json:"display"`
}

// InvestmentPage is one page of a user's investments.
type InvestmentPage struct {
	Investments []InvestmentRow `json:"investments"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	PerPage     int             `json:"per_page"`
	TotalPages  int             `json:"total_pages"`
}

// InvestmentSummary is the dashboard summary card payload.
type InvestmentSummary struct {
	valuation.Summary
	Count    int    `json:"count"`
	AsOf     string `json:"asOf"`
	Currency string `json:"currency"`
	Display  struct {
		TotalInvested string `json:"totalInvested"`
		TotalCurrent  string `json:"totalCurrent"`
		ProfitLoss    string `json:"profitLoss"`
		YieldPct      string `json:"yieldPct"`
	} `json:"display"`
}

// ProjectionPoint is one point of the projection chart.
type ProjectionPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Projection is the projection chart payload.
type Projection struct {
	Period string            `json:"period"`
	Start  string            `json:"start"`
	End    string            `json:"end"`
	Step   int               `json:"step"`
	Points []ProjectionPoint `json:"points"`
}

// Distribution is the category breakdown payload. Investments is only filled when a
// category was selected.
type Distribution struct {
	Total       float64           `json:"total"`
	Categories  []valuation.Share `json:"categories"`
	Category    string            `json:"category,omitempty"`
	Investments []InvestmentRow   `json:"investments,omitempty"`
}

// InvestmentPreview estimates an unsaved investment one year ahead.
type InvestmentPreview struct {
	Amount        float64              `json:"amount"`
	YieldRate     float64              `json:"yield_rate"`
	YieldType     string               `json:"yield_type"`
	EffectiveRate float64              `json:"effective_rate"`
	Estimated     float64              `json:"estimated"`
	Indices       valuation.IndexRates `json:"indices"`
	Display       struct {
		EffectiveRate string `json:"effective_rate"`
		Estimated     string `json:"estimated"`
	} `json:"display"`
}
