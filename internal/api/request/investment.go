package request

import "github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"

// CreateInvestmentRequest represents the request body for recording an investment.
// Amount and YieldRate accept numbers or numeric strings; anything else reads as 0.
type CreateInvestmentRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Amount       valuation.Number `json:"amount"`
	YieldRate    valuation.Number `json:"yield_rate"`
	Date         string           `json:"date"`
	MaturityDate *string          `json:"maturity_date"`
	Notes        string           `json:"notes"`
}

// UpdateInvestmentRequest changes only the fields that are present.
// An empty MaturityDate string clears the maturity.
type UpdateInvestmentRequest struct {
	Name         *string           `json:"name,omitempty"`
	Type         *string           `json:"type,omitempty"`
	Amount       *valuation.Number `json:"amount,omitempty"`
	YieldRate    *valuation.Number `json:"yield_rate,omitempty"`
	Date         *string           `json:"date,omitempty"`
	MaturityDate *string           `json:"maturity_date,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
}
