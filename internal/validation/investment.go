package validation

import (
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
)

// Upper bounds that keep compounded values well inside float64 range.
const (
	MaxAmount    = 1e12
	MaxYieldRate = 1000.0
)

// ValidateCreateInvestment validates an investment creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - type: Non-empty category label
//   - amount: Must be positive and at most MaxAmount
//   - date: Must be in YYYY-MM-DD format
//
// Optional fields (validated if provided):
//   - maturity_date: Must be in YYYY-MM-DD format and not before date
//
// yield_rate may be negative but must not exceed MaxYieldRate.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	}

	checkAmount(errors, req.Amount.Float64())
	checkYieldRate(errors, req.YieldRate.Float64())

	date, dateOK := checkDate(errors, "date", req.Date, true)
	checkMaturity(errors, req.MaturityDate, date, dateOK)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestment validates an investment update request against the stored row.
// All fields are optional, but if provided, they must meet the same constraints as create.
// The maturity rule is checked on the merged result so a date change cannot
// leave an existing maturity before it.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest, currentDate time.Time, currentMaturity *time.Time) error {
	errors := make(map[string]string)

	if req.Type != nil && strings.TrimSpace(*req.Type) == "" {
		errors["type"] = "type is required"
	}

	if req.Amount != nil {
		checkAmount(errors, req.Amount.Float64())
	}
	if req.YieldRate != nil {
		checkYieldRate(errors, req.YieldRate.Float64())
	}

	date, dateOK := currentDate, true
	if req.Date != nil {
		date, dateOK = checkDate(errors, "date", *req.Date, true)
	}

	switch {
	case req.MaturityDate != nil:
		checkMaturity(errors, req.MaturityDate, date, dateOK)
	case currentMaturity != nil && dateOK && currentMaturity.Before(date):
		errors["maturity_date"] = "maturity_date must not be before date"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func checkAmount(errors map[string]string, amount float64) {
	switch {
	case amount <= 0:
		errors["amount"] = "amount must be positive"
	case amount > MaxAmount:
		errors["amount"] = "amount must not exceed 1000000000000"
	}
}

func checkYieldRate(errors map[string]string, rate float64) {
	if rate > MaxYieldRate {
		errors["yield_rate"] = "yield_rate must not exceed 1000"
	}
}

func checkDate(errors map[string]string, field, value string, required bool) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			errors[field] = field + " is required"
		}
		return time.Time{}, false
	}
	t, err := ParseDate(value)
	if err != nil {
		errors[field] = err.Error()
		return time.Time{}, false
	}
	return t, true
}

func checkMaturity(errors map[string]string, maturity *string, date time.Time, dateOK bool) {
	if maturity == nil {
		return
	}
	m, ok := checkDate(errors, "maturity_date", *maturity, false)
	if ok && dateOK && m.Before(date) {
		errors["maturity_date"] = "maturity_date must not be before date"
	}
}
