// Package valuation implements the compound-growth model used to value fixed-income
// investments. Every function in this package is pure: the reference date is always an
// explicit argument and nothing reads the wall clock, so results are reproducible.
package valuation

import (
	"math"
	"time"
)

// DaysPerYear is the fixed annualization basis. Leap years are not adjusted for.
const DaysPerYear = 365.0

// Investment is the read-only input of the engine.
// Name and Notes are metadata only; Type is the category label used for grouping.
type Investment struct {
	Name         string
	Type         string
	Amount       float64    // Principal
	YieldRate    float64    // Nominal annual rate in percent (10 means 10% a.a.)
	Date         time.Time  // Origin date, only the calendar date is significant
	MaturityDate *time.Time // Optional; growth freezes on this date
	Notes        string
}

// ProjectedValue returns the value of inv as observed at ref:
//
//	amount × (1 + yieldRate/100) ^ (elapsedDays / 365)
//
// The evaluation point is selected as follows:
//   - ref before the origin date (calendar comparison): the investment does not exist yet, 0
//   - maturity set and not after ref: growth is evaluated at the maturity date
//   - otherwise growth is evaluated at ref
//
// The result is always finite and never negative. A yield of -100% or lower wipes the
// position out, and a growth factor that overflows float64 values to 0.
func ProjectedValue(inv Investment, ref time.Time) float64 {
	refDay := DateOf(ref)
	start := DateOf(inv.Date)

	if refDay.Before(start) {
		return 0
	}

	eval := ref
	if inv.MaturityDate != nil {
		maturity := DateOf(*inv.MaturityDate)
		if !maturity.After(refDay) {
			eval = maturity
		}
	}

	return compound(inv.Amount, inv.YieldRate, ElapsedDays(start, eval))
}

// ElapsedDays returns the fractional number of days from start to end, clamped at 0.
func ElapsedDays(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// DateOf truncates t to midnight UTC of its UTC calendar day.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func compound(amount, yieldRate, days float64) float64 {
	base := 1 + yieldRate/100
	if base <= 0 {
		return 0
	}
	return nonNegative(amount * math.Pow(base, days/DaysPerYear))
}

// nonNegative maps NaN, ±Inf and negative values to 0.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
