package valuation

import (
	"iter"
	"time"
)

// Point is one sample of a projection series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series yields the total projected value of investments for every stepDays interval
// from start through end, inclusive, in ascending date order. A stepDays below 1 is
// treated as 1. The sequence is computed on demand and can be ranged over repeatedly.
func Series(investments []Investment, start, end time.Time, stepDays int) iter.Seq2[time.Time, float64] {
	if stepDays < 1 {
		stepDays = 1
	}
	return func(yield func(time.Time, float64) bool) {
		for i := 0; ; i++ {
			date := start.AddDate(0, 0, i*stepDays)
			if date.After(end) {
				return
			}
			if !yield(date, Total(investments, date)) {
				return
			}
		}
	}
}

// Points collects Series into a slice.
func Points(investments []Investment, start, end time.Time, stepDays int) []Point {
	points := []Point{}
	for date, value := range Series(investments, start, end, stepDays) {
		points = append(points, Point{Date: date, Value: value})
	}
	return points
}

// Total sums ProjectedValue over investments at ref.
func Total(investments []Investment, ref time.Time) float64 {
	var total float64
	for _, inv := range investments {
		total += ProjectedValue(inv, ref)
	}
	return total
}

// Horizon names a projection window.
type Horizon string

// Projection windows offered by the dashboard chart.
const (
	HorizonOneMonth  Horizon = "1m"
	HorizonSixMonths Horizon = "6m"
	HorizonOneYear   Horizon = "1y"
	HorizonTenYears  Horizon = "10y"
)

// DefaultHorizon is used when no or an unknown window is requested.
const DefaultHorizon = HorizonSixMonths

// ParseHorizon returns the Horizon named by s, falling back to DefaultHorizon.
// The boolean reports whether s was recognised.
func ParseHorizon(s string) (Horizon, bool) {
	switch h := Horizon(s); h {
	case HorizonOneMonth, HorizonSixMonths, HorizonOneYear, HorizonTenYears:
		return h, true
	}
	return DefaultHorizon, false
}

// End returns the last date of the window starting at from.
func (h Horizon) End(from time.Time) time.Time {
	switch h {
	case HorizonOneMonth:
		return from.AddDate(0, 1, 0)
	case HorizonOneYear:
		return from.AddDate(1, 0, 0)
	case HorizonTenYears:
		return from.AddDate(10, 0, 0)
	default:
		return from.AddDate(0, 6, 0)
	}
}
