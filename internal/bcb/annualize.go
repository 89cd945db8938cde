package bcb

import (
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// YearChange is the compounded change of a series over one calendar year, in percent.
type YearChange struct {
	Year    string
	Percent float64
}

// ParseValue reads a published percentage. Unparseable values count as 0.
func ParseValue(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// YearlyCompounded compounds each year's observations into a single percentage,
// rounded to two decimals, ordered by year. Observations with a malformed date
// are skipped.
func YearlyCompounded(observations []Observation) []YearChange {
	factors := make(map[string]float64)
	for _, o := range observations {
		parts := strings.Split(o.Date, "/")
		if len(parts) != 3 {
			continue
		}
		year := parts[2]
		f, ok := factors[year]
		if !ok {
			f = 1
		}
		factors[year] = f * (1 + ParseValue(o.Value)/100)
	}

	years := make([]string, 0, len(factors))
	for y := range factors {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]YearChange, len(years))
	for i, y := range years {
		pct := decimal.NewFromFloat((factors[y] - 1) * 100).Round(2)
		out[i] = YearChange{Year: y, Percent: pct.InexactFloat64()}
	}
	return out
}

// Annualize converts a single period rate into an annual rate, both in percent.
func Annualize(rate float64, p Periodicity) float64 {
	return (math.Pow(1+rate/100, p.PeriodsPerYear()) - 1) * 100
}

// Latest returns the last observation and its annualized rate. ok is false for
// an empty series.
func Latest(observations []Observation, p Periodicity) (last Observation, annual float64, ok bool) {
	if len(observations) == 0 {
		return Observation{}, 0, false
	}
	last = observations[len(observations)-1]
	return last, Annualize(ParseValue(last.Value), p), true
}
