package bcb

import (
	"slices"
	"strings"
	"time"
)

// Periodicity is how often a series publishes a value.
type Periodicity string

const (
	Daily   Periodicity = "daily"
	Monthly Periodicity = "monthly"
)

// PeriodsPerYear is the compounding count used to annualize one observation.
// Daily series use business days.
func (p Periodicity) PeriodsPerYear() float64 {
	if p == Daily {
		return 252
	}
	return 12
}

// Series identifies a time series in the SGS system.
type Series struct {
	Name        string
	Code        int
	Periodicity Periodicity
}

var catalog = map[string]Series{
	"selic": {Name: "selic", Code: 11, Periodicity: Daily},
	"cdi":   {Name: "cdi", Code: 12, Periodicity: Daily},
	"ipca":  {Name: "ipca", Code: 433, Periodicity: Monthly},
	"igpm":  {Name: "igpm", Code: 189, Periodicity: Monthly},
}

// Lookup returns the series registered under a case-insensitive name.
func Lookup(name string) (Series, bool) {
	s, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names returns the supported series names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DateLayout is the date format used by the SGS API in both directions.
const DateLayout = "02/01/2006"

// Observation is one published value. Both fields are kept as published:
// Date is dd/mm/yyyy and Value a percentage for the period.
type Observation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// Time parses the observation date.
func (o Observation) Time() (time.Time, error) {
	return time.Parse(DateLayout, o.Date)
}
