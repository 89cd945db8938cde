package valuation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// ParseNumber converts s into a float. Anything that is not a finite decimal number,
// including the empty string and values beyond float64 range such as 1e400, is
// treated as 0 so a malformed record shows zero instead of failing the whole computation.
func ParseNumber(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// Number is a JSON numeric field that also accepts numeric strings, as returned by
// stores that serialise decimal columns as text. Unparseable values decode to 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(s))
		return nil
	}
	*n = Number(ParseNumber(string(data)))
	return nil
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// Record is the JSON shape of an investment as listed by the REST API or exported by it.
type Record struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name,omitempty"`
	Type         string  `json:"type"`
	Amount       Number  `json:"amount"`
	YieldRate    Number  `json:"yield_rate"`
	Date         string  `json:"date"`
	MaturityDate *string `json:"maturity_date,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Investment converts the record. Dates must be YYYY-MM-DD; an empty maturity date is
// treated as absent.
func (r Record) Investment() (Investment, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return Investment{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	inv := Investment{
		Name:      r.Name,
		Type:      r.Type,
		Amount:    r.Amount.Float64(),
		YieldRate: r.YieldRate.Float64(),
		Date:      date,
		Notes:     r.Notes,
	}

	if r.MaturityDate != nil && *r.MaturityDate != "" {
		maturity, err := time.Parse(DateLayout, *r.MaturityDate)
		if err != nil {
			return Investment{}, fmt.Errorf("invalid maturity_date %q: %w", *r.MaturityDate, err)
		}
		inv.MaturityDate = &maturity
	}

	return inv, nil
}

// FromRecords converts records in order, stopping at the first malformed date.
func FromRecords(records []Record) ([]Investment, error) {
	investments := make([]Investment, 0, len(records))
	for i, r := range records {
		inv, err := r.Investment()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		investments = append(investments, inv)
	}
	return investments, nil
}
