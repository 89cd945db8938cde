package valuation

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO 4217 code used when none or an unknown one is configured.
const DefaultCurrency = money.BRL

// Formatter renders monetary values in one currency. Symbol, separators and fraction
// digits come from the currency definition in go-money.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a Formatter for the ISO 4217 code, falling back to DefaultCurrency.
func NewFormatter(code string) Formatter {
	currency := money.GetCurrency(code)
	if currency == nil {
		currency = money.GetCurrency(DefaultCurrency)
	}
	return Formatter{currency: currency}
}

// CurrencyCode returns the ISO code the formatter renders.
func (f Formatter) CurrencyCode() string {
	return f.currency.Code
}

// Currency formats value with the currency's fraction digits, e.g. R$1.234,56.
// Values are rounded half away from zero.
func (f Formatter) Currency(value float64) string {
	return money.New(f.minorUnits(value), f.currency.Code).Display()
}

// SignedCurrency formats value with an explicit "+ " or "- " prefix, as used for profit/loss.
func (f Formatter) SignedCurrency(value float64) string {
	if value < 0 {
		return "- " + f.Currency(math.Abs(value))
	}
	return "+ " + f.Currency(value)
}

func (f Formatter) minorUnits(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	places := int32(f.currency.Fraction)
	return decimal.NewFromFloat(value).Round(places).Shift(places).IntPart()
}

// FormatPercent renders value with two decimals, a leading sign and a % suffix:
// +12.34% for values >= 0, -1.20% for negative values.
func FormatPercent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	sign := "+"
	if value < 0 {
		sign = "-"
		value = -value
	}
	return sign + decimal.NewFromFloat(value).StringFixed(2) + "%"
}
