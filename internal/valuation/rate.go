package valuation

import (
	"math"
	"strings"
)

// RateBasis describes how a quoted yield relates to a market index.
type RateBasis string

// Supported quoting conventions.
const (
	BasisAnnual RateBasis = "aa"    // Plain nominal annual rate
	BasisCDI    RateBasis = "cdi"   // Percentage of the CDI rate, e.g. 110% of CDI
	BasisSELIC  RateBasis = "selic" // Percentage of the SELIC rate
	BasisIPCA   RateBasis = "ipca"  // Spread over IPCA inflation, e.g. IPCA + 6
)

// ParseRateBasis maps a case-insensitive name to a RateBasis, defaulting to BasisAnnual.
func ParseRateBasis(s string) RateBasis {
	switch b := RateBasis(strings.ToLower(strings.TrimSpace(s))); b {
	case BasisCDI, BasisSELIC, BasisIPCA:
		return b
	}
	return BasisAnnual
}

// IndexRates holds annualized index levels in percent.
type IndexRates struct {
	CDI   float64 `json:"cdi"`
	SELIC float64 `json:"selic"`
	IPCA  float64 `json:"ipca"`
}

// EffectiveRate converts a quoted rate into a nominal annual rate in percent.
// IPCA-linked rates are approximated additively.
func EffectiveRate(rate float64, basis RateBasis, indices IndexRates) float64 {
	switch basis {
	case BasisCDI:
		return rate * indices.CDI / 100
	case BasisSELIC:
		return rate * indices.SELIC / 100
	case BasisIPCA:
		return indices.IPCA + rate
	default:
		return rate
	}
}

// OneYearEstimate returns the value of amount after one year at the effective rate,
// or 0 when that overflows.
func OneYearEstimate(amount, rate float64, basis RateBasis, indices IndexRates) float64 {
	v := amount * (1 + EffectiveRate(rate, basis, indices)/100)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
