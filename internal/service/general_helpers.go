package service

import (
	"math"
	"time"
)

// RoundingPrecision is the scale used by round: two decimal places.
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values and percentages in API responses.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time
