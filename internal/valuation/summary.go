package valuation

import (
	"sort"
	"time"
)

// Summary aggregates a set of investments at one reference date.
type Summary struct {
	TotalInvested float64 `json:"totalInvested"` // Sum of principals, no growth applied
	TotalCurrent  float64 `json:"totalCurrent"`  // Sum of projected values
	ProfitLoss    float64 `json:"profitLoss"`    // TotalCurrent - TotalInvested
	YieldPct      float64 `json:"yieldPct"`      // ProfitLoss / TotalInvested × 100, 0 when nothing is invested
}

// Summarize computes the dashboard summary of investments at ref.
func Summarize(investments []Investment, ref time.Time) Summary {
	var s Summary
	for _, inv := range investments {
		s.TotalInvested += inv.Amount
		s.TotalCurrent += ProjectedValue(inv, ref)
	}
	s.ProfitLoss = s.TotalCurrent - s.TotalInvested
	if s.TotalInvested > 0 {
		s.YieldPct = s.ProfitLoss / s.TotalInvested * 100
	}
	return s
}

// GroupByCategory sums principals per investment type.
func GroupByCategory(investments []Investment) map[string]float64 {
	groups := make(map[string]float64)
	for _, inv := range investments {
		groups[inv.Type] += inv.Amount
	}
	return groups
}

// Share is one category of a distribution breakdown.
type Share struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Distribution turns category sums into shares of their common total, sorted by category.
// Every share is divided by the same total so the percentages add up to 100.
// A zero total yields shares of 0%.
func Distribution(groups map[string]float64) []Share {
	var total float64
	for _, amount := range groups {
		total += amount
	}

	shares := make([]Share, 0, len(groups))
	for category, amount := range groups {
		share := Share{Category: category, Amount: amount}
		if total != 0 {
			share.Percent = amount / total * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].Category < shares[j].Category
	})
	return shares
}
