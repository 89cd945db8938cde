package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

func summaryMarkdown(investments []valuation.Investment, on time.Time, f valuation.Formatter) string {
	s := valuation.Summarize(investments, on)

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary on %s\n\n", on.Format(valuation.DateLayout))
	fmt.Fprintf(&b, "| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Invested | %s |\n", f.Currency(s.TotalInvested))
	fmt.Fprintf(&b, "| Current value | %s |\n", f.Currency(s.TotalCurrent))
	fmt.Fprintf(&b, "| Profit/loss | %s |\n", f.SignedCurrency(s.ProfitLoss))
	fmt.Fprintf(&b, "| Yield | %s |\n", valuation.FormatPercent(s.YieldPct))

	if len(investments) == 0 {
		b.WriteString("\nNo investments.\n")
		return b.String()
	}

	b.WriteString("\n## Investments\n\n")
	b.WriteString("| Name | Type | Date | Maturity | Rate | Amount | Value |\n")
	b.WriteString("|---|---|---|---|---:|---:|---:|\n")
	for _, inv := range investments {
		maturity := "-"
		if inv.MaturityDate != nil {
			maturity = inv.MaturityDate.Format(valuation.DateLayout)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			cell(inv.Name), cell(inv.Type), inv.Date.Format(valuation.DateLayout), maturity,
			valuation.FormatPercent(inv.YieldRate), f.Currency(inv.Amount),
			f.Currency(valuation.ProjectedValue(inv, on)))
	}
	return b.String()
}

func projectionMarkdown(investments []valuation.Investment, from time.Time, h valuation.Horizon, step int, f valuation.Formatter) string {
	end := h.End(from)

	var b strings.Builder
	fmt.Fprintf(&b, "# Projection %s\n\n", h)
	fmt.Fprintf(&b, "From %s to %s, every %d day(s).\n\n", from.Format(valuation.DateLayout), end.Format(valuation.DateLayout), max(step, 1))
	b.WriteString("| Date | Value | Change |\n|---|---:|---:|\n")

	first := true
	var base float64
	for date, value := range valuation.Series(investments, from, end, step) {
		if first {
			base, first = value, false
		}
		change := 0.0
		if base > 0 {
			change = (value - base) / base * 100
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", date.Format(valuation.DateLayout), f.Currency(value), valuation.FormatPercent(change))
	}
	return b.String()
}

func distributionMarkdown(investments []valuation.Investment, f valuation.Formatter) string {
	shares := valuation.Distribution(valuation.GroupByCategory(investments))

	var b strings.Builder
	b.WriteString("# Distribution\n\n")
	if len(shares) == 0 {
		b.WriteString("No investments.\n")
		return b.String()
	}

	b.WriteString("| Category | Invested | Share |\n|---|---:|---:|\n")
	for _, s := range shares {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(s.Category), f.Currency(s.Amount),
			strings.TrimPrefix(valuation.FormatPercent(s.Percent), "+"))
	}
	return b.String()
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// printMarkdown writes md to stdout, rendered for the terminal unless -plain is set
// or rendering fails.
func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "warning: cannot render markdown: %v\n", err)
	fmt.Print(md)
}
