package valuation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		0:       "+0.00%",
		12.345:  "+12.35%",
		7:       "+7.00%",
		-1.2:    "-1.20%",
		-0.004:  "-0.00%",
		100.999: "+101.00%",
	}
	for in, want := range cases {
		assert.Equal(t, want, valuation.FormatPercent(in), "input %v", in)
	}
	assert.Equal(t, "+0.00%", valuation.FormatPercent(math.NaN()))
}

func TestFormatter_Currency(t *testing.T) {
	usd := valuation.NewFormatter("USD")

	assert.Equal(t, "USD", usd.CurrencyCode())
	assert.Equal(t, "$1,234.56", usd.Currency(1234.56))
	assert.Equal(t, "$0.01", usd.Currency(0.005))
	assert.Equal(t, "$0.00", usd.Currency(math.Inf(1)))
}

func TestFormatter_SignedCurrency(t *testing.T) {
	usd := valuation.NewFormatter("USD")

	assert.Equal(t, "+ $10.50", usd.SignedCurrency(10.5))
	assert.Equal(t, "- $5.00", usd.SignedCurrency(-5))
	assert.Equal(t, "+ $0.00", usd.SignedCurrency(0))
}

func TestFormatter_DefaultsToBRL(t *testing.T) {
	f := valuation.NewFormatter("not-a-currency")

	assert.Equal(t, "BRL", f.CurrencyCode())
	assert.Contains(t, f.Currency(1234.56), "1.234,56")
	assert.Contains(t, f.Currency(1234.56), "R$")
}
