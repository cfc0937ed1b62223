package quote

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "R"

// VATRate is the fixed South African VAT rate.
var VATRate = decimal.RequireFromString("0.15")

func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// FormatCurrency renders an amount as "R 10,000.00".
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := CurrencySymbol + " " + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatAmount formats a float amount; NaN and infinities render as zero.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatCurrency(decimal.Zero)
	}
	return FormatCurrency(decimal.NewFromFloat(v))
}
