package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Total sums the price of every selected feature of every selected service.
// It is recomputed from the selection on each call.
func Total(sel Selection) decimal.Decimal {
	total := decimal.Zero
	for _, inner := range sel.features {
		for _, f := range inner {
			total = total.Add(f.Price)
		}
	}
	return total
}

// LineItem is one service's share of the estimate.
type LineItem struct {
	ServiceID   string
	ServiceName string
	Features    int
	Subtotal    decimal.Decimal
}

// Breakdown returns one line per selected service, ordered like
// Selection.Services. The subtotals add up to Total.
func Breakdown(sel Selection) []LineItem {
	services := sel.Services()
	lines := make([]LineItem, 0, len(services))
	for _, svc := range services {
		sub := decimal.Zero
		inner := sel.features[svc.ID]
		for _, f := range inner {
			sub = sub.Add(f.Price)
		}
		lines = append(lines, LineItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Features:    len(inner),
			Subtotal:    sub,
		})
	}
	return lines
}

// FormatMoney renders an amount as "$1,234.50". Whole amounts drop the cents.
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs().Round(2)

	whole := d.Truncate(0)
	cents := d.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()

	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String()
	if cents != 0 {
		out += fmt.Sprintf(".%02d", cents)
	}
	if neg {
		out = "-" + out
	}
	return out
}
