package poller

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders d as dollars with two decimals, e.g. "$1234.50" or "$-3.00".
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatPrice renders a quote with two decimals and no currency symbol.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatQuantity renders a contract count without trailing zeros.
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}

// ParseQuantity reads the leading integer of s: "5" -> 5, "12abc" -> 12, "3.9" -> 3.
// It fails when s does not start with an integer.
func ParseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}
