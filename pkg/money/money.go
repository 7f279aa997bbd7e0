// Package money fixes the currency rounding and display policy.
package money

import "github.com/shopspring/decimal"

// Places is the number of fractional digits kept for currency amounts.
const Places int32 = 2

// Round rounds half-to-even at currency precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// Format renders d as "$123.45".
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixedBank(Places)
}

// Parse reads a plain decimal amount, tolerating a leading "$".
func Parse(s string) (decimal.Decimal, error) {
	if len(s) > 0 && s[0] == '$' {
		s = s[1:]
	}
	return decimal.NewFromString(s)
}
