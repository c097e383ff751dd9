// Package money holds the two-decimal arithmetic shared by prices, holdings and cash.
package money

import "github.com/shopspring/decimal"

// Round2 rounds x to two decimal places by truncating 100*x + 0.5 toward zero.
//
// This is not round-half-up: negative inputs drift toward zero, so Round2 is
// only idempotent for x >= 0. Every price, value and cash amount goes through it
// before being stored or compared.
func Round2(x float64) float64 {
	return float64(int64(100*x+0.5)) / 100
}

// Format renders an amount with exactly two decimals.
func Format(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

// FormatSigned is Format with an explicit leading "+" for positive amounts.
func FormatSigned(x float64) string {
	d := decimal.NewFromFloat(x)
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}
