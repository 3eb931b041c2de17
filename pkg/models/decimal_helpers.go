package models

import "github.com/shopspring/decimal"

// ToFloat64 safely converts decimal to float64
func ToFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// DecimalFromFloat wraps decimal.NewFromFloat, guarding NaN/Inf inputs to
// zero so a bad quote can never poison a valuation.
func DecimalFromFloat(f float64) decimal.Decimal {
	if f != f || f > 1e15 || f < -1e15 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
