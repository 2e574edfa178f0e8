package finance

import "math"

// Engine-wide default assumptions.
const (
	DefaultInflationRate    = 0.03
	DefaultLifeExpectancy   = 95
	DefaultMaxProjectionAge = 80
)

// roundMoney rounds a monetary amount to the nearest whole unit. Amounts
// are rounded at every computation boundary, not only at display, so
// fractional drift never accumulates across chained calls.
func roundMoney(v float64) float64 {
	return math.Round(v)
}
