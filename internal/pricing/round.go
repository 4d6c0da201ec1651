package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds value to the given number of decimal places with
// round-half-away-from-zero semantics, so 1.005 becomes 1.01 instead of
// falling into the binary-float trap. NaN and infinities pass through
// unchanged; decimal cannot represent them.
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// Round2 rounds to two decimal places. It is applied after every
// monetary step, not just at display time, so chained calculations
// (allocation, pricing, profit) do not accumulate drift.
func Round2(value float64) float64 {
	return Round(value, 2)
}
