package pricing

import (
	"errors"
	"math"
)

// Position labels for a price relative to its competitors.
const (
	PositionBudget  = "budget"
	PositionMid     = "mid"
	PositionPremium = "premium"
)

// ErrNotEnoughCompetitors is returned when fewer than two competitor
// prices are supplied. This is an expected "not enough data" state the
// caller branches on, not a failure.
var ErrNotEnoughCompetitors = errors.New("market position requires at least two competitor prices")

// Market describes where a price sits inside the competitor range.
type Market struct {
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
	AvgPrice   float64 `json:"avgPrice"`
	Percentile float64 `json:"percentile"`
	Position   string  `json:"position"`
}

// MarketPosition ranks currentPrice inside the competitor price range
// as a linear percentile clamped to [0,100] and classifies it as
// budget, mid, or premium. Boundary percentiles belong to the extreme
// tiers, consistent with the clamping. When every competitor charges
// the same, the percentile is defined as 50.
func MarketPosition(currentPrice float64, competitors []float64) (Market, error) {
	if len(competitors) < 2 {
		return Market{}, ErrNotEnoughCompetitors
	}

	min, max := competitors[0], competitors[0]
	sum := 0.0
	for _, p := range competitors {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		sum += p
	}

	m := Market{
		MinPrice: Round2(min),
		MaxPrice: Round2(max),
		AvgPrice: Round2(sum / float64(len(competitors))),
	}

	if min == max {
		m.Percentile = 50
		m.Position = PositionMid
		return m, nil
	}

	percentile := (currentPrice - min) / (max - min) * 100
	m.Percentile = Round2(math.Min(100, math.Max(0, percentile)))

	switch {
	case m.Percentile <= 0:
		m.Position = PositionBudget
	case m.Percentile >= 100:
		m.Position = PositionPremium
	default:
		m.Position = PositionMid
	}

	return m, nil
}
