package pricing

// MarkupPrice prices a unit at cost plus a percentage of cost.
// Negative inputs resolve to 0.
func MarkupPrice(costPerUnit, markupPercent float64) float64 {
	if costPerUnit < 0 || markupPercent < 0 {
		return 0
	}
	return Round2(costPerUnit * (1 + markupPercent/100))
}

// MarginPrice prices a unit so that marginPercent of the selling price
// is profit: price = cost / (1 - margin/100). A margin at or above 100%
// has no finite price, so it resolves to 0 instead of letting the
// division blow up.
func MarginPrice(costPerUnit, marginPercent float64) float64 {
	if costPerUnit < 0 || marginPercent < 0 || marginPercent >= 100 {
		return 0
	}
	return Round2(costPerUnit / (1 - marginPercent/100))
}

// RecommendedPrice dispatches on the configured strategy. An
// unrecognized strategy prices at 0.
func RecommendedPrice(costPerUnit float64, config Config) float64 {
	switch config.Strategy {
	case StrategyMarkup:
		return MarkupPrice(costPerUnit, config.Value)
	case StrategyMargin:
		return MarginPrice(costPerUnit, config.Value)
	default:
		return 0
	}
}

// ProfitMargin returns profit as a percentage of the selling price.
// A non-positive price has no meaningful margin and returns 0.
func ProfitMargin(costPerUnit, sellingPrice float64) float64 {
	if sellingPrice <= 0 {
		return 0
	}
	return Round2(((sellingPrice - costPerUnit) / sellingPrice) * 100)
}

// EquivalentMargin converts a markup percentage into the margin
// percentage that produces the same selling price for the same cost.
// Used when a caller toggles strategy without wanting the price to
// jump.
func EquivalentMargin(markupPercent float64) float64 {
	if markupPercent < 0 {
		return 0
	}
	return Round2(markupPercent / (1 + markupPercent/100))
}

// EquivalentMarkup is the inverse of EquivalentMargin. Margins at or
// above 100% have no markup equivalent and resolve to 0.
func EquivalentMarkup(marginPercent float64) float64 {
	if marginPercent < 0 || marginPercent >= 100 {
		return 0
	}
	return Round2(marginPercent / (1 - marginPercent/100))
}

// MarkupForProfit returns the markup percentage needed to earn
// targetProfit on every unit that costs costPerUnit. The algebraic
// inverse of MarkupPrice solved for the percentage.
func MarkupForProfit(costPerUnit, targetProfit float64) float64 {
	if costPerUnit <= 0 || targetProfit < 0 {
		return 0
	}
	return Round2(targetProfit / costPerUnit * 100)
}

// MarginForProfit returns the margin percentage at which a unit sold at
// costPerUnit+targetProfit keeps exactly targetProfit as profit.
func MarginForProfit(costPerUnit, targetProfit float64) float64 {
	if costPerUnit < 0 || targetProfit < 0 {
		return 0
	}
	price := costPerUnit + targetProfit
	if price <= 0 {
		return 0
	}
	return Round2(targetProfit / price * 100)
}
