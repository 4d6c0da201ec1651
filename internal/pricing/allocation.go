package pricing

// BaseCostShare allocates part of a shared batch cost to a variant,
// strictly proportional to the batch units the variant claims. Sibling
// shares are rounded independently and never reconciled against the
// shared total; the cent-level drift is accepted.
func BaseCostShare(totalBaseCost, baseBatchSize, variantBatchSize float64) float64 {
	if baseBatchSize <= 0 {
		return 0
	}
	return Round2(totalBaseCost / baseBatchSize * variantBatchSize)
}

// VariantCosts prices a single variant: its proportional share of the
// base recipe (baseCostPerUnit times the units it claims) plus its own
// ingredients, labor and overhead, under the variant's own strategy.
func VariantCosts(v Variant, baseCostPerUnit float64) VariantResult {
	allocated := Round2(baseCostPerUnit * v.BatchSize)
	specific := Round2(TotalIngredientCost(v.Ingredients) + v.LaborCost + v.Overhead)
	totalCost := Round2(allocated + specific)

	costPerUnit := CostPerUnit(totalCost, v.BatchSize)
	price := RecommendedPrice(costPerUnit, v.Pricing)
	profitPerUnit := Round2(price - costPerUnit)

	res := VariantResult{
		ID:                  v.ID,
		Name:                v.Name,
		BatchSize:           v.BatchSize,
		TotalCost:           totalCost,
		CostPerUnit:         costPerUnit,
		RecommendedPrice:    price,
		ProfitPerUnit:       profitPerUnit,
		ProfitMarginPercent: ProfitMargin(costPerUnit, price),
		ProfitPerBatch:      Round2(profitPerUnit * v.BatchSize),
	}

	if v.CurrentSellingPrice > 0 {
		res.CurrentSellingPrice = v.CurrentSellingPrice
		res.CurrentProfitPerUnit = Round2(v.CurrentSellingPrice - costPerUnit)
		res.CurrentProfitMargin = ProfitMargin(costPerUnit, v.CurrentSellingPrice)
	}

	return res
}
