package pricing

// BaseVariantID identifies the synthesized pseudo-variant that carries
// batch capacity no explicit variant claimed.
const BaseVariantID = "base-original"

// Calculate is the single entry point for a full pricing pass. It never
// mutates its inputs and never panics for any float input: degenerate
// numbers (zero batch, negative cost, margin past the asymptote) all
// resolve to 0, because the engine runs continuously while a user is
// mid-edit.
//
// With variants present, each variant gets its proportional share of
// the base cost plus its own additions, priced under its own strategy,
// and any unclaimed batch capacity is folded in as a leftover
// pseudo-variant priced under the base config. ProfitPerBatch then
// accounts for 100% of the declared batch size. The top-level price and
// margin remain the base product's own figures as a reference point.
func Calculate(input Input, config Config) Result {
	ingredientCost := TotalIngredientCost(input.Ingredients)
	totalCost := Round2(ingredientCost + input.LaborCost + input.Overhead)
	costPerUnit := CostPerUnit(totalCost, input.BatchSize)

	price := RecommendedPrice(costPerUnit, config)
	profitPerUnit := Round2(price - costPerUnit)

	result := Result{
		TotalCost:           totalCost,
		CostPerUnit:         costPerUnit,
		BreakEvenPrice:      costPerUnit,
		RecommendedPrice:    price,
		ProfitPerUnit:       profitPerUnit,
		ProfitMarginPercent: ProfitMargin(costPerUnit, price),
		Breakdown: Breakdown{
			Ingredients: ingredientCost,
			Labor:       input.LaborCost,
			Overhead:    input.Overhead,
		},
	}

	if !input.HasVariants || len(input.Variants) == 0 {
		result.ProfitPerBatch = Round2(profitPerUnit * input.BatchSize)
		return result
	}

	variantResults := make([]VariantResult, 0, len(input.Variants)+1)
	allocated := 0.0
	batchProfit := 0.0
	for _, v := range input.Variants {
		vr := VariantCosts(v, costPerUnit)
		variantResults = append(variantResults, vr)
		allocated += v.BatchSize
		batchProfit += vr.ProfitPerBatch
	}

	// Whatever the variants leave unclaimed is still produced and still
	// sold under the base product's own pricing.
	remaining := input.BatchSize - allocated
	if remaining > 0 {
		leftover := VariantResult{
			ID:                  BaseVariantID,
			Name:                input.ProductName + " (Base)",
			BatchSize:           remaining,
			TotalCost:           Round2(costPerUnit * remaining),
			CostPerUnit:         costPerUnit,
			RecommendedPrice:    price,
			ProfitPerUnit:       profitPerUnit,
			ProfitMarginPercent: result.ProfitMarginPercent,
			ProfitPerBatch:      Round2(profitPerUnit * remaining),
		}
		if input.CurrentSellingPrice > 0 {
			leftover.CurrentSellingPrice = input.CurrentSellingPrice
			leftover.CurrentProfitPerUnit = Round2(input.CurrentSellingPrice - costPerUnit)
			leftover.CurrentProfitMargin = ProfitMargin(costPerUnit, input.CurrentSellingPrice)
		}
		variantResults = append(variantResults, leftover)
		batchProfit += leftover.ProfitPerBatch
	}

	result.VariantResults = variantResults
	result.ProfitPerBatch = Round2(batchProfit)
	return result
}
