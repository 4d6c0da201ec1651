package pricing

import "math"

// TotalIngredientCost sums ingredient costs for one batch. Entries with
// a negative or NaN cost contribute nothing: the calculator runs live
// while a form row is still half-filled, and a bad row must not poison
// the total. Returns 0 for an empty or nil list.
func TotalIngredientCost(ingredients []Ingredient) float64 {
	total := 0.0
	for _, ing := range ingredients {
		if math.IsNaN(ing.Cost) || ing.Cost < 0 {
			continue
		}
		total += ing.Cost
	}
	return Round2(total)
}

// CostPerUnit divides a batch cost by its yield. A zero or negative
// batch size, or a negative cost, resolves to 0 rather than dividing by
// zero.
func CostPerUnit(totalCost, batchSize float64) float64 {
	if batchSize <= 0 || totalCost < 0 {
		return 0
	}
	return Round2(totalCost / batchSize)
}
