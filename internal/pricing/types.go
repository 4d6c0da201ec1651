package pricing

// Strategy selects how a recommended price is derived from cost.
type Strategy string

const (
	// StrategyMarkup prices at cost * (1 + value/100).
	StrategyMarkup Strategy = "markup"
	// StrategyMargin prices at cost / (1 - value/100), so that value
	// percent of the selling price is profit.
	StrategyMargin Strategy = "margin"
)

// Config pairs a pricing strategy with its percentage value.
type Config struct {
	Strategy Strategy `json:"strategy"`
	Value    float64  `json:"value"`
}

// Ingredient is one cost line of a recipe. Amount is the purchase
// quantity and is informational; only Cost feeds the batch total.
type Ingredient struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Cost   float64 `json:"cost"`
}

// Variant is a sub-allocation of a shared batch: it claims BatchSize
// units of the base recipe's yield, adds its own costs on top, and is
// priced under its own strategy.
type Variant struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	BatchSize           float64      `json:"batchSize"`
	Ingredients         []Ingredient `json:"ingredients,omitempty"`
	LaborCost           float64      `json:"laborCost"`
	Overhead            float64      `json:"overhead"`
	Pricing             Config       `json:"pricingConfig"`
	CurrentSellingPrice float64      `json:"currentSellingPrice,omitempty"`
}

// Input is everything a calculation pass needs. BatchSize is the total
// yield of one production run and is shared between the base product
// and any variants.
type Input struct {
	ProductName         string       `json:"productName"`
	BatchSize           float64      `json:"batchSize"`
	Ingredients         []Ingredient `json:"ingredients"`
	LaborCost           float64      `json:"laborCost"`
	Overhead            float64      `json:"overhead"`
	CurrentSellingPrice float64      `json:"currentSellingPrice,omitempty"`
	HasVariants         bool         `json:"hasVariants,omitempty"`
	Variants            []Variant    `json:"variants,omitempty"`
}

// Breakdown itemizes where the batch cost came from.
type Breakdown struct {
	Ingredients float64 `json:"ingredients"`
	Labor       float64 `json:"labor"`
	Overhead    float64 `json:"overhead"`
}

// VariantResult holds the per-variant figures of one calculation pass.
// ProfitPerBatch is this variant's contribution to the batch total
// (ProfitPerUnit times the batch units it claims). The Current* fields
// compare against an actual selling price when one was given; they sit
// alongside the recommendation, never replace it.
type VariantResult struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	BatchSize            float64 `json:"batchSize"`
	TotalCost            float64 `json:"totalCost"`
	CostPerUnit          float64 `json:"costPerUnit"`
	RecommendedPrice     float64 `json:"recommendedPrice"`
	ProfitPerUnit        float64 `json:"profitPerUnit"`
	ProfitMarginPercent  float64 `json:"profitMarginPercent"`
	ProfitPerBatch       float64 `json:"profitPerBatch"`
	CurrentSellingPrice  float64 `json:"currentSellingPrice,omitempty"`
	CurrentProfitPerUnit float64 `json:"currentProfitPerUnit,omitempty"`
	CurrentProfitMargin  float64 `json:"currentProfitMargin,omitempty"`
}

// Result is the immutable output of one calculation pass. When variants
// exist, the top-level figures stay the base product's own numbers and
// VariantResults carries the itemized breakdown; ProfitPerBatch is then
// the sum of all variant contributions, which diverges from
// ProfitPerUnit * BatchSize once variants price differently.
type Result struct {
	TotalCost           float64         `json:"totalCost"`
	CostPerUnit         float64         `json:"costPerUnit"`
	BreakEvenPrice      float64         `json:"breakEvenPrice"`
	RecommendedPrice    float64         `json:"recommendedPrice"`
	ProfitPerBatch      float64         `json:"profitPerBatch"`
	ProfitPerUnit       float64         `json:"profitPerUnit"`
	ProfitMarginPercent float64         `json:"profitMarginPercent"`
	Breakdown           Breakdown       `json:"breakdown"`
	VariantResults      []VariantResult `json:"variantResults,omitempty"`
}
