package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ovenstack/batchprice/internal/pricing"
)

func main() {
	app := &cli.App{
		Name:  "batchprice",
		Usage: "cost and pricing calculator for small-batch producers",
		Commands: []*cli.Command{
			calculateCommand(),
			marketCommand(),
			convertCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// calculationFile is the on-disk shape the calculate command reads:
// the calculator input plus the pricing config to apply.
type calculationFile struct {
	Input  pricing.Input  `json:"input"`
	Config pricing.Config `json:"config"`
}

func calculateCommand() *cli.Command {
	return &cli.Command{
		Name:  "calculate",
		Usage: "run a full pricing pass over an input file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Usage:    "path to a JSON file with the calculation input and config",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "override the pricing strategy (markup or margin)",
			},
			&cli.Float64Flag{
				Name:  "value",
				Usage: "override the strategy percentage",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit the raw result as JSON",
			},
		},
		Action: runCalculate,
	}
}

func runCalculate(c *cli.Context) error {
	raw, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	var doc calculationFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}

	if c.IsSet("strategy") {
		doc.Config.Strategy = pricing.Strategy(c.String("strategy"))
	}
	if c.IsSet("value") {
		doc.Config.Value = c.Float64("value")
	}
	if doc.Config.Strategy != pricing.StrategyMarkup && doc.Config.Strategy != pricing.StrategyMargin {
		return fmt.Errorf("strategy must be markup or margin, got %q", doc.Config.Strategy)
	}

	result := pricing.Calculate(doc.Input, doc.Config)

	if c.Bool("json") {
		return printJSON(result)
	}

	printResult(doc.Input.ProductName, result)
	return nil
}

func printResult(name string, result pricing.Result) {
	if name == "" {
		name = "(unnamed product)"
	}
	fmt.Println(name)
	fmt.Printf("  %-20s %10.2f\n", "Total cost", result.TotalCost)
	fmt.Printf("  %-20s %10.2f\n", "Cost per unit", result.CostPerUnit)
	fmt.Printf("  %-20s %10.2f\n", "Break-even price", result.BreakEvenPrice)
	fmt.Printf("  %-20s %10.2f\n", "Recommended price", result.RecommendedPrice)
	fmt.Printf("  %-20s %10.2f\n", "Profit per unit", result.ProfitPerUnit)
	fmt.Printf("  %-20s %9.2f%%\n", "Profit margin", result.ProfitMarginPercent)
	fmt.Printf("  %-20s %10.2f\n", "Profit per batch", result.ProfitPerBatch)

	if len(result.VariantResults) == 0 {
		return
	}

	fmt.Println("Variants:")
	for _, v := range result.VariantResults {
		fmt.Printf("  %-24s batch %7.2f  cost/unit %8.2f  price %8.2f  profit/batch %8.2f\n",
			v.Name, v.BatchSize, v.CostPerUnit, v.RecommendedPrice, v.ProfitPerBatch)
	}
}

func marketCommand() *cli.Command {
	return &cli.Command{
		Name:  "market",
		Usage: "rank a price against competitor prices",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "price",
				Usage:    "your current or candidate price",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "competitors",
				Usage:    "comma-separated competitor prices, e.g. 8.50,9.20,11",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit the raw result as JSON",
			},
		},
		Action: runMarket,
	}
}

func runMarket(c *cli.Context) error {
	competitors, err := parsePriceList(c.String("competitors"))
	if err != nil {
		return err
	}

	market, err := pricing.MarketPosition(c.Float64("price"), competitors)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return printJSON(market)
	}

	fmt.Printf("Range %.2f - %.2f (avg %.2f)\n", market.MinPrice, market.MaxPrice, market.AvgPrice)
	fmt.Printf("Your price sits at the %.0fth percentile: %s\n", market.Percentile, market.Position)
	return nil
}

func parsePriceList(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	prices := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		price, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid competitor price %q", part)
		}
		prices = append(prices, price)
	}
	return prices, nil
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "convert between equivalent markup and margin percentages",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "markup",
				Usage: "markup percentage to express as a margin",
			},
			&cli.Float64Flag{
				Name:  "margin",
				Usage: "margin percentage to express as a markup",
			},
		},
		Action: runConvert,
	}
}

func runConvert(c *cli.Context) error {
	switch {
	case c.IsSet("markup") && c.IsSet("margin"):
		return fmt.Errorf("pass either --markup or --margin, not both")
	case c.IsSet("markup"):
		markup := c.Float64("markup")
		fmt.Printf("%.2f%% markup = %.2f%% margin\n", markup, pricing.EquivalentMargin(markup))
	case c.IsSet("margin"):
		margin := c.Float64("margin")
		if margin >= 100 {
			return fmt.Errorf("a margin of 100%% or more has no markup equivalent")
		}
		fmt.Printf("%.2f%% margin = %.2f%% markup\n", margin, pricing.EquivalentMarkup(margin))
	default:
		return fmt.Errorf("pass --markup or --margin")
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
