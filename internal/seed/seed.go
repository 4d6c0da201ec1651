package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ovenstack/batchprice/internal/pricing"
)

const (
	defaultStrategy  = string(pricing.StrategyMarkup)
	defaultValue     = 50
	samplePresetName = "Sourdough loaf"
)

// Config contains the values required by startup seed.
type Config struct {
	Currency string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the pricing
// defaults singleton always exists afterwards, and a first-run database
// gets one sample preset so the calculator is not empty on first open.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureDefaults(tx, cfg.Currency, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureSamplePreset(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureDefaults(tx *sql.Tx, currency string, stats *Stats) error {
	if currency == "" {
		currency = "USD"
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM pricing_defaults WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check pricing defaults existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO pricing_defaults (id, strategy, value, currency)
		VALUES (1, ?, ?, ?)
	`, defaultStrategy, defaultValue, currency); err != nil {
		return fmt.Errorf("insert pricing defaults singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureSamplePreset(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM presets WHERE name = ? LIMIT 1)`, samplePresetName).Scan(&exists); err != nil {
		return fmt.Errorf("check sample preset existence: %w", err)
	}
	if exists {
		return nil
	}

	input := pricing.Input{
		ProductName: "Sourdough loaf",
		BatchSize:   8,
		Ingredients: []pricing.Ingredient{
			{ID: "flour", Name: "Bread flour", Amount: 4, Cost: 6.4},
			{ID: "salt", Name: "Salt", Amount: 0.1, Cost: 0.3},
		},
		LaborCost: 24,
		Overhead:  8,
	}
	config := pricing.Config{Strategy: pricing.StrategyMarkup, Value: defaultValue}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal sample preset input: %w", err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal sample preset config: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO presets (id, name, kind, input_json, config_json)
		VALUES (?, ?, 'single', ?, ?)
	`, uuid.NewString(), samplePresetName, string(inputJSON), string(configJSON)); err != nil {
		return fmt.Errorf("insert sample preset: %w", err)
	}
	stats.Inserts++
	return nil
}
