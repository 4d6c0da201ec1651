package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ovenstack/batchprice/internal/db"
	"github.com/ovenstack/batchprice/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := Config{Currency: "EUR"}

	for i := 0; i < 10; i++ {
		stats, err := Run(database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 2 {
				t.Fatalf("expected 2 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM pricing_defaults WHERE id = 1 AND currency = ?`, "EUR", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM presets WHERE name = ?`, samplePresetName, 1)
}

func TestRunDefaultsCurrencyWhenUnset(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-currency-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	if _, err := Run(database, Config{}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM pricing_defaults WHERE id = 1 AND currency = ?`, "USD", 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, arg any, want int) {
	t.Helper()

	var got int
	if err := database.QueryRow(query, arg).Scan(&got); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if got != want {
		t.Fatalf("count = %d, want %d (query: %s)", got, want, query)
	}
}
