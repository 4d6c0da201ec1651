package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const sqliteDialect = "sqlite3"

// Up applies all pending schema migrations. The SQL files are embedded
// so the binary carries its own schema and tests can migrate a
// throwaway database without knowing where the source tree lives.
func Up(db *sql.DB) error {
	goose.SetBaseFS(files)

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
