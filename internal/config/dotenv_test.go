package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	t.Setenv("BP_ONE", "")
	t.Setenv("BP_TWO", "")
	t.Setenv("BP_THREE", "")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := []byte(`
# comment
not a pair

BP_ONE=alpha
export BP_TWO=beta
BP_THREE='gamma'
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("BP_ONE"); got != "alpha" {
		t.Fatalf("BP_ONE=%q, want %q", got, "alpha")
	}
	if got := os.Getenv("BP_TWO"); got != "beta" {
		t.Fatalf("BP_TWO=%q, want %q", got, "beta")
	}
	if got := os.Getenv("BP_THREE"); got != "gamma" {
		t.Fatalf("BP_THREE=%q, want %q", got, "gamma")
	}
}

func TestLoadDotEnv_DoesNotOverrideExistingVariables(t *testing.T) {
	t.Setenv("BP_KEEP", "original")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BP_KEEP=overwritten\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("BP_KEEP"); got != "original" {
		t.Fatalf("BP_KEEP=%q, want %q", got, "original")
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
