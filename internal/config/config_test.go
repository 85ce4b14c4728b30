package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONEYLENS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.CurrencySymbol != "$" {
		t.Fatalf("currency = %q, want $", cfg.UI.CurrencySymbol)
	}
	if cfg.UI.DateFormat != "02/01" {
		t.Fatalf("date format = %q, want 02/01", cfg.UI.DateFormat)
	}
	if cfg.Database.Path == "" {
		t.Fatal("database path default missing")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MONEYLENS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MONEYLENS_UI_CURRENCY_SYMBOL", "€")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.CurrencySymbol != "€" {
		t.Fatalf("currency = %q, want env override", cfg.UI.CurrencySymbol)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("MONEYLENS_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: "/tmp/ml.db"},
		UI:       UIConfig{DateFormat: "01/02", CurrencySymbol: "£", Timezone: "UTC"},
	}
	if err := Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UI.CurrencySymbol != "£" || got.UI.DateFormat != "01/02" || got.Database.Path != "/tmp/ml.db" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLocationFallback(t *testing.T) {
	if loc := (UIConfig{Timezone: "UTC"}).Location(); loc != time.UTC {
		t.Fatalf("location = %v, want UTC", loc)
	}
	if loc := (UIConfig{Timezone: "Not/AZone"}).Location(); loc != time.Local {
		t.Fatalf("bad zone must fall back to local, got %v", loc)
	}
}
