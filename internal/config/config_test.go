package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"

	"github.com/liftmate/liftmate/internal/units"
)

const validYAML = `
database:
  path: /tmp/lifts.db
log:
  level: debug
  file: /tmp/liftmate.log
  json: true
defaults:
  unit: lb
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/tmp/lifts.db" {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, "/tmp/lifts.db")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Log.JSON {
		t.Error("log.json = false, want true")
	}
	if cfg.Defaults.Unit != units.Pounds {
		t.Errorf("defaults.unit = %q, want lb", cfg.Defaults.Unit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("cfg = %+v, want defaults %+v", *cfg, *Default())
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "database:\n  path: x.db\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Defaults.Unit != units.Kilograms {
		t.Errorf("defaults.unit = %q, want kg", cfg.Defaults.Unit)
	}
}

// Env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTMATE_DB", "/data/override.db")
	t.Setenv("LIFTMATE_LOG_LEVEL", "info")
	t.Setenv("LIFTMATE_LOG_JSON", "false")
	t.Setenv("LIFTMATE_UNIT", "kg")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/data/override.db" {
		t.Errorf("database.path = %q, want override", cfg.Database.Path)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.JSON {
		t.Error("log.json = true, want false")
	}
	if cfg.Defaults.Unit != units.Kilograms {
		t.Errorf("defaults.unit = %q, want kg", cfg.Defaults.Unit)
	}
	if cfg.Log.File != "/tmp/liftmate.log" {
		t.Errorf("log.file = %q, want YAML value", cfg.Log.File)
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeTemp(t, "log:\n  level: loud\ndefaults:\n  unit: stone\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(multierr.Errors(errors.Unwrap(err))); n != 2 {
		t.Errorf("got %d validation errors, want 2: %v", n, err)
	}
	if !errors.Is(err, units.ErrUnknownUnit) {
		t.Errorf("error %v does not wrap ErrUnknownUnit", err)
	}

	if _, err := Load(writeTemp(t, "log: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("LIFTMATE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/xdg/liftmate/config.yaml" {
		t.Errorf("DefaultPath() = %q", p)
	}

	t.Setenv("LIFTMATE_CONFIG", "/etc/liftmate.yaml")
	if p, _ := DefaultPath(); p != "/etc/liftmate.yaml" {
		t.Errorf("DefaultPath() = %q, want LIFTMATE_CONFIG", p)
	}
}
