package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ndbaker1/tanks/internal/game"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("port = %q, want 8000", cfg.Port)
	}
	if cfg.TickRate != game.TickRate {
		t.Errorf("tick rate = %d, want %d", cfg.TickRate, game.TickRate)
	}
	if cfg.MapName != game.DefaultMapName {
		t.Errorf("map name = %q, want %q", cfg.MapName, game.DefaultMapName)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, "port: \"9000\"\ntick_rate: 30\nmap_name: EMPTY\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9000" || cfg.TickRate != 30 || cfg.MapName != "EMPTY" {
		t.Errorf("cfg = %+v, want port 9000, tick_rate 30, map EMPTY", cfg)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "port: \"9000\"\n")
	t.Setenv("PORT", "7777")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7777" {
		t.Errorf("port = %q, want env value 7777", cfg.Port)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}

	path := writeConfigFile(t, "tick_rate: -5\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for a non-positive tick rate")
	}
}
