package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.TickInterval != 200*time.Millisecond {
		t.Errorf("port %q interval %v, want 8080 / 200ms", cfg.Port, cfg.TickInterval)
	}
	if cfg.Rules.MapSize != 20 || cfg.Rules.MaxAttackers != 5 {
		t.Errorf("rules = %+v, want defaults", cfg.Rules)
	}
	if cfg.Seed == 0 {
		t.Error("seed should be randomized when not configured")
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	yaml := "seed: 42\nbots: 3\nrules:\n  map_size: 8\n  siege_interval: 2s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MMO_PORT", "9090")
	t.Setenv("MMO_TICK_INTERVAL", "100ms")
	t.Setenv("MMO_RULES_MAX_ATTACKERS", "7")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	tests := []struct {
		name      string
		got, want any
	}{
		{"seed from file", cfg.Seed, int64(42)},
		{"bots from file", cfg.Bots, 3},
		{"map size from file", cfg.Rules.MapSize, 8},
		{"siege interval from file", cfg.Rules.SiegeInterval, 2 * time.Second},
		{"port from env", cfg.Port, "9090"},
		{"tick from env", cfg.TickInterval, 100 * time.Millisecond},
		{"attackers from env", cfg.Rules.MaxAttackers, 7},
		{"untouched default", cfg.Rules.SiteBaseBricks, 10},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	cfg.TickInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero tick interval should be rejected")
	}
	cfg = NewConfig()
	cfg.Rules.MapSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero map size should be rejected")
	}
	if err := NewConfig().Validate(); err != nil {
		t.Errorf("defaults rejected: %v", err)
	}
}
