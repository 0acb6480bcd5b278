package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/stability"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preset != DefaultPreset {
		t.Errorf("expected preset default, got %s", cfg.Preset)
	}
	if cfg.System.PlanetMass != 28 {
		t.Errorf("expected planet mass 28, got %f", cfg.System.PlanetMass)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.yaml")

	cfg := GetPreset("balanced")
	cfg.Sim.Speed = 2.5
	cfg.Sim.Ticks = 120

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.System != cfg.System {
		t.Errorf("system mismatch: %+v vs %+v", loaded.System, cfg.System)
	}
	if loaded.Sim != cfg.Sim {
		t.Errorf("sim mismatch: %+v vs %+v", loaded.Sim, cfg.Sim)
	}
	if loaded.Preset != "balanced" {
		t.Errorf("expected preset balanced, got %s", loaded.Preset)
	}
}

func TestLoadPartialKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "system:\n  submoon_orbit_radius: 0.65\nsim:\n  speed: 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("marginal")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.System.SubmoonOrbitRadius != 0.65 {
		t.Errorf("expected submoon radius 0.65, got %f", cfg.System.SubmoonOrbitRadius)
	}
	if cfg.System.PlanetMass != 45 {
		t.Errorf("expected planet mass kept at 45, got %f", cfg.System.PlanetMass)
	}
	if cfg.Sim.Speed != 3 || cfg.Sim.Ticks != DefaultTicks {
		t.Errorf("unexpected sim block %+v", cfg.Sim)
	}
	if base.System.SubmoonOrbitRadius != 0.75 {
		t.Error("LoadOver modified its base")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("system: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero moon mass", func(c *Config) { c.System.MoonMass = 0 }},
		{"negative speed", func(c *Config) { c.Sim.Speed = -1 }},
		{"zero ticks", func(c *Config) { c.Sim.Ticks = 0 }},
		{"zero fps", func(c *Config) { c.Sim.FPS = 0 }},
		{"negative sample", func(c *Config) { c.Sim.SampleEvery = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPresetsAreValid(t *testing.T) {
	for name, p := range Presets {
		if err := p.Params.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		if _, err := physics.Derive(p.Params); err != nil {
			t.Errorf("preset %s: derive failed: %v", name, err)
		}
		if p.Description == "" {
			t.Errorf("preset %s has no description", name)
		}
	}
}

func TestPresetScores(t *testing.T) {
	tests := []struct {
		preset string
		score  int
		tier   stability.Tier
	}{
		{"default", 90, stability.TierHigh},
		{"optimal", 80, stability.TierHigh},
		{"balanced", 90, stability.TierHigh},
		{"marginal", 35, stability.TierLow},
		{"unstable", 0, stability.TierVeryLow},
	}

	for _, tt := range tests {
		cfg := GetPreset(tt.preset)
		stats := stability.Score(cfg.System, physics.Derived{})
		if stats.Score != tt.score || stats.Tier != tt.tier {
			t.Errorf("preset %s: expected %d/%s, got %d/%s", tt.preset, tt.score, tt.tier, stats.Score, stats.Tier)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("optimal")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.System.SubmoonMass != 0.08 {
		t.Errorf("expected submoon mass 0.08, got %f", cfg.System.SubmoonMass)
	}

	cfg.System.SubmoonMass = 99
	if GetPreset("optimal").System.SubmoonMass != 0.08 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("presets not sorted: %v", names)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"planet_mass", 500, 100},
		{"planet_mass", 0, 1},
		{"submoon_orbit_radius", 0.5, 0.5},
		{SpeedKey, -1, 0},
		{"unknown", 42, 42},
	}

	for _, tt := range tests {
		if got := Clamp(tt.name, tt.in); got != tt.want {
			t.Errorf("Clamp(%s, %f) = %f, want %f", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestNudge(t *testing.T) {
	if got := Nudge("submoon_orbit_radius", 0.5, 1); got != 0.55 {
		t.Errorf("expected 0.55, got %f", got)
	}
	if got := Nudge("moon_mass", 0.1, -1); got != 0.1 {
		t.Errorf("expected clamp at 0.1, got %f", got)
	}
	if got := Nudge(SpeedKey, 4.95, 3); got != 5 {
		t.Errorf("expected clamp at 5, got %f", got)
	}
}

func TestParamKeys(t *testing.T) {
	keys := ParamKeys()
	if len(keys) != 6 {
		t.Fatalf("expected 6 keys, got %d", len(keys))
	}
	for _, k := range keys {
		if _, ok := Bounds[k]; !ok {
			t.Errorf("key %s has no bound", k)
		}
	}
}
