package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/submoonsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset      = "default"
	DefaultSpeed       = 1.0
	DefaultTicks       = 3600
	DefaultFPS         = 60.0
	DefaultSampleEvery = 10
)

type Config struct {
	Preset string         `yaml:"preset,omitempty"`
	System physics.Params `yaml:"system"`
	Sim    SimConfig      `yaml:"sim"`
}

type SimConfig struct {
	Speed       float64 `yaml:"speed"`
	Ticks       int     `yaml:"ticks"`
	FPS         float64 `yaml:"fps"`
	SampleEvery int     `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: DefaultPreset,
		System: Presets[DefaultPreset].Params,
		Sim: SimConfig{
			Speed:       DefaultSpeed,
			Ticks:       DefaultTicks,
			FPS:         DefaultFPS,
			SampleEvery: DefaultSampleEvery,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base. Keys missing from the
// file keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the system parameters and the sim block.
func (c *Config) Validate() error {
	if err := c.System.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.Sim.Speed) || math.IsInf(c.Sim.Speed, 0) || c.Sim.Speed < 0 {
		return fmt.Errorf("sim.speed must be finite and non-negative, got %g", c.Sim.Speed)
	}
	if c.Sim.Ticks <= 0 {
		return fmt.Errorf("sim.ticks must be positive, got %d", c.Sim.Ticks)
	}
	if !(c.Sim.FPS > 0) || math.IsInf(c.Sim.FPS, 0) {
		return fmt.Errorf("sim.fps must be positive, got %g", c.Sim.FPS)
	}
	if c.Sim.SampleEvery < 0 {
		return fmt.Errorf("sim.sample_every must not be negative, got %d", c.Sim.SampleEvery)
	}
	return nil
}
