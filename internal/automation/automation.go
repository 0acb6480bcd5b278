package automation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/san-kum/submoonsim/internal/config"
	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/sim"
	"github.com/san-kum/submoonsim/internal/stability"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of parameter changes applied to one
// running system. A nil Speed means the default speed; zero is allowed.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Speed       *float64       `yaml:"speed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep changes parameters and then advances the system.
// Params are keyed by their yaml names. With Reset the phases restart
// from zero, otherwise the bodies keep their angles.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
	Ticks  int                `yaml:"ticks"`
	Speed  *float64           `yaml:"speed"`
	Reset  bool               `yaml:"reset"`
}

// StepResult is the state of the system at the end of a step.
type StepResult struct {
	Name   string
	Frames int
	Final  dynamo.Snapshot
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if scenario.Preset == "" {
		scenario.Preset = config.DefaultPreset
	}
	return &scenario, nil
}

// RunScenario executes all steps in order on a single engine. It stops at
// the first failing step and returns the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	preset := config.GetPreset(scenario.Preset)
	if preset == nil {
		return nil, fmt.Errorf("unknown preset %q", scenario.Preset)
	}

	eng, err := dynamo.NewWithParams(preset.System)
	if err != nil {
		return nil, err
	}
	speed := config.DefaultSpeed
	if scenario.Speed != nil {
		speed = *scenario.Speed
	}
	d, err := sim.NewDriver(eng, speed)
	if err != nil {
		return nil, err
	}
	runner := sim.NewRunner(d)

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		log.Printf("running %s (%d/%d)", name, i+1, len(scenario.Steps))

		p, err := applyParams(eng.Params(), step.Params)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		if step.Reset {
			_, err = eng.Configure(p)
		} else {
			_, err = eng.Update(p)
		}
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		if step.Speed != nil {
			if err := d.SetSpeed(*step.Speed); err != nil {
				return results, fmt.Errorf("%s: %w", name, err)
			}
		}

		ticks := step.Ticks
		if ticks <= 0 {
			ticks = config.DefaultTicks
		}
		result, err := runner.Run(ctx, sim.Config{Ticks: ticks, SampleEvery: ticks})
		if err != nil {
			return results, fmt.Errorf("%s run: %w", name, err)
		}

		results = append(results, StepResult{Name: name, Frames: result.Frames, Final: result.Final})
	}

	return results, nil
}

func applyParams(p physics.Params, changes map[string]float64) (physics.Params, error) {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var err error
		p, err = p.With(k, changes[k])
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// MonteCarloConfig perturbs every parameter of a base system by a uniform
// relative amount and scores each trial.
type MonteCarloConfig struct {
	Base         physics.Params
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult is one scored trial.
type MonteCarloResult struct {
	TrialID int
	Params  physics.Params
	Stats   stability.Stats
	Stable  bool
}

// RunMonteCarlo scores randomly perturbed copies of the base system.
// Trials that leave the valid parameter domain are counted as unstable.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	if cfg.Perturbation < 0 || cfg.Perturbation >= 1 {
		return nil, fmt.Errorf("perturbation must be in [0, 1), got %g", cfg.Perturbation)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p := cfg.Base
		for _, f := range cfg.Base.Fields() {
			p, _ = p.With(f.Name, f.Value*(1+(rng.Float64()-0.5)*2*cfg.Perturbation))
		}

		r := MonteCarloResult{TrialID: trial, Params: p}
		if d, err := physics.Derive(p); err == nil {
			r.Stats = dynamo.ComputeStability(p, d)
			r.Stable = r.Stats.Tier == stability.TierHigh || r.Stats.Tier == stability.TierMedium
		}
		results = append(results, r)
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
