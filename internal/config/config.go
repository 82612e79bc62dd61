package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/normalize"
	"github.com/san-kum/aviasim/internal/scenario"
)

const (
	DefaultSamples         = 50
	DefaultIntegrator      = "rk45"
	DefaultTolerance       = 1e-6
	DefaultAbsTolerance    = 1e-9
	DefaultMaxSteps        = 100000
	DefaultSubsteps        = 10
	DefaultDivergenceLimit = 10.0
	DefaultTimeout         = 5 * time.Second
	DefaultWindow          = 5
	DefaultSmoothPoints    = 1000
)

type Config struct {
	Samples         int            `yaml:"samples"`
	Integrator      string         `yaml:"integrator"`
	Tolerance       float64        `yaml:"tolerance"`
	AbsTolerance    float64        `yaml:"abs_tolerance"`
	MaxSteps        int            `yaml:"max_steps"`
	Substeps        int            `yaml:"substeps"`
	DivergenceLimit float64        `yaml:"divergence_limit"`
	Timeout         time.Duration  `yaml:"timeout"`
	LogLevel        string         `yaml:"log_level"`
	OutputDir       string         `yaml:"output_dir"`
	Scenario        ScenarioConfig `yaml:"scenario"`
	Display         DisplayConfig  `yaml:"display"`
}

type ScenarioConfig struct {
	// Mode is fixed, random or override.
	Mode string `yaml:"mode"`
	// Seed feeds random mode and jitter. Runs with equal seeds are identical.
	Seed int64 `yaml:"seed"`
	// Policy is strict or autocorrect.
	Policy string `yaml:"policy"`
	// AcceptParams lets overrides replace driver and coupling parameters.
	AcceptParams bool `yaml:"accept_params"`
	// Jitter is the amplitude of uniform noise added to the initial state.
	Jitter    float64           `yaml:"jitter"`
	Overrides map[string]string `yaml:"overrides,omitempty"`
}

type DisplayConfig struct {
	Window       int     `yaml:"window"`
	SmoothPoints int     `yaml:"smooth_points"`
	Clip         string  `yaml:"clip"`
	Floor        float64 `yaml:"floor"`
}

func DefaultConfig() *Config {
	return &Config{
		Samples:         DefaultSamples,
		Integrator:      DefaultIntegrator,
		Tolerance:       DefaultTolerance,
		AbsTolerance:    DefaultAbsTolerance,
		MaxSteps:        DefaultMaxSteps,
		Substeps:        DefaultSubsteps,
		DivergenceLimit: DefaultDivergenceLimit,
		Timeout:         DefaultTimeout,
		LogLevel:        "info",
		OutputDir:       "out",
		Scenario: ScenarioConfig{
			Mode:   "fixed",
			Policy: "strict",
		},
		Display: DisplayConfig{
			Window:       DefaultWindow,
			SmoothPoints: DefaultSmoothPoints,
			Clip:         "hard",
		},
	}
}

// Load reads a YAML file over DefaultConfig, so omitted keys keep defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := scenario.ParseMode(c.Scenario.Mode); err != nil {
		return err
	}
	if _, err := scenario.ParsePolicy(c.Scenario.Policy); err != nil {
		return err
	}
	if c.Scenario.Jitter < 0 {
		return fmt.Errorf("jitter must not be negative, got %g", c.Scenario.Jitter)
	}
	if _, err := c.DisplayOptions(); err != nil {
		return err
	}
	return nil
}

func (c *Config) SimConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Samples = c.Samples
	cfg.Tolerance = dynamo.Tolerance{Rel: c.Tolerance, Abs: c.AbsTolerance}
	cfg.MaxSteps = c.MaxSteps
	cfg.Substeps = c.Substeps
	cfg.DivergenceLimit = c.DivergenceLimit
	return cfg
}

func (c *Config) DisplayOptions() (display.Options, error) {
	mode, err := normalize.ParseMode(c.Display.Clip)
	if err != nil {
		return display.Options{}, err
	}
	if mode != normalize.HardClip && mode != normalize.GentleClip {
		return display.Options{}, fmt.Errorf("display clip must be hard or gentle, got %s", c.Display.Clip)
	}
	if c.Display.Floor < 0 || c.Display.Floor >= 1 {
		return display.Options{}, fmt.Errorf("display floor must be in [0, 1), got %g", c.Display.Floor)
	}
	return display.Options{
		Window:       c.Display.Window,
		SmoothPoints: c.Display.SmoothPoints,
		Clip:         mode,
		Floor:        c.Display.Floor,
	}, nil
}

// BuilderOptions translates the scenario section into builder options.
func (c *Config) BuilderOptions() ([]scenario.Option, error) {
	policy, err := scenario.ParsePolicy(c.Scenario.Policy)
	if err != nil {
		return nil, err
	}
	return []scenario.Option{
		scenario.WithSeed(c.Scenario.Seed),
		scenario.WithPolicy(policy),
		scenario.WithParams(c.Scenario.AcceptParams),
	}, nil
}
