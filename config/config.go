// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Agents    AgentsConfig    `yaml:"agents"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Run       RunConfig       `yaml:"run"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Screen    ScreenConfig    `yaml:"screen"`
	Output    OutputConfig    `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AgentsConfig holds the initial population.
type AgentsConfig struct {
	Count          int `yaml:"count"`
	MemoryCapacity int `yaml:"memory_capacity"` // 0 disables memory
}

// PheromoneConfig holds field parameters.
type PheromoneConfig struct {
	DepositAmount   float64 `yaml:"deposit_amount"`
	RetentionFactor float64 `yaml:"retention_factor"`
	SpreadEnabled   bool    `yaml:"spread_enabled"`
}

// RunConfig holds run length and cadence.
type RunConfig struct {
	Ticks         int    `yaml:"ticks"`
	Seed          uint64 `yaml:"seed"` // 0 = time based
	ProgressEvery int    `yaml:"progress_every"`
	SnapshotEvery int    `yaml:"snapshot_every"`
}

// TelemetryConfig holds telemetry window sizes, in ticks.
type TelemetryConfig struct {
	Window     int `yaml:"window"`
	PerfWindow int `yaml:"perf_window"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	TargetFPS     int `yaml:"target_fps"`
	StepsPerFrame int `yaml:"steps_per_frame"`
}

// OutputConfig holds output file names.
type OutputConfig struct {
	Image string `yaml:"image"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells     int     // World.Width * World.Height
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	CellW32   float32 // screen pixels per cell, horizontally
	CellH32   float32 // screen pixels per cell, vertically
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world: width and height must be > 0, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.Agents.Count < 0 {
		errs = append(errs, fmt.Errorf("agents.count must be >= 0, got %d", c.Agents.Count))
	}
	if c.Agents.MemoryCapacity < 0 {
		errs = append(errs, fmt.Errorf("agents.memory_capacity must be >= 0, got %d", c.Agents.MemoryCapacity))
	}
	if c.Pheromone.DepositAmount < 0 {
		errs = append(errs, fmt.Errorf("pheromone.deposit_amount must be >= 0, got %v", c.Pheromone.DepositAmount))
	}
	if r := c.Pheromone.RetentionFactor; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("pheromone.retention_factor must be in [0,1], got %v", r))
	}
	if c.Run.Ticks < 0 {
		errs = append(errs, fmt.Errorf("run.ticks must be >= 0, got %d", c.Run.Ticks))
	}
	if c.Telemetry.Window <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.window must be > 0, got %d", c.Telemetry.Window))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Screen.StepsPerFrame < 1 {
		c.Screen.StepsPerFrame = 1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 1
	}

	c.Derived.Cells = c.World.Width * c.World.Height
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CellW32 = c.Derived.ScreenW32 / float32(c.World.Width)
	c.Derived.CellH32 = c.Derived.ScreenH32 / float32(c.World.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
