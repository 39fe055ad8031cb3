package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"habitat_service/internal/core"
)

var ErrUnknownSpecies = errors.New("unknown pollinator species")

// Config holds all user-facing configuration for the habitat service.
type Config struct {
	Log       LogConfig         `toml:"log"`
	Analysis  AnalysisConfig    `toml:"analysis"`
	Engine    core.Thresholds   `toml:"engine"`
	Species   []core.Pollinator `toml:"species"`
	Postgres  PostgresConfig    `toml:"postgres"`
	Overpass  OverpassConfig    `toml:"overpass"`
	ZoneModel ZoneModelConfig   `toml:"zone_model"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AnalysisConfig struct {
	DefaultSpecies string `toml:"default_species"`
	SaveRuns       bool   `toml:"save_runs"`
}

type PostgresConfig struct {
	URL string `toml:"url"`
}

type OverpassConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type ZoneModelConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Defaults returns a Config populated with built-in default values.
// Flight ranges are rough placeholders, not field-validated figures.
func Defaults() *Config {
	return &Config{
		Log:      LogConfig{Level: "info"},
		Analysis: AnalysisConfig{DefaultSpecies: "Bumble Bee"},
		Engine:   core.DefaultThresholds(),
		Species: []core.Pollinator{
			{Name: "Bumble Bee", FlightRange: 1000},
			{Name: "Honey Bee", FlightRange: 3000},
			{Name: "Mason Bee", FlightRange: 300},
			{Name: "Monarch Butterfly", FlightRange: 2000},
			{Name: "Hummingbird", FlightRange: 1500},
		},
		Overpass:  OverpassConfig{TimeoutSeconds: 30},
		ZoneModel: ZoneModelConfig{TimeoutSeconds: 10},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides connection settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("POSTGRES_URL"); v != "" {
		c.Postgres.URL = v
	}
	if v := getenv("OVERPASS_URL"); v != "" {
		c.Overpass.URL = v
	}
	if v := getenv("ZONE_MODEL_URL"); v != "" {
		c.ZoneModel.URL = v
	}
	if v := getenv("SAVE_ANALYSIS_RUNS"); v != "" {
		c.Analysis.SaveRuns = v == "true"
	}
}

func (c *Config) Validate() error {
	if c.Engine.ForagingRadius <= 0 {
		return fmt.Errorf("engine.foraging_radius must be positive")
	}
	if c.Engine.DensityCellDegrees <= 0 {
		return fmt.Errorf("engine.density_cell_degrees must be positive")
	}
	if c.Engine.MaxGridCells < 0 {
		return fmt.Errorf("engine.max_grid_cells must not be negative")
	}
	if c.Engine.MaxGapZones < 0 {
		return fmt.Errorf("engine.max_gap_zones must not be negative")
	}
	if !(c.Engine.ZoneBandNear <= c.Engine.ZoneBandMid && c.Engine.ZoneBandMid <= c.Engine.ZoneBandFar) {
		return fmt.Errorf("engine zone bands must be ordered near <= mid <= far")
	}
	for _, s := range c.Species {
		if s.Name == "" {
			return fmt.Errorf("species entry without a name")
		}
		if s.FlightRange <= 0 {
			return fmt.Errorf("species %q: flight_range must be positive", s.Name)
		}
	}
	return nil
}

// Pollinator looks a species up by name, case-insensitively. An empty name
// selects analysis.default_species.
func (c *Config) Pollinator(name string) (core.Pollinator, error) {
	if name == "" {
		name = c.Analysis.DefaultSpecies
	}
	for _, s := range c.Species {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return core.Pollinator{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
}
