// Package config loads repsheet settings from an optional YAML file with
// REPSHEET_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Program  ProgramConfig  `yaml:"program"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ProgramConfig holds the defaults for newly created programs.
type ProgramConfig struct {
	FlatMode      bool   `yaml:"flat_mode"`
	RepType       string `yaml:"rep_type"`
	IntensityType string `yaml:"intensity_type"`
	WeightUnit    string `yaml:"weight_unit"`
}

type LogConfig struct {
	Calls bool `yaml:"calls"`
}

// Default returns the configuration used when no file or env is present.
func Default() *Config {
	d := domain.DefaultSettings()
	return &Config{
		Database: DatabaseConfig{Path: db.DefaultPath()},
		Program: ProgramConfig{
			RepType:       string(d.RepType),
			IntensityType: string(d.IntensityType),
			WeightUnit:    string(d.WeightType),
		},
	}
}

// DefaultPath is ~/.repsheet/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".repsheet", "config.yaml")
	}
	return filepath.Join(home, ".repsheet", "config.yaml")
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file leaves the defaults in place.
//
//	REPSHEET_DB, REPSHEET_FLAT_MODE, REPSHEET_REP_TYPE,
//	REPSHEET_INTENSITY_TYPE, REPSHEET_WEIGHT_UNIT, REPSHEET_LOG_CALLS
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Database.Path = expandHome(cfg.Database.Path)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("REPSHEET_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("REPSHEET_FLAT_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("REPSHEET_FLAT_MODE: %w", err)
		}
		cfg.Program.FlatMode = b
	}
	if v := os.Getenv("REPSHEET_REP_TYPE"); v != "" {
		cfg.Program.RepType = v
	}
	if v := os.Getenv("REPSHEET_INTENSITY_TYPE"); v != "" {
		cfg.Program.IntensityType = v
	}
	if v := os.Getenv("REPSHEET_WEIGHT_UNIT"); v != "" {
		cfg.Program.WeightUnit = v
	}
	if v := os.Getenv("REPSHEET_LOG_CALLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("REPSHEET_LOG_CALLS: %w", err)
		}
		cfg.Log.Calls = b
	}
	return nil
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	p := c.Program
	if !domain.ValidRepTypes[domain.RepType(p.RepType)] {
		return fmt.Errorf("program.rep_type: invalid value %q", p.RepType)
	}
	if !domain.ValidIntensityTypes[domain.IntensityType(p.IntensityType)] {
		return fmt.Errorf("program.intensity_type: invalid value %q", p.IntensityType)
	}
	if !domain.ValidWeightTypes[domain.WeightType(p.WeightUnit)] {
		return fmt.Errorf("program.weight_unit: invalid value %q", p.WeightUnit)
	}
	return nil
}

// Settings returns the notation defaults for new programs.
func (c *Config) Settings() domain.Settings {
	return domain.Settings{
		RepType:       domain.RepType(c.Program.RepType),
		IntensityType: domain.IntensityType(c.Program.IntensityType),
		WeightType:    domain.WeightType(c.Program.WeightUnit),
	}
}

// Mode returns the structure mode for new programs.
func (c *Config) Mode() domain.ProgramMode {
	if c.Program.FlatMode {
		return domain.ModeFlat
	}
	return domain.ModeWeekly
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
