// Package config provides Viper-based configuration loading for huntsim.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, also writes JSON logs to a rotating file at this path.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SimulationConfig holds Monte Carlo settings.
type SimulationConfig struct {
	// Simulations is the number of battles per weapon and level.
	Simulations int `mapstructure:"simulations"`
	// Rounds is the number of rounds per battle.
	Rounds int `mapstructure:"rounds"`
	// Levels restricts the sweep; empty means every level of the encounter.
	Levels []int `mapstructure:"levels"`
	// Seed fixes the random streams; 0 draws a fresh seed per run.
	Seed uint64 `mapstructure:"seed"`
	// Workers is the number of parallel battle workers. Results are
	// reproducible only for the same (seed, workers) pair.
	Workers int `mapstructure:"workers"`
	// Trace runs battles sequentially and logs every dice roll.
	Trace bool `mapstructure:"trace"`
}

// ContentConfig locates the weapon registry and the encounter.
type ContentConfig struct {
	WeaponsDir string `mapstructure:"weapons_dir"`
	Encounter  string `mapstructure:"encounter"`
}

// RulesConfig holds the table-wide to-hit rules.
type RulesConfig struct {
	// StrictHit requires the to-hit roll to exceed defense instead of reaching it.
	StrictHit  bool `mapstructure:"strict_hit"`
	ToHitDice  int  `mapstructure:"to_hit_dice"`
	ToHitSides int  `mapstructure:"to_hit_sides"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	// Format is "table" or "yaml".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Content    ContentConfig    `mapstructure:"content"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Report     ReportConfig     `mapstructure:"report"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateLogging(c.Logging),
		validateSimulation(c.Simulation),
		validateContent(c.Content),
		validateRules(c.Rules),
		validateReport(c.Report),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		errs = append(errs, "logging rotation limits must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Simulations < 1 {
		errs = append(errs, fmt.Sprintf("simulation.simulations must be >= 1, got %d", s.Simulations))
	}
	if s.Rounds < 1 {
		errs = append(errs, fmt.Sprintf("simulation.rounds must be >= 1, got %d", s.Rounds))
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Sprintf("simulation.workers must be >= 1, got %d", s.Workers))
	}
	for _, l := range s.Levels {
		if l < 1 {
			errs = append(errs, fmt.Sprintf("simulation.levels must be >= 1, got %d", l))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.Encounter == "" {
		errs = append(errs, "content.encounter must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	if r.ToHitDice < 1 {
		errs = append(errs, fmt.Sprintf("rules.to_hit_dice must be >= 1, got %d", r.ToHitDice))
	}
	if r.ToHitSides < 1 {
		errs = append(errs, fmt.Sprintf("rules.to_hit_sides must be >= 1, got %d", r.ToHitSides))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateReport(r ReportConfig) error {
	validFormats := map[string]bool{"table": true, "yaml": true}
	if !validFormats[r.Format] {
		return fmt.Errorf("report.format must be one of [table, yaml], got %q", r.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with HUNTSIM_ prefix
	v.SetEnvPrefix("HUNTSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	v.SetDefault("simulation.simulations", 10000)
	v.SetDefault("simulation.rounds", 10)
	v.SetDefault("simulation.levels", []int{})
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.trace", false)

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.encounter", "content/encounter.yaml")

	v.SetDefault("rules.strict_hit", false)
	v.SetDefault("rules.to_hit_dice", 2)
	v.SetDefault("rules.to_hit_sides", 12)

	v.SetDefault("report.format", "table")
}
