// Package config builds the immutable option snapshot for a search run.
//
// Values are layered: DefaultConfig, then program-name defaults (rgrep,
// egrep, fgrep), then the YAML config file, then LGREP_* environment
// variables, then command-line flags. The result is validated once and
// read-only thereafter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/lgrep/internal/logger"
	"github.com/harrison/lgrep/internal/models"
	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`
}

// Config represents all options of a search run
type Config struct {
	// Dialect is the regular-expression dialect (basic or extended)
	Dialect models.Dialect `yaml:"dialect"`

	// Fixed matches patterns as literal strings
	Fixed bool `yaml:"fixed_strings"`

	// IgnoreCase enables case-insensitive matching
	IgnoreCase bool `yaml:"ignore_case"`

	// Invert selects non-matching lines
	Invert bool `yaml:"-"`

	// Quiet suppresses all output; only the exit status reports the result
	Quiet bool `yaml:"-"`

	// SuppressErrors hides per-file error diagnostics
	SuppressErrors bool `yaml:"no_messages"`

	// Recursive expands directory sources
	Recursive bool `yaml:"recursive"`

	// LineNumbers prefixes each output line with its line number
	LineNumbers bool `yaml:"line_numbers"`

	// Count prints per-source match counts instead of lines
	Count bool `yaml:"-"`

	// BinaryMode is the policy for lines containing a zero byte
	BinaryMode models.BinaryMode `yaml:"binary_mode"`

	// ColorMode is the requested color mode (auto, always, never)
	ColorMode models.ColorMode `yaml:"color"`

	// Color is ColorMode resolved against the output terminal by ResolveColor
	Color bool `yaml:"-"`

	// LogLevel sets the diagnostics verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Dialect:    models.DialectBasic,
		BinaryMode: models.BinaryModeBinary,
		ColorMode:  models.ColorAuto,
		LogLevel:   "info",
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "",
		},
	}
}

// ApplyProgramName applies the defaults implied by the name the binary was
// invoked as: rgrep is recursive, egrep uses the extended dialect and fgrep
// matches fixed strings.
func (c *Config) ApplyProgramName(argv0 string) {
	switch strings.TrimSuffix(filepath.Base(argv0), ".exe") {
	case "rgrep":
		c.Recursive = true
	case "egrep":
		c.Dialect = models.DialectExtended
	case "fgrep":
		c.Fixed = true
	}
}

// LoadConfig loads configuration from the specified file path on top of base.
// If the file doesn't exist, returns base unchanged without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string, base *Config) (*Config, error) {
	cfg := *base

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from an explicit zero value
	type yamlHistory struct {
		Enabled *bool   `yaml:"enabled"`
		DBPath  *string `yaml:"db_path"`
	}
	type yamlConfig struct {
		Dialect     string       `yaml:"dialect"`
		Fixed       *bool        `yaml:"fixed_strings"`
		IgnoreCase  *bool        `yaml:"ignore_case"`
		NoMessages  *bool        `yaml:"no_messages"`
		Recursive   *bool        `yaml:"recursive"`
		LineNumbers *bool        `yaml:"line_numbers"`
		BinaryMode  string       `yaml:"binary_mode"`
		Color       string       `yaml:"color"`
		LogLevel    string       `yaml:"log_level"`
		History     *yamlHistory `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Dialect != "" {
		dialect, err := models.ParseDialect(yamlCfg.Dialect)
		if err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		cfg.Dialect = dialect
	}
	if yamlCfg.BinaryMode != "" {
		mode, err := models.ParseBinaryMode(yamlCfg.BinaryMode)
		if err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		cfg.BinaryMode = mode
	}
	if yamlCfg.Color != "" {
		mode, err := models.ParseColorMode(yamlCfg.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		cfg.ColorMode = mode
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	setBool(&cfg.Fixed, yamlCfg.Fixed)
	setBool(&cfg.IgnoreCase, yamlCfg.IgnoreCase)
	setBool(&cfg.SuppressErrors, yamlCfg.NoMessages)
	setBool(&cfg.Recursive, yamlCfg.Recursive)
	setBool(&cfg.LineNumbers, yamlCfg.LineNumbers)

	if h := yamlCfg.History; h != nil {
		setBool(&cfg.History.Enabled, h.Enabled)
		if h.DBPath != nil {
			cfg.History.DBPath = *h.DBPath
		}
	}

	return &cfg, nil
}

// LoadConfigFromDir loads configuration from .lgrep/config.yaml in the specified directory
// If the directory or file doesn't exist, returns base without error
func LoadConfigFromDir(dir string, base *Config) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".lgrep", "config.yaml"), base)
}

// ApplyEnv applies LGREP_COLOR, LGREP_LOG_LEVEL and LGREP_HISTORY_DB
// overrides. Empty variables are ignored.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("LGREP_COLOR"); v != "" {
		mode, err := models.ParseColorMode(v)
		if err != nil {
			return fmt.Errorf("LGREP_COLOR: %w", err)
		}
		c.ColorMode = mode
	}
	if v := os.Getenv("LGREP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LGREP_HISTORY_DB"); v != "" {
		c.History.DBPath = v
	}
	return nil
}

// FlagOverrides holds command-line values. Nil fields were not given on
// the command line and leave the configuration unchanged.
type FlagOverrides struct {
	Dialect        *models.Dialect
	Fixed          *bool
	IgnoreCase     *bool
	Invert         *bool
	Quiet          *bool
	SuppressErrors *bool
	Recursive      *bool
	LineNumbers    *bool
	Count          *bool
	BinaryMode     *models.BinaryMode
	ColorMode      *models.ColorMode
	LogLevel       *string
	History        *bool
	HistoryDB      *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f FlagOverrides) {
	if f.Dialect != nil {
		c.Dialect = *f.Dialect
	}
	setBool(&c.Fixed, f.Fixed)
	setBool(&c.IgnoreCase, f.IgnoreCase)
	setBool(&c.Invert, f.Invert)
	setBool(&c.Quiet, f.Quiet)
	setBool(&c.SuppressErrors, f.SuppressErrors)
	setBool(&c.Recursive, f.Recursive)
	setBool(&c.LineNumbers, f.LineNumbers)
	setBool(&c.Count, f.Count)
	if f.BinaryMode != nil {
		c.BinaryMode = *f.BinaryMode
	}
	if f.ColorMode != nil {
		c.ColorMode = *f.ColorMode
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	setBool(&c.History.Enabled, f.History)
	if f.HistoryDB != nil {
		c.History.DBPath = *f.HistoryDB
		c.History.Enabled = true
	}
}

// ResolveColor fixes Color from ColorMode. isTerminal reports whether the
// primary output is an interactive terminal.
func (c *Config) ResolveColor(isTerminal bool) {
	c.Color = c.ColorMode.Enabled(isTerminal)
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Dialect != models.DialectBasic && c.Dialect != models.DialectExtended {
		return fmt.Errorf("invalid dialect %q, must be one of: basic, extended", c.Dialect)
	}
	if _, err := models.ParseBinaryMode(string(c.BinaryMode)); err != nil {
		return err
	}
	if _, err := models.ParseColorMode(string(c.ColorMode)); err != nil {
		return err
	}
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}
	return nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
