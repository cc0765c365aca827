// Package config loads, saves and validates the eventcarbon configuration
// file and resolves the project-local overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/eventcarbon/internal/factors"
)

// Environment variables read by the config layer.
const (
	EnvHome       = "EVENTCARBON_HOME"
	EnvProjectDir = "EVENTCARBON_PROJECT_DIR"
	EnvLogLevel   = "EVENTCARBON_LOG_LEVEL"
	EnvLogFormat  = "EVENTCARBON_LOG_FORMAT"
	EnvDataDir    = "EVENTCARBON_DATA_DIR"
)

const (
	configFileName = "config.yaml"
	maxPrecision   = 6
)

// Config errors.
var (
	ErrUnknownKey   = errors.New("unknown configuration key")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// OutputFormats lists the accepted output.default_format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var OutputFormats = []string{"table", "json", "ndjson"}

// Config is the full configuration file.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Store    StoreConfig    `yaml:"store"`
	Defaults DefaultsConfig `yaml:"defaults"`

	configPath string
}

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// StoreConfig locates persisted sessions and suppliers.
type StoreConfig struct {
	DataDir string `yaml:"data_dir"`
}

// DefaultsConfig holds values applied when a flag is not given.
type DefaultsConfig struct {
	FlightClass string `yaml:"flight_class"`
	Travellers  int    `yaml:"travellers"`
}

// Default returns the built-in configuration rooted at configDir.
func Default(configDir string) *Config {
	return &Config{
		Output:   OutputConfig{DefaultFormat: "table", Precision: 2},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		Store:    StoreConfig{DataDir: filepath.Join(configDir, "data")},
		Defaults: DefaultsConfig{FlightClass: factors.ClassEconomy, Travellers: 1},

		configPath: filepath.Join(configDir, configFileName),
	}
}

// New returns the configuration from the global config file, falling back
// to defaults when the file is missing or unreadable. Environment overrides
// are applied last.
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = "."
	}
	cfg := Default(dir)
	_ = cfg.Load()
	cfg.applyEnv()
	return cfg
}

// Load reads the file at ConfigPath over the current values.
// A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the configuration to ConfigPath, creating parent directories.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ConfigPath returns the file this config loads from and saves to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// SessionsDir is where event session files are stored.
func (c *Config) SessionsDir() string {
	return filepath.Join(c.Store.DataDir, "sessions")
}

// SuppliersPath is the supplier directory file.
func (c *Config) SuppliersPath() string {
	return filepath.Join(c.Store.DataDir, "suppliers.json")
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Store.DataDir = v
	}
}

// Keys returns every settable dotted key in display order.
func Keys() []string {
	return []string{
		"output.default_format",
		"output.precision",
		"logging.level",
		"logging.format",
		"logging.file",
		"store.data_dir",
		"defaults.flight_class",
		"defaults.travellers",
	}
}

// Get returns the value at a dotted key such as "output.precision".
func (c *Config) Get(key string) (any, error) {
	switch strings.ToLower(key) {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return c.Output.Precision, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "store.data_dir":
		return c.Store.DataDir, nil
	case "defaults.flight_class":
		return c.Defaults.FlightClass, nil
	case "defaults.travellers":
		return c.Defaults.Travellers, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a string value to a dotted key, converting it to the field type.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.precision":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		c.Output.Precision = n
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "store.data_dir":
		c.Store.DataDir = value
	case "defaults.flight_class":
		c.Defaults.FlightClass = value
	case "defaults.travellers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		c.Defaults.Travellers = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

// List returns every key with its current value.
func (c *Config) List() map[string]any {
	out := make(map[string]any, len(Keys()))
	for _, k := range Keys() {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(OutputFormats, c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: output.default_format %q (want one of %s)",
			ErrInvalidValue, c.Output.DefaultFormat, strings.Join(OutputFormats, ", ")))
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		errs = append(errs, fmt.Errorf("%w: output.precision %d (want 0-%d)",
			ErrInvalidValue, c.Output.Precision, maxPrecision))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console", "text":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format %q", ErrInvalidValue, c.Logging.Format))
	}
	if c.Store.DataDir == "" {
		errs = append(errs, fmt.Errorf("%w: store.data_dir is empty", ErrInvalidValue))
	}
	if _, ok := factors.FlightClassMultiplier(c.Defaults.FlightClass); !ok {
		errs = append(errs, fmt.Errorf("%w: defaults.flight_class %q", ErrInvalidValue, c.Defaults.FlightClass))
	}
	if c.Defaults.Travellers < 1 {
		errs = append(errs, fmt.Errorf("%w: defaults.travellers %d (want at least 1)",
			ErrInvalidValue, c.Defaults.Travellers))
	}
	return errors.Join(errs...)
}
