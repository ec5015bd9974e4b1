package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/churn/internal/risk"
)

// ConfigFileName is the name of the churn configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the churn project directory
const ConfigDirName = ".churn"

// Config holds all churn configuration
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Risk    risk.Weights  `yaml:"risk"`
	Reports ReportsConfig `yaml:"reports"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig holds configuration for dataset acquisition
type DatasetConfig struct {
	// CSV is an optional dataset path used when a report run passes no
	// --csv flag. When empty, reports read the warehouse.
	CSV string `yaml:"csv"`
}

// ReportsConfig holds default knobs for catalog reports
type ReportsConfig struct {
	MinSegmentSize int `yaml:"min_segment_size"`
	Top            int `yaml:"top"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig holds configuration for diagnostic logging
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .churn/config.yaml, falling back to defaults.
// It searches for the project directory starting from workDir and walking
// up the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No project dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .churn directory by walking up from startDir.
// Returns the path to the .churn directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .churn directory if it doesn't exist.
// Returns the path to the .churn directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	// Every weight must be non-negative
	weights := []struct {
		name  string
		value int
	}{
		{"month_to_month", cfg.Risk.MonthToMonth},
		{"fiber_optic", cfg.Risk.FiberOptic},
		{"electronic_check", cfg.Risk.ElectronicCheck},
		{"new_tenure", cfg.Risk.NewTenure},
		{"senior", cfg.Risk.Senior},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%w: risk weight %s must be non-negative, got %d",
				ErrInvalidConfig, w.name, w.value)
		}
	}

	// Weights summing past 100 would push scores out of range
	if sum := cfg.Risk.Sum(); sum > 100 {
		return fmt.Errorf("%w: risk weights must sum to at most 100, got %d",
			ErrInvalidConfig, sum)
	}

	if cfg.Risk.NewTenureMaxMonths < 0 {
		return fmt.Errorf("%w: new_tenure_max_months must be non-negative, got %d",
			ErrInvalidConfig, cfg.Risk.NewTenureMaxMonths)
	}

	if cfg.Reports.MinSegmentSize < 0 {
		return fmt.Errorf("%w: min_segment_size must be non-negative, got %d",
			ErrInvalidConfig, cfg.Reports.MinSegmentSize)
	}

	if cfg.Reports.Top < 0 {
		return fmt.Errorf("%w: top must be non-negative, got %d",
			ErrInvalidConfig, cfg.Reports.Top)
	}

	if !IsValidFormat(cfg.Output.DefaultFormat) {
		return fmt.Errorf("%w: default_format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.DefaultFormat)
	}

	if !IsValidLogLevel(cfg.Logging.Level) {
		return fmt.Errorf("%w: logging level must be one of %v, got %q",
			ErrInvalidConfig, ValidLogLevels, cfg.Logging.Level)
	}

	return nil
}

// SaveDefault writes the default configuration to .churn/config.yaml in
// workDir. Creates the .churn directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# churn CLI configuration\n# See https://github.com/hargabyte/churn for documentation\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
