package config

import "github.com/hargabyte/churn/internal/risk"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			CSV: "",
		},
		Risk: risk.DefaultWeights(),
		Reports: ReportsConfig{
			MinSegmentSize: 10,
			Top:            10,
		},
		Output: OutputConfig{
			DefaultFormat: "yaml",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	// Merge Dataset config
	result.Dataset = mergeDatasetConfig(loaded.Dataset, defaults.Dataset)

	// Merge Risk config
	result.Risk = mergeRiskConfig(loaded.Risk, defaults.Risk)

	// Merge Reports config
	result.Reports = mergeReportsConfig(loaded.Reports, defaults.Reports)

	// Merge Output config
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	// Merge Logging config
	result.Logging = mergeLoggingConfig(loaded.Logging, defaults.Logging)

	return result
}

func mergeDatasetConfig(loaded, defaults DatasetConfig) DatasetConfig {
	result := DatasetConfig{}

	// CSV: use loaded if non-empty
	if loaded.CSV != "" {
		result.CSV = loaded.CSV
	} else {
		result.CSV = defaults.CSV
	}

	return result
}

func mergeRiskConfig(loaded, defaults risk.Weights) risk.Weights {
	result := risk.Weights{}

	// The five weights merge as a block: setting any weight replaces the
	// whole table, so an explicit zero disables that indicator
	if loaded.MonthToMonth != 0 || loaded.FiberOptic != 0 || loaded.ElectronicCheck != 0 ||
		loaded.NewTenure != 0 || loaded.Senior != 0 {
		result.MonthToMonth = loaded.MonthToMonth
		result.FiberOptic = loaded.FiberOptic
		result.ElectronicCheck = loaded.ElectronicCheck
		result.NewTenure = loaded.NewTenure
		result.Senior = loaded.Senior
	} else {
		result.MonthToMonth = defaults.MonthToMonth
		result.FiberOptic = defaults.FiberOptic
		result.ElectronicCheck = defaults.ElectronicCheck
		result.NewTenure = defaults.NewTenure
		result.Senior = defaults.Senior
	}

	// NewTenureMaxMonths: use loaded if non-zero
	if loaded.NewTenureMaxMonths != 0 {
		result.NewTenureMaxMonths = loaded.NewTenureMaxMonths
	} else {
		result.NewTenureMaxMonths = defaults.NewTenureMaxMonths
	}

	return result
}

func mergeReportsConfig(loaded, defaults ReportsConfig) ReportsConfig {
	result := ReportsConfig{}

	// MinSegmentSize: use loaded if non-zero
	if loaded.MinSegmentSize != 0 {
		result.MinSegmentSize = loaded.MinSegmentSize
	} else {
		result.MinSegmentSize = defaults.MinSegmentSize
	}

	// Top: use loaded if non-zero
	if loaded.Top != 0 {
		result.Top = loaded.Top
	} else {
		result.Top = defaults.Top
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	// DefaultFormat: use loaded if non-empty
	if loaded.DefaultFormat != "" {
		result.DefaultFormat = loaded.DefaultFormat
	} else {
		result.DefaultFormat = defaults.DefaultFormat
	}

	return result
}

func mergeLoggingConfig(loaded, defaults LoggingConfig) LoggingConfig {
	result := LoggingConfig{}

	// Level: use loaded if non-empty
	if loaded.Level != "" {
		result.Level = loaded.Level
	} else {
		result.Level = defaults.Level
	}

	return result
}

// ValidFormats lists the valid values for output format
var ValidFormats = []string{"yaml", "json", "table"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}

// ValidLogLevels lists the valid values for the logging level
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// IsValidLogLevel checks if the given log level is valid
func IsValidLogLevel(level string) bool {
	for _, valid := range ValidLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}
