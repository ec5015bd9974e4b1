package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hargabyte/churn/internal/cache"
	"github.com/hargabyte/churn/internal/config"
	"github.com/hargabyte/churn/internal/dataset"
	"github.com/hargabyte/churn/internal/logger"
	"github.com/hargabyte/churn/internal/model"
	"github.com/hargabyte/churn/internal/output"
	"github.com/hargabyte/churn/internal/risk"
	"github.com/hargabyte/churn/internal/store"
	"go.uber.org/zap"
)

// Shared utility functions for command implementations

// findProjectDir locates the .churn directory for the current project.
func findProjectDir() (string, error) {
	churnDir, err := config.FindConfigDir(".")
	if err != nil {
		return "", fmt.Errorf("churn not initialized: run 'churn init' first")
	}
	return churnDir, nil
}

// loadConfig loads the project config, honoring the --config override.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}

// newLogger builds the shared zap logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.New(level)
}

// openStore is a helper to open the warehouse from the current directory
func openStore() (*store.Store, error) {
	churnDir, err := findProjectDir()
	if err != nil {
		return nil, err
	}

	storeDB, err := store.Open(churnDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return storeDB, nil
}

// openCache is a helper to open the score cache from the current directory
func openCache() (*cache.Cache, error) {
	churnDir, err := findProjectDir()
	if err != nil {
		return nil, err
	}

	scoreCache, err := cache.Open(churnDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	return scoreCache, nil
}

// loadRecords loads the dataset a report runs over. Source precedence: the
// --csv flag, then the configured dataset CSV, then the warehouse.
// It returns the records and a short source label for diagnostics.
func loadRecords(cfg *config.Config, csvFlag string, log *zap.Logger) ([]model.Customer, string, error) {
	path := csvFlag
	if path == "" {
		path = cfg.Dataset.CSV
	}

	if path != "" {
		result, err := dataset.DecodeFile(path)
		if err != nil {
			return nil, "", err
		}
		if result.Warnings > 0 {
			log.Debug("csv decoded with warnings",
				zap.String("path", path),
				zap.Int("warnings", result.Warnings))
		}
		return result.Customers, path, nil
	}

	storeDB, err := openStore()
	if err != nil {
		return nil, "", err
	}
	defer storeDB.Close()

	records, err := storeDB.LoadCustomers()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load customers: %w", err)
	}
	if len(records) == 0 {
		return nil, "", fmt.Errorf("no customer data found: run 'churn import <csv>' first")
	}

	return records, "warehouse", nil
}

// resolveFormat picks the output format: the --format flag wins, the
// configured default applies otherwise.
func resolveFormat(cfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		return output.ParseFormat(outputFormat)
	}
	return output.ParseFormat(cfg.Output.DefaultFormat)
}

// renderResult writes data in the resolved output format, to path if
// non-empty or stdout otherwise.
func renderResult(data interface{}, path string, cfg *config.Config) error {
	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	formatter, err := output.GetFormatter(format)
	if err != nil {
		return err
	}

	var out *os.File
	if path != "" {
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	} else {
		out = os.Stdout
	}

	return formatter.FormatToWriter(out, data)
}

// cacheScores saves the scored dataset keyed by its checksum so status can
// report coverage without rescoring. Failures are logged and swallowed:
// scoring output never depends on the cache.
func cacheScores(records []model.Customer, w risk.Weights, log *zap.Logger) {
	churnDir, err := config.FindConfigDir(".")
	if err != nil {
		return
	}

	scoreCache, err := cache.Open(churnDir)
	if err != nil {
		log.Debug("score cache unavailable", zap.Error(err))
		return
	}
	defer scoreCache.Close()

	entries := make([]cache.RiskEntry, len(records))
	for i, c := range records {
		score := risk.ScoreWithWeights(c, w)
		entries[i] = cache.RiskEntry{
			CustomerID: c.CustomerID,
			Score:      score,
			Tier:       risk.Classify(score).String(),
		}
	}

	if err := scoreCache.PutRiskScores(dataset.Checksum(records), entries); err != nil {
		log.Warn("risk score cache write failed", zap.Error(err))
	}
}

// recordReportRun stamps a report invocation in the cache. Best effort:
// uninitialized projects and cache errors are ignored.
func recordReportRun(name string, records []model.Customer, elapsed time.Duration) {
	churnDir, err := config.FindConfigDir(".")
	if err != nil {
		return
	}

	scoreCache, err := cache.Open(churnDir)
	if err != nil {
		return
	}
	defer scoreCache.Close()

	_ = scoreCache.RecordReportRun(name, dataset.Checksum(records), elapsed)
}
