// Package cache provides SQLite-backed caching for computed risk scores
// and report run bookkeeping. The cache is stored in .churn/cache.db and
// is keyed by the dataset checksum, so stale entries are never served for
// a reimported dataset.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache manages the .churn/cache.db SQLite database for storing computed
// risk scores and report run history.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the cache database at the specified .churn directory.
// It initializes the schema if the database is new.
func Open(churnDir string) (*Cache, error) {
	dbPath := filepath.Join(churnDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	cache := &Cache{db: db, dbPath: dbPath}

	// Initialize schema
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Clear removes all cached data from both risk_scores and report_runs tables.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM risk_scores; DELETE FROM report_runs;")
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.dbPath
}

// DB returns the underlying database connection for advanced operations.
func (c *Cache) DB() *sql.DB {
	return c.db
}

// Stats returns cache statistics.
type Stats struct {
	RiskScoreCount int64
	ReportRunCount int64
}

// GetStats returns statistics about the cache contents.
func (c *Cache) GetStats() (*Stats, error) {
	var stats Stats

	err := c.db.QueryRow("SELECT COUNT(*) FROM risk_scores").Scan(&stats.RiskScoreCount)
	if err != nil {
		return nil, fmt.Errorf("count risk scores: %w", err)
	}

	err = c.db.QueryRow("SELECT COUNT(*) FROM report_runs").Scan(&stats.ReportRunCount)
	if err != nil {
		return nil, fmt.Errorf("count report runs: %w", err)
	}

	return &stats, nil
}
