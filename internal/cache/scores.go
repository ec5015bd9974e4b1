package cache

import (
	"fmt"
	"time"
)

// RiskEntry holds one cached risk score.
type RiskEntry struct {
	CustomerID string
	Score      int
	Tier       string
	ComputedAt time.Time
}

// PutRiskScores stores computed scores for a dataset checksum, replacing
// any previous entries for the same customer and checksum.
func (c *Cache) PutRiskScores(checksum string, entries []RiskEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO risk_scores (customer_id, dataset_checksum, score, tier, computed_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, entry := range entries {
		computedAt := now
		if !entry.ComputedAt.IsZero() {
			computedAt = entry.ComputedAt.UTC().Format(time.RFC3339)
		}
		_, err := stmt.Exec(entry.CustomerID, checksum, entry.Score, entry.Tier, computedAt)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("save risk score %s: %w", entry.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetRiskScores retrieves cached scores for a dataset checksum, ordered
// by score descending and customer_id ascending.
func (c *Cache) GetRiskScores(checksum string) ([]RiskEntry, error) {
	rows, err := c.db.Query(`
		SELECT customer_id, score, tier, computed_at FROM risk_scores
		WHERE dataset_checksum = ?
		ORDER BY score DESC, customer_id ASC`, checksum)
	if err != nil {
		return nil, fmt.Errorf("query risk scores: %w", err)
	}
	defer rows.Close()

	var entries []RiskEntry
	for rows.Next() {
		var entry RiskEntry
		var computedAt string
		err := rows.Scan(&entry.CustomerID, &entry.Score, &entry.Tier, &computedAt)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entry.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}

// CountRiskScores returns the number of cached scores for a dataset checksum.
func (c *Cache) CountRiskScores(checksum string) (int, error) {
	var count int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM risk_scores WHERE dataset_checksum = ?`, checksum).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count risk scores: %w", err)
	}
	return count, nil
}

// RecordReportRun appends one report execution to the run history.
func (c *Cache) RecordReportRun(report, checksum string, duration time.Duration) error {
	_, err := c.db.Exec(`
		INSERT INTO report_runs (report, dataset_checksum, duration_ms, rendered_at)
		VALUES (?, ?, ?, ?)`,
		report, checksum, duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record report run %s: %w", report, err)
	}
	return nil
}
