package cache

// schemaSQL defines the SQLite schema for the cache database.
// Tables:
//   - risk_scores: stores computed risk scores per customer and dataset checksum
//   - report_runs: tracks report executions for the status command
const schemaSQL = `
CREATE TABLE IF NOT EXISTS risk_scores (
    customer_id TEXT NOT NULL,
    dataset_checksum TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0,
    tier TEXT NOT NULL,
    computed_at TEXT NOT NULL,
    PRIMARY KEY (customer_id, dataset_checksum)
);

CREATE TABLE IF NOT EXISTS report_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    report TEXT NOT NULL,
    dataset_checksum TEXT NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    rendered_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_risk_scores_checksum ON risk_scores(dataset_checksum);
CREATE INDEX IF NOT EXISTS idx_risk_scores_score ON risk_scores(score DESC);
CREATE INDEX IF NOT EXISTS idx_report_runs_report ON report_runs(report);
`

// initSchema creates the database tables and indexes if they don't exist.
func (c *Cache) initSchema() error {
	_, err := c.db.Exec(schemaSQL)
	return err
}
