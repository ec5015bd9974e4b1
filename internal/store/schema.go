package store

// schemaSQL defines the warehouse schema for the churn database.
const schemaSQL = `
-- imported customer records, one row per customer
CREATE TABLE IF NOT EXISTS customers (
    customer_id VARCHAR(64) PRIMARY KEY,
    gender VARCHAR(16) NOT NULL,
    senior_citizen BOOLEAN NOT NULL,
    partner VARCHAR(8) NOT NULL,
    tenure_months INT NOT NULL,
    contract VARCHAR(32) NOT NULL,            -- Month-to-month, One year, Two year
    internet_service VARCHAR(32) NOT NULL,    -- DSL, Fiber optic, No
    payment_method VARCHAR(32) NOT NULL,
    online_security VARCHAR(32) NOT NULL,
    online_backup VARCHAR(32) NOT NULL,
    device_protection VARCHAR(32) NOT NULL,
    tech_support VARCHAR(32) NOT NULL,
    streaming_tv VARCHAR(32) NOT NULL,
    streaming_movies VARCHAR(32) NOT NULL,
    monthly_charges DOUBLE NOT NULL,
    total_charges DOUBLE NOT NULL,
    churn VARCHAR(8) NOT NULL,
    INDEX idx_customers_contract (contract),
    INDEX idx_customers_churn (churn)
);

-- import audit trail, one row per import run
CREATE TABLE IF NOT EXISTS imports (
    id INT AUTO_INCREMENT PRIMARY KEY,
    source VARCHAR(512) NOT NULL,
    row_count INT NOT NULL,
    warning_count INT NOT NULL,
    checksum VARCHAR(64) NOT NULL,
    imported_at VARCHAR(32) NOT NULL
);
`

// initSchema creates the database tables and indexes if they don't exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}
