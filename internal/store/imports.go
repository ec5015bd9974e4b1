package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ImportRecord describes one import run recorded in the audit trail.
type ImportRecord struct {
	ID           int       `yaml:"id" json:"id"`
	Source       string    `yaml:"source" json:"source"`
	RowCount     int       `yaml:"row_count" json:"row_count"`
	WarningCount int       `yaml:"warning_count" json:"warning_count"`
	Checksum     string    `yaml:"checksum" json:"checksum"`
	ImportedAt   time.Time `yaml:"imported_at" json:"imported_at"`
}

// RecordImport appends an import run to the audit trail. The timestamp
// is stamped here, not by the caller.
func (s *Store) RecordImport(rec ImportRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO imports (source, row_count, warning_count, checksum, imported_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Source, rec.RowCount, rec.WarningCount, rec.Checksum, now)
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	return nil
}

// LastImport returns the most recent import run, or nil when the
// warehouse has never been imported into.
func (s *Store) LastImport() (*ImportRecord, error) {
	var rec ImportRecord
	var importedAt string

	err := s.db.QueryRow(`
		SELECT id, source, row_count, warning_count, checksum, imported_at
		FROM imports ORDER BY id DESC LIMIT 1`).Scan(
		&rec.ID, &rec.Source, &rec.RowCount, &rec.WarningCount, &rec.Checksum, &importedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	importedAtTime, err := time.Parse(time.RFC3339, importedAt)
	if err != nil {
		importedAtTime = time.Now().UTC()
	}
	rec.ImportedAt = importedAtTime

	return &rec, nil
}

// CountImports returns the number of recorded import runs.
func (s *Store) CountImports() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM imports`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
