// Package store provides Dolt-backed persistence for the customer warehouse.
// The warehouse is located at .churn/warehouse/ (a Dolt repository) and keeps
// the imported dataset with version control capabilities including history,
// diff, and time-travel.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/dolthub/driver"
)

// Store manages the .churn/warehouse/ Dolt database holding imported
// customer records and the import audit trail.
type Store struct {
	db     *sql.DB
	dbPath string // Path to the Dolt repo directory (.churn/warehouse/)
}

// Open opens or creates the warehouse database at the specified .churn
// directory. It auto-creates the directory if it doesn't exist and
// initializes the schema if the database is new. The Dolt database is
// stored in .churn/warehouse/.
func Open(churnDir string) (*Store, error) {
	// Create .churn directory if it doesn't exist
	if err := os.MkdirAll(churnDir, 0755); err != nil {
		return nil, fmt.Errorf("create .churn directory: %w", err)
	}

	// Dolt repo lives in .churn/warehouse/
	dbPath := filepath.Join(churnDir, "warehouse")

	// Create the Dolt repo directory if needed
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("create dolt directory: %w", err)
	}

	// First, connect without specifying database to create it if needed
	initDSN := fmt.Sprintf("file://%s?commitname=Churn&commitemail=churn@local", dbPath)
	initDB, err := sql.Open("dolt", initDSN)
	if err != nil {
		return nil, fmt.Errorf("open dolt for init: %w", err)
	}

	// Create database if it doesn't exist
	_, err = initDB.Exec("CREATE DATABASE IF NOT EXISTS churn")
	if err != nil {
		initDB.Close()
		return nil, fmt.Errorf("create database: %w", err)
	}
	initDB.Close()

	// Now connect to the specific database
	dsn := fmt.Sprintf("file://%s?commitname=Churn&commitemail=churn@local&database=churn", dbPath)
	db, err := sql.Open("dolt", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dolt db: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// OpenDefault opens the warehouse in the default .churn directory in the
// current working directory.
func OpenDefault() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	churnDir := filepath.Join(cwd, ".churn")
	return Open(churnDir)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}
