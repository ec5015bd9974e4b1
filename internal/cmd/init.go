// Package cmd implements the init command for the churn CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hargabyte/churn/internal/cache"
	"github.com/hargabyte/churn/internal/config"
	"github.com/hargabyte/churn/internal/store"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .churn directory, config, and warehouse",
	Long: `Initialize the .churn directory in the current directory.

This creates the commented default config.yaml, an empty Dolt warehouse
for customer data, and the score cache. Run 'churn import <csv>' next to
load a dataset.

Examples:
  churn init          # Initialize in current directory
  churn init --force  # Reinitialize (discards config, warehouse, and cache)`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if .churn already exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	churnDir := filepath.Join(cwd, config.ConfigDirName)
	cfgPath := filepath.Join(churnDir, config.ConfigFileName)

	// Check if the project already exists
	_, err = os.Stat(cfgPath)
	if err == nil {
		if !initForce {
			// Not forcing, so report status and exit cleanly
			relPath, _ := filepath.Rel(cwd, churnDir)
			fmt.Printf("Already initialized at %s\n", relPath)
			return nil
		}
		// Force flag set, discard the whole project directory
		if err := os.RemoveAll(churnDir); err != nil {
			return fmt.Errorf("removing existing project: %w", err)
		}
	} else if !os.IsNotExist(err) {
		// Some other error occurred checking the file
		return fmt.Errorf("checking config path: %w", err)
	}

	// Write the commented default config
	if _, err := config.SaveDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	// Open the warehouse once to create the database and schema
	storeDB, err := store.Open(churnDir)
	if err != nil {
		return fmt.Errorf("initializing warehouse: %w", err)
	}
	defer storeDB.Close()

	// Open the cache once to create its schema
	scoreCache, err := cache.Open(churnDir)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer scoreCache.Close()

	// Print success message with project path
	relPath, _ := filepath.Rel(cwd, churnDir)
	fmt.Printf("Initialized churn project at %s\n", relPath)

	return nil
}
