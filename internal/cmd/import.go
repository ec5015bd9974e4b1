// Package cmd implements the import command for the churn CLI.
package cmd

import (
	"fmt"
	"time"

	"github.com/hargabyte/churn/internal/dataset"
	"github.com/hargabyte/churn/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Load a customer CSV into the warehouse",
	Long: `Import validates a customer CSV and replaces the warehouse contents
with it.

Every row is checked during decode: enum domains, duplicate customer IDs,
and numeric ranges. The first bad value aborts the import and the previous
warehouse contents stay intact. Rows with a blank total_charges (zero-tenure
customers) default the value to zero and are counted as warnings.

Each successful import is recorded with its source path, row count, and
dataset checksum; 'churn status' shows the most recent one.

Examples:
  churn import data/customers.csv            # Replace warehouse contents
  churn import data/customers.csv --dry-run  # Validate without writing`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importDryRun bool

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the CSV without writing to the warehouse")
}

func runImport(cmd *cobra.Command, args []string) error {
	csvPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	start := time.Now()
	result, err := dataset.DecodeFile(csvPath)
	if err != nil {
		return err
	}

	log.Debug("csv decoded",
		zap.String("path", csvPath),
		zap.Int("rows", len(result.Customers)),
		zap.Int("warnings", result.Warnings),
		zap.Duration("elapsed", time.Since(start)))

	out := cmd.OutOrStdout()

	if importDryRun {
		fmt.Fprintf(out, "Dry run: %d customers validated from %s (%d warnings), nothing written\n",
			len(result.Customers), csvPath, result.Warnings)
		return nil
	}

	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	if err := storeDB.ReplaceCustomers(result.Customers); err != nil {
		return fmt.Errorf("replace customers: %w", err)
	}

	checksum := dataset.Checksum(result.Customers)
	if err := storeDB.RecordImport(store.ImportRecord{
		Source:       csvPath,
		RowCount:     len(result.Customers),
		WarningCount: result.Warnings,
		Checksum:     checksum,
	}); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	log.Info("import complete",
		zap.Int("customers", len(result.Customers)),
		zap.String("checksum", checksum),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Fprintf(out, "Imported %d customers from %s (%d warnings)\n",
		len(result.Customers), csvPath, result.Warnings)

	return nil
}
