package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hargabyte/churn/internal/config"
	"github.com/hargabyte/churn/internal/reports"
	"github.com/hargabyte/churn/internal/store"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show warehouse, import, and cache status",
	Long: `Show the current state of the churn project.

Displays information about:
- Warehouse row count and location
- The most recent import (source, rows, warnings, checksum)
- Score cache contents (cached risk scores, report runs)
- Quick KPIs for the imported dataset

Examples:
  churn status          # Human-readable status
  churn status --json   # JSON output for scripts`,
	RunE: runStatus,
}

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}

// StatusOutput represents the status output structure
type StatusOutput struct {
	// Warehouse information
	Warehouse WarehouseStatus `json:"warehouse" yaml:"warehouse"`

	// Most recent import, nil before the first one
	LastImport *ImportStatus `json:"last_import,omitempty" yaml:"last_import,omitempty"`

	// Score cache information
	Cache CacheStatus `json:"cache" yaml:"cache"`

	// Headline KPIs for the imported dataset
	KPIs []reports.KPIRow `json:"kpis,omitempty" yaml:"kpis,omitempty"`
}

// WarehouseStatus represents warehouse-specific status
type WarehouseStatus struct {
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Initialized bool   `json:"initialized" yaml:"initialized"`
	Customers   int    `json:"customers" yaml:"customers"`
}

// ImportStatus represents the most recent import
type ImportStatus struct {
	Source     string `json:"source" yaml:"source"`
	Rows       int    `json:"rows" yaml:"rows"`
	Warnings   int    `json:"warnings" yaml:"warnings"`
	Checksum   string `json:"checksum" yaml:"checksum"`
	ImportedAt string `json:"imported_at" yaml:"imported_at"`
}

// CacheStatus represents score cache status
type CacheStatus struct {
	RiskScores    int64 `json:"risk_scores" yaml:"risk_scores"`
	CurrentScored int   `json:"current_scored" yaml:"current_scored"`
	ReportRuns    int64 `json:"report_runs" yaml:"report_runs"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	output := StatusOutput{}

	// Get project directory
	churnDir, err := config.FindConfigDir(".")
	if err != nil {
		output.Warehouse.Initialized = false

		if statusJSON {
			return outputStatusJSON(cmd, output)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Churn Status:")
		fmt.Fprintln(cmd.OutOrStdout(), "")
		fmt.Fprintln(cmd.OutOrStdout(), "  Warehouse: not initialized")
		fmt.Fprintln(cmd.OutOrStdout(), "             Run 'churn init' to initialize")
		return nil
	}

	storeDB, err := store.Open(churnDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer storeDB.Close()

	output.Warehouse.Initialized = true
	output.Warehouse.Path = storeDB.Path()

	count, err := storeDB.CountCustomers()
	if err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	output.Warehouse.Customers = count

	last, err := storeDB.LastImport()
	if err != nil {
		return fmt.Errorf("last import: %w", err)
	}
	if last != nil {
		output.LastImport = &ImportStatus{
			Source:     last.Source,
			Rows:       last.RowCount,
			Warnings:   last.WarningCount,
			Checksum:   last.Checksum,
			ImportedAt: last.ImportedAt.Format(time.RFC3339),
		}
	}

	// Cache stats are best effort: a missing or unreadable cache leaves zeros.
	if scoreCache, err := openCache(); err == nil {
		if stats, err := scoreCache.GetStats(); err == nil {
			output.Cache.RiskScores = stats.RiskScoreCount
			output.Cache.ReportRuns = stats.ReportRunCount
		}
		if last != nil {
			if scored, err := scoreCache.CountRiskScores(last.Checksum); err == nil {
				output.Cache.CurrentScored = scored
			}
		}
		scoreCache.Close()
	}

	if count > 0 {
		records, err := storeDB.LoadCustomers()
		if err == nil {
			if kpis, err := reports.KPISummary(records); err == nil {
				output.KPIs = kpis
			}
		}
	}

	if statusJSON {
		return outputStatusJSON(cmd, output)
	}

	// Human-readable output
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Churn Status:")
	fmt.Fprintln(out, "")

	// Warehouse section
	fmt.Fprintf(out, "  Warehouse: %s\n", output.Warehouse.Path)
	if output.Warehouse.Customers > 0 {
		fmt.Fprintf(out, "             %d customers\n", output.Warehouse.Customers)
	} else {
		fmt.Fprintln(out, "             empty (run 'churn import <csv>')")
	}
	fmt.Fprintln(out, "")

	// Import section
	if output.LastImport != nil {
		fmt.Fprintf(out, "  Last import: %s\n", output.LastImport.Source)
		fmt.Fprintf(out, "               %d rows, %d warnings\n", output.LastImport.Rows, output.LastImport.Warnings)
		fmt.Fprintf(out, "               %s\n", output.LastImport.ImportedAt)
		fmt.Fprintln(out, "")
	}

	// Cache section
	fmt.Fprintf(out, "  Cache:     %d risk scores", output.Cache.RiskScores)
	if output.LastImport != nil {
		fmt.Fprintf(out, " (%d for current dataset)", output.Cache.CurrentScored)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "             %d report runs\n", output.Cache.ReportRuns)

	// KPI section
	if len(output.KPIs) > 0 {
		fmt.Fprintln(out, "")
		fmt.Fprintf(out, "  KPIs:      churn rate %.2f%%\n", kpiValue(output.KPIs, "churn_rate_percent"))
		fmt.Fprintf(out, "             $%.2f monthly revenue at risk\n", kpiValue(output.KPIs, "monthly_revenue_at_risk"))
	}

	return nil
}

func outputStatusJSON(cmd *cobra.Command, output StatusOutput) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// kpiValue picks a metric out of the KPI rows, zero if absent.
func kpiValue(rows []reports.KPIRow, metric string) float64 {
	for _, r := range rows {
		if r.Metric == metric {
			return r.Value
		}
	}
	return 0
}
