package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/hargabyte/churn/internal/reports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run a report from the fixed catalog",
	Long: `Run a named report over the customer dataset.

Reports are a fixed catalog of aggregate views: distributions, churn-rate
breakdowns, revenue summaries, lifetime value estimates, and statistical
comparisons. Running 'churn report' without a name lists the catalog.

The dataset comes from the warehouse by default. Use --csv to run against
a CSV file directly, or set dataset.csv in config.yaml to make that the
default source.

Examples:
  churn report                        # List the catalog
  churn report churn                  # Churn label distribution
  churn report contract               # Churn rate by contract term
  churn report segments --min-size 30 # Multi-factor segments, bigger groups
  churn report kpi --format table     # Headline KPIs as a table
  churn report revenue -o revenue.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

// Report flags
var (
	reportCSV     string
	reportOutput  string
	reportMinSize int
	reportTop     int
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "Read customers from this CSV instead of the warehouse")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file path (default: stdout)")
	reportCmd.Flags().IntVar(&reportMinSize, "min-size", 0, "Minimum group size for segment reports (default: from config)")
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "Maximum rows for ranked reports (default: from config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listReports(cmd)
	}
	name := args[0]

	rep, ok := reports.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown report: %s (valid reports: %s)", name, strings.Join(reports.Names(), ", "))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	records, source, err := loadRecords(cfg, reportCSV, log)
	if err != nil {
		return err
	}

	opts := reports.Options{
		MinSegmentSize: cfg.Reports.MinSegmentSize,
		Top:            cfg.Reports.Top,
		Weights:        cfg.Risk,
	}
	if reportMinSize > 0 {
		opts.MinSegmentSize = reportMinSize
	}
	if reportTop > 0 {
		opts.Top = reportTop
	}

	start := time.Now()
	data, err := rep.Run(records, opts)
	if err != nil {
		return fmt.Errorf("report %s: %w", name, err)
	}
	elapsed := time.Since(start)

	recordReportRun(name, records, elapsed)

	log.Debug("report complete",
		zap.String("report", name),
		zap.String("source", source),
		zap.Int("customers", len(records)),
		zap.Duration("elapsed", elapsed))

	return renderResult(data, reportOutput, cfg)
}

// listReports prints the report catalog in listing order.
func listReports(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available reports:")
	fmt.Fprintln(out)
	for _, r := range reports.Catalog {
		fmt.Fprintf(out, "  %-10s %s\n", r.Name, r.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'churn report <name>' to execute one.")

	return nil
}
