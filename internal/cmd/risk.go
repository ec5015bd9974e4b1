package cmd

import (
	"fmt"
	"time"

	"github.com/hargabyte/churn/internal/reports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// riskCmd represents the risk command
var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Score customers against the weighted risk indicators",
	Long: `Score every customer on the additive risk indicators and rank them.

Each customer starts at zero and collects points per indicator: a
month-to-month contract, fiber optic internet, electronic check payment,
short tenure, and senior citizen status. The weights live in config.yaml
under 'risk' and sum to at most 100, so scores stay in [0,100]. Scores map
to tiers: critical (80+), high (60+), medium (40+), low.

The output pairs the tier breakdown of the whole dataset with the
highest-scoring customers. Scores are also saved to the cache keyed by the
dataset checksum; 'churn status' reports the coverage.

Examples:
  churn risk                          # Tier breakdown plus top customers
  churn risk --top 20                 # Top 20 at-risk customers
  churn risk --min-score 60           # Only high and critical tiers
  churn risk --format table -o risk.txt`,
	RunE: runRisk,
}

// Risk flags
var (
	riskCSV      string
	riskOutput   string
	riskTop      int
	riskMinScore int
)

func init() {
	rootCmd.AddCommand(riskCmd)

	riskCmd.Flags().StringVar(&riskCSV, "csv", "", "Read customers from this CSV instead of the warehouse")
	riskCmd.Flags().StringVarP(&riskOutput, "output", "o", "", "Output file path (default: stdout)")
	riskCmd.Flags().IntVar(&riskTop, "top", 0, "Maximum customers to list (default: from config)")
	riskCmd.Flags().IntVar(&riskMinScore, "min-score", 0, "Only list customers at or above this score (0-100)")
}

func runRisk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	records, source, err := loadRecords(cfg, riskCSV, log)
	if err != nil {
		return err
	}

	top := cfg.Reports.Top
	if riskTop > 0 {
		top = riskTop
	}

	start := time.Now()
	profile, err := reports.Risk(records, cfg.Risk, riskMinScore, top)
	if err != nil {
		return fmt.Errorf("risk profile: %w", err)
	}

	cacheScores(records, cfg.Risk, log)

	log.Debug("risk profile complete",
		zap.String("source", source),
		zap.Int("customers", len(records)),
		zap.Int("listed", len(profile.Customers)),
		zap.Duration("elapsed", time.Since(start)))

	return renderResult(profile, riskOutput, cfg)
}
