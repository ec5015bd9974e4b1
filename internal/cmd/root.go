// Package cmd contains all CLI commands for churn.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of churn
	Version = "0.1.0"

	// Global flags
	verbose      bool
	configPath   string
	forAgents    bool
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "churn",
	Short: "Descriptive analytics CLI for telecom customer churn",
	Long: `churn is a descriptive analytics tool for telecom customer churn data.

It imports customer CSV exports into a local Dolt warehouse and runs a
fixed catalog of reports over them: churn splits, rate breakdowns by
contract or payment method, revenue summaries, lifetime value estimates,
statistical comparisons, and a weighted risk score for every customer.

Output Format:
  All reports print YAML by default. Use --format to switch to JSON for
  scripts or to an aligned table for terminals.

Main capabilities:
  - Import and validate customer CSV datasets
  - Run catalog reports (churn, contract, tenure, revenue, kpi, ...)
  - Score customers against weighted risk indicators
  - Expose the same reports to AI agents over MCP

Global Flags:
  --format    Output format: yaml (default) | json | table
  --config    Path to config file (default: .churn/config.yaml)

Examples:
  churn init                          # Initialize the project
  churn import data/customers.csv     # Load a dataset
  churn report contract               # Churn rate by contract term
  churn report kpi --format table     # Headline KPIs as a table
  churn risk --top 20                 # Top 20 at-risk customers
  churn mcp                           # Serve reports over MCP

See 'churn <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .churn/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (yaml|json|table; default from config)")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	// Set custom help function to intercept --for-agents flag
	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// CommandInfo represents a command for agent discovery
type CommandInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
}

// FlagInfo represents a command flag for agent discovery
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// outputAgentHelp outputs machine-readable JSON describing all commands
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())

	output := map[string]interface{}{
		"version":      Version,
		"commands":     root.Subcommands,
		"global_flags": root.Flags,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// buildCommandInfo recursively builds command information for agent discovery
func buildCommandInfo(cmd *cobra.Command) CommandInfo {
	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
	}

	// Collect flags
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		info.Flags = append(info.Flags, FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})

	// Collect subcommands
	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
		}
	}

	// Extract examples from Example field if available
	if cmd.Example != "" {
		// Split by newline and filter empty lines
		lines := strings.Split(cmd.Example, "\n")
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				info.Examples = append(info.Examples, trimmed)
			}
		}
	}

	return info
}
