package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hargabyte/churn/internal/config"
	"github.com/hargabyte/churn/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server for AI agent integration.

This allows AI agents to run churn reports through MCP tools instead of
spawning CLI commands. The server speaks the protocol over stdio and reads
the warehouse fresh on every call, so a reimport is picked up without a
restart.

Available Tools:
  churn_report     Run a named report from the fixed catalog
  churn_risk       Score customers against the weighted risk indicators
  churn_kpi        Headline KPI summary
  churn_segments   Highest-churn multi-factor segments

Examples:
  churn mcp                           # Start with default tools
  churn mcp --tools report,kpi        # Start with specific tools only
  churn mcp --timeout 30m             # Auto-stop after 30 minutes idle
  churn mcp --status                  # Check if server is running
  churn mcp --stop                    # Stop running server
  churn mcp --list                    # Show available tools`,
	RunE: runMCP,
}

var (
	mcpTools   string
	mcpTimeout string
	mcpStatus  bool
	mcpStop    bool
	mcpList    bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTools, "tools", "", "Comma-separated list of tools to expose (default: report,risk,kpi)")
	mcpCmd.Flags().StringVar(&mcpTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	mcpCmd.Flags().BoolVar(&mcpStatus, "status", false, "Check if server is running")
	mcpCmd.Flags().BoolVar(&mcpStop, "stop", false, "Stop running server")
	mcpCmd.Flags().BoolVar(&mcpList, "list", false, "List available tools")
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Handle --list
	if mcpList {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  churn_report     Run a named report from the fixed catalog")
		fmt.Println("  churn_risk       Score customers against the weighted risk indicators")
		fmt.Println("  churn_kpi        Headline KPI summary")
		fmt.Println("  churn_segments   Highest-churn multi-factor segments")
		fmt.Println()
		fmt.Println("Default set: report, risk, kpi")
		return nil
	}

	// Handle --status
	if mcpStatus {
		return checkServerStatus()
	}

	// Handle --stop
	if mcpStop {
		return stopServer()
	}

	// Parse timeout
	timeout, err := parseTimeout(mcpTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	// Parse tools
	var tools []string
	if mcpTools != "" {
		for _, t := range strings.Split(mcpTools, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				// Allow shorthand (report -> churn_report)
				if !strings.HasPrefix(t, "churn_") {
					t = "churn_" + t
				}
				tools = append(tools, t)
			}
		}
	}

	appCfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(appCfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Create and start server
	cfg := mcp.Config{
		Tools:   tools,
		Timeout: timeout,
		Logger:  log,
	}

	server, err := mcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Write PID file
	if err := writePIDFile(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write PID file: %v\n", err)
	}
	defer removePIDFile()

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nchurn mcp: shutting down\n")
		server.Close()
		removePIDFile()
		os.Exit(0)
	}()

	// Start serving (startup info goes to stderr, stdout is the protocol)
	return server.ServeStdio()
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func getPIDFilePath() (string, error) {
	churnDir, err := config.FindConfigDir(".")
	if err != nil {
		return "", err
	}
	return filepath.Join(churnDir, "mcp.pid"), nil
}

func writePIDFile() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return err
	}
	return os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func removePIDFile() {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return
	}
	os.Remove(pidPath)
}

func checkServerStatus() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		fmt.Println("Status: not running (churn not initialized)")
		return nil
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("Status: not running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Println("Status: not running (invalid PID file)")
		return nil
	}

	// Check if process exists
	process, err := os.FindProcess(pid)
	if err != nil {
		fmt.Println("Status: not running")
		removePIDFile()
		return nil
	}

	// On Unix, FindProcess always succeeds, so we need to send signal 0 to check
	err = process.Signal(syscall.Signal(0))
	if err != nil {
		fmt.Println("Status: not running (stale PID file)")
		removePIDFile()
		return nil
	}

	fmt.Printf("Status: running (PID %d)\n", pid)
	return nil
}

func stopServer() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return fmt.Errorf("churn not initialized")
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("No server running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		removePIDFile()
		return fmt.Errorf("invalid PID file")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		removePIDFile()
		fmt.Println("No server running")
		return nil
	}

	// Send SIGTERM for graceful shutdown
	err = process.Signal(syscall.SIGTERM)
	if err != nil {
		removePIDFile()
		fmt.Println("Server already stopped")
		return nil
	}

	fmt.Printf("Stopped server (PID %d)\n", pid)
	return nil
}
