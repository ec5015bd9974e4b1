// Package mcp provides an MCP (Model Context Protocol) server for churn.
// This allows AI agents to run churn reports through MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hargabyte/churn/internal/cache"
	"github.com/hargabyte/churn/internal/config"
	"github.com/hargabyte/churn/internal/dataset"
	"github.com/hargabyte/churn/internal/model"
	"github.com/hargabyte/churn/internal/reports"
	"github.com/hargabyte/churn/internal/risk"
	"github.com/hargabyte/churn/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Server wraps the MCP server with churn-specific functionality
type Server struct {
	mcpServer    *server.MCPServer
	store        *store.Store
	cache        *cache.Cache
	cfg          *config.Config
	logger       *zap.Logger
	churnDir     string
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = default set)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
	Logger  *zap.Logger   // Diagnostics logger (nil = no-op)
}

// DefaultTools is the default set of tools to expose
var DefaultTools = []string{"churn_report", "churn_risk", "churn_kpi"}

// AllTools lists all available tools
var AllTools = []string{"churn_report", "churn_risk", "churn_kpi", "churn_segments"}

// New creates a new MCP server for churn
func New(cfg Config) (*Server, error) {
	// Find .churn directory
	churnDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("churn not initialized: run 'churn init' first")
	}

	appCfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Open warehouse
	storeDB, err := store.Open(churnDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Open score cache
	scoreCache, err := cache.Open(churnDir)
	if err != nil {
		storeDB.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"churn",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		store:        storeDB,
		cache:        scoreCache,
		cfg:          appCfg,
		logger:       logger,
		churnDir:     churnDir,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	// Determine which tools to register
	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = DefaultTools
	}

	// Register tools
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			scoreCache.Close()
			storeDB.Close()
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "churn_report":
		return s.registerReportTool()
	case "churn_risk":
		return s.registerRiskTool()
	case "churn_kpi":
		return s.registerKPITool()
	case "churn_segments":
		return s.registerSegmentsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	// Start timeout checker if timeout is set
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	s.logger.Info("mcp server listening on stdio",
		zap.Strings("tools", s.ListTools()),
		zap.Duration("timeout", s.timeout))

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			s.logger.Info("mcp server exiting after inactivity", zap.Duration("timeout", s.timeout))
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Close closes the server and its resources
func (s *Server) Close() error {
	var firstErr error
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			firstErr = err
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry holds the schema definitions for all tools.
// These mirror the mcp.NewTool() definitions in the register*Tool() functions.
var toolSchemaRegistry = map[string]ToolSchema{
	"churn_report": {
		Name:        "churn_report",
		Description: "Run a named report from the fixed catalog. Returns aggregate rows as JSON.",
		Parameters: []ParameterSchema{
			{Name: "name", Type: "string", Description: "Report name (churn, contract, tenure, revenue, kpi, overview, ...)", Required: true},
			{Name: "min_size", Type: "number", Description: "Minimum group size for segment reports (default: from config)"},
			{Name: "top", Type: "number", Description: "Maximum rows for ranked reports (default: from config)"},
		},
	},
	"churn_risk": {
		Name:        "churn_risk",
		Description: "Score every customer against the weighted risk indicators. Returns the tier breakdown and the top at-risk customers.",
		Parameters: []ParameterSchema{
			{Name: "min_score", Type: "number", Description: "Only include customers at or above this score (0-100)"},
			{Name: "top", Type: "number", Description: "Maximum customers to return (default: from config)"},
		},
	},
	"churn_kpi": {
		Name:        "churn_kpi",
		Description: "Headline KPI summary: customer count, churn rate, average charges and tenure.",
		Parameters:  []ParameterSchema{},
	},
	"churn_segments": {
		Name:        "churn_segments",
		Description: "Highest-churn contract/internet/payment segments ranked by churn rate.",
		Parameters: []ParameterSchema{
			{Name: "min_size", Type: "number", Description: "Drop segments with fewer customers than this (default: from config)"},
			{Name: "top", Type: "number", Description: "Maximum segments to return (default: from config)"},
		},
	},
}

// GetToolSchemas returns schemas for all registered tools.
func (s *Server) GetToolSchemas() []ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schemas := make([]ToolSchema, 0, len(s.tools))
	for name := range s.tools {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments.
// Returns the JSON result string or an error.
func (s *Server) CallTool(name string, args map[string]interface{}) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s (run 'churn mcp --list' to see available tools)", name)
	}

	switch name {
	case "churn_report":
		report, _ := args["name"].(string)
		if report == "" {
			return "", fmt.Errorf("name parameter is required")
		}
		minSize := s.cfg.Reports.MinSegmentSize
		if m, ok := args["min_size"].(float64); ok {
			minSize = int(m)
		}
		top := s.cfg.Reports.Top
		if t, ok := args["top"].(float64); ok {
			top = int(t)
		}
		return s.executeReport(report, minSize, top)

	case "churn_risk":
		minScore := 0
		if m, ok := args["min_score"].(float64); ok {
			minScore = int(m)
		}
		top := s.cfg.Reports.Top
		if t, ok := args["top"].(float64); ok {
			top = int(t)
		}
		return s.executeRisk(minScore, top)

	case "churn_kpi":
		return s.executeKPI()

	case "churn_segments":
		minSize := s.cfg.Reports.MinSegmentSize
		if m, ok := args["min_size"].(float64); ok {
			minSize = int(m)
		}
		top := s.cfg.Reports.Top
		if t, ok := args["top"].(float64); ok {
			top = int(t)
		}
		return s.executeSegments(minSize, top)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// registerReportTool registers the churn_report tool
func (s *Server) registerReportTool() error {
	tool := mcp.NewTool("churn_report",
		mcp.WithDescription("Run a named report from the fixed catalog. Returns aggregate rows as JSON."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Report name (churn, contract, tenure, revenue, kpi, overview, ...)"),
		),
		mcp.WithNumber("min_size",
			mcp.Description("Minimum group size for segment reports (default: from config)"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum rows for ranked reports (default: from config)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleReport)
	return nil
}

// registerRiskTool registers the churn_risk tool
func (s *Server) registerRiskTool() error {
	tool := mcp.NewTool("churn_risk",
		mcp.WithDescription("Score every customer against the weighted risk indicators. Returns the tier breakdown and the top at-risk customers."),
		mcp.WithNumber("min_score",
			mcp.Description("Only include customers at or above this score (0-100)"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum customers to return (default: from config)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleRisk)
	return nil
}

// registerKPITool registers the churn_kpi tool
func (s *Server) registerKPITool() error {
	tool := mcp.NewTool("churn_kpi",
		mcp.WithDescription("Headline KPI summary: customer count, churn rate, average charges and tenure."),
	)

	s.mcpServer.AddTool(tool, s.handleKPI)
	return nil
}

// registerSegmentsTool registers the churn_segments tool
func (s *Server) registerSegmentsTool() error {
	tool := mcp.NewTool("churn_segments",
		mcp.WithDescription("Highest-churn contract/internet/payment segments ranked by churn rate."),
		mcp.WithNumber("min_size",
			mcp.Description("Drop segments with fewer customers than this (default: from config)"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum segments to return (default: from config)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleSegments)
	return nil
}

// Tool handlers

func (s *Server) handleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	minSize := s.cfg.Reports.MinSegmentSize
	if m, ok := args["min_size"].(float64); ok {
		minSize = int(m)
	}

	top := s.cfg.Reports.Top
	if t, ok := args["top"].(float64); ok {
		top = int(t)
	}

	result, err := s.executeReport(name, minSize, top)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleRisk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	minScore := 0
	if m, ok := args["min_score"].(float64); ok {
		minScore = int(m)
	}

	top := s.cfg.Reports.Top
	if t, ok := args["top"].(float64); ok {
		top = int(t)
	}

	result, err := s.executeRisk(minScore, top)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleKPI(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	result, err := s.executeKPI()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSegments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	minSize := s.cfg.Reports.MinSegmentSize
	if m, ok := args["min_size"].(float64); ok {
		minSize = int(m)
	}

	top := s.cfg.Reports.Top
	if t, ok := args["top"].(float64); ok {
		top = int(t)
	}

	result, err := s.executeSegments(minSize, top)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// Execution functions (implementations)

func (s *Server) executeReport(name string, minSize, top int) (string, error) {
	report, ok := reports.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown report: %s (valid reports: %s)", name, strings.Join(reports.Names(), ", "))
	}

	records, err := s.loadRecords()
	if err != nil {
		return "", err
	}

	opts := reports.Options{
		MinSegmentSize: minSize,
		Top:            top,
		Weights:        s.cfg.Risk,
	}

	start := time.Now()
	data, err := report.Run(records, opts)
	if err != nil {
		return "", fmt.Errorf("report %s: %w", name, err)
	}

	// Best effort: the report output is valid even if the run record fails.
	_ = s.cache.RecordReportRun(name, dataset.Checksum(records), time.Since(start))

	s.logger.Debug("mcp tool call",
		zap.String("tool", "churn_report"),
		zap.String("report", name),
		zap.Int("customers", len(records)))

	return toJSON(map[string]interface{}{
		"report":    name,
		"customers": len(records),
		"data":      data,
	})
}

func (s *Server) executeRisk(minScore, top int) (string, error) {
	records, err := s.loadRecords()
	if err != nil {
		return "", err
	}

	profile, err := reports.Risk(records, s.cfg.Risk, minScore, top)
	if err != nil {
		return "", fmt.Errorf("risk profile: %w", err)
	}

	s.cacheRiskScores(records)

	s.logger.Debug("mcp tool call",
		zap.String("tool", "churn_risk"),
		zap.Int("min_score", minScore),
		zap.Int("customers", len(records)))

	return toJSON(map[string]interface{}{
		"customers": len(records),
		"tiers":     profile.Tiers,
		"top":       profile.Customers,
	})
}

func (s *Server) executeKPI() (string, error) {
	records, err := s.loadRecords()
	if err != nil {
		return "", err
	}

	kpis, err := reports.KPISummary(records)
	if err != nil {
		return "", fmt.Errorf("kpi summary: %w", err)
	}

	s.logger.Debug("mcp tool call",
		zap.String("tool", "churn_kpi"),
		zap.Int("customers", len(records)))

	return toJSON(map[string]interface{}{
		"customers": len(records),
		"kpis":      kpis,
	})
}

func (s *Server) executeSegments(minSize, top int) (string, error) {
	records, err := s.loadRecords()
	if err != nil {
		return "", err
	}

	dims := []reports.Dimension{reports.DimContract, reports.DimInternetService, reports.DimPaymentMethod}
	segments, err := reports.MultiFactorSegments(records, reports.Churned, dims, minSize, top)
	if err != nil {
		return "", fmt.Errorf("segment report: %w", err)
	}

	s.logger.Debug("mcp tool call",
		zap.String("tool", "churn_segments"),
		zap.Int("min_size", minSize),
		zap.Int("segments", len(segments)))

	return toJSON(map[string]interface{}{
		"customers": len(records),
		"min_size":  minSize,
		"segments":  segments,
	})
}

// loadRecords loads the current dataset from the warehouse. Records are
// loaded fresh on every call so a reimport is picked up without restarting
// the server.
func (s *Server) loadRecords() ([]model.Customer, error) {
	records, err := s.store.LoadCustomers()
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no customer data found: run 'churn import <csv>' first")
	}

	return records, nil
}

// cacheRiskScores saves the scored dataset keyed by its checksum so
// 'churn status' can report score coverage without recomputing.
func (s *Server) cacheRiskScores(records []model.Customer) {
	entries := make([]cache.RiskEntry, len(records))
	for i, c := range records {
		score := risk.ScoreWithWeights(c, s.cfg.Risk)
		entries[i] = cache.RiskEntry{
			CustomerID: c.CustomerID,
			Score:      score,
			Tier:       risk.Classify(score).String(),
		}
	}

	// Best effort: scoring output is valid even if the cache write fails.
	if err := s.cache.PutRiskScores(dataset.Checksum(records), entries); err != nil {
		s.logger.Warn("risk score cache write failed", zap.Error(err))
	}
}

// Helper functions

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
