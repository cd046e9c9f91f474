// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/oeg-upm/metacheck/internal/contract"
)

// NewMCPServer initializes and configures the metacheck MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Metacheck Quality Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: evaluate_repository ---
	s.AddTool(mcp.NewTool("evaluate_repository",
		mcp.WithDescription("Run the full quality check catalog over one extracted metadata record file."),
		mcp.WithString("record_path", mcp.Description("Path to the extracted metadata JSON file."), mcp.Required()),
		mcp.WithBoolean("skip_probes", mcp.Description("Skip network probes; URL checks report inaccessible without I/O.")),
	), h.handleEvaluateRepository)

	// --- 2. Tool: evaluate_batch ---
	s.AddTool(mcp.NewTool("evaluate_batch",
		mcp.WithDescription("Evaluate every metadata record in a directory and return the aggregate report."),
		mcp.WithString("input_path", mcp.Description("Path to a directory of metadata JSON files, or a single file."), mcp.Required()),
		mcp.WithBoolean("skip_probes", mcp.Description("Skip network probes; URL checks report inaccessible without I/O.")),
	), h.handleEvaluateBatch)

	// --- 3. Tool: list_checks ---
	s.AddTool(mcp.NewTool("list_checks",
		mcp.WithDescription("List every quality check in the catalog with its severity and description."),
	), h.handleListChecks)

	return s
}

// StartMCPServer starts the metacheck MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
