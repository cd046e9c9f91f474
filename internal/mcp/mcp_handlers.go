package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oeg-upm/metacheck/core"
	"github.com/oeg-upm/metacheck/core/rules"
	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/recordio"
	"github.com/oeg-upm/metacheck/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleEvaluateRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recordPath := request.GetString("record_path", "")
	if recordPath == "" {
		return mcp.NewToolResultError("--record-path is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if request.GetBool("skip_probes", false) {
		cfg.SkipProbes = true
	}

	rec, err := recordio.Loader{}.Load(recordPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("record load failed: %v", err)), nil
	}

	catalog := rules.Catalog(core.BuildProber(cfg, h.mgr))
	findings := core.EvaluateRecord(ctx, catalog, rec, recordPath)

	result := schema.RepoResult{FileName: recordPath, Findings: findings}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputPath := request.GetString("input_path", "")
	if inputPath == "" {
		return mcp.NewToolResultError("--input-path is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Inputs = []string{inputPath}
	if request.GetBool("skip_probes", false) {
		cfg.SkipProbes = true
	}

	catalog := rules.Catalog(core.BuildProber(cfg, h.mgr))
	report, err := core.RunBatch(ctx, cfg, catalog, recordio.Loader{}, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListChecks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type checkInfo struct {
		CheckID     string `json:"check_id"`
		Severity    string `json:"severity"`
		Description string `json:"description"`
	}

	catalog := rules.Catalog(core.BuildProber(h.baseCfg, h.mgr))
	infos := make([]checkInfo, 0, len(catalog))
	for _, rule := range catalog {
		infos = append(infos, checkInfo{
			CheckID:     rule.ID(),
			Severity:    string(rule.Severity()),
			Description: rule.Description(),
		})
	}

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
