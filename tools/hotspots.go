package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexandro/heatree/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HotspotsArgs defines the input parameters for the heatree_hotspots tool.
type HotspotsArgs struct {
	By    string `json:"by,omitempty" jsonschema:"Ranking metric: changeRate (default) or lines"`
	Limit int    `json:"limit,omitempty" jsonschema:"Number of files to return (default 50)"`
}

// HotspotsHandler holds the dependencies for the hotspots tool.
type HotspotsHandler struct {
	Index  *index.Index
	Logger *slog.Logger
}

// Handle processes a heatree_hotspots request.
func (h *HotspotsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args HotspotsArgs) (*mcp.CallToolResult, any, error) {
	key, err := index.ParseSortKey(args.By)
	if err != nil {
		h.Logger.Warn("heatree_hotspots bad sort key", "by", args.By)
		return errorResult(fmt.Sprintf("Error: %v", err)), nil, nil
	}

	entries := h.Index.Hotspots(args.Limit, key)
	h.Logger.Info("heatree_hotspots", "by", key, "results", len(entries))
	return textResult(FormatHotspots(entries, key)), nil, nil
}
