package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexandro/heatree/index"
	"github.com/lexandro/heatree/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultTreeDepth is how many levels below the requested path are shown
// when the caller does not pass a depth.
const DefaultTreeDepth = 2

// TreeArgs defines the input parameters for the heatree_tree tool.
type TreeArgs struct {
	Path  string `json:"path,omitempty" jsonschema:"Relative path of the directory to show (default: repository root)"`
	Depth int    `json:"depth,omitempty" jsonschema:"Levels to expand below path (default 2, negative for unlimited)"`
}

// TreeHandler holds the dependencies for the tree tool.
type TreeHandler struct {
	Index  *index.Index
	Logger *slog.Logger
}

// Handle processes a heatree_tree request. Expansion is computed per request
// and never touches the nodes' Expanded flags.
func (h *TreeHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args TreeArgs) (*mcp.CallToolResult, any, error) {
	node := h.Index.Get(args.Path)
	if node == nil {
		h.Logger.Warn("heatree_tree path not found", "path", args.Path)
		return errorResult(fmt.Sprintf("Error: path not found: %s", args.Path)), nil, nil
	}

	depth := args.Depth
	if depth == 0 {
		depth = DefaultTreeDepth
	}
	rows := tree.FlattenWithTreeLinesFunc(node, func(_ *tree.Node, d int) bool {
		return depth < 0 || d < depth
	})

	h.Logger.Info("heatree_tree", "path", args.Path, "depth", depth, "rows", len(rows))
	return textResult(FormatTree(rows)), nil, nil
}
