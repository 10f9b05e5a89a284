package server

import (
	"github.com/lexandro/heatree/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Setup creates the MCP server and registers the heatree tools.
func Setup(
	treeHandler *tools.TreeHandler,
	filesHandler *tools.FilesHandler,
	hotspotsHandler *tools.HotspotsHandler,
	statusHandler *tools.StatusHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "heatree",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server exposes a heatmap snapshot of a source tree: line counts and git change frequency (commits touching a path per day) for every file, aggregated per directory.

Use these tools to find where a codebase is large and where it changes often:
- heatree_status for totals, the analysis window and the language breakdown
- heatree_tree to browse a directory with per-node lines and changes/day
- heatree_hotspots for the most frequently changed or largest files
- heatree_files to look up metrics for files matching a glob

The snapshot is taken once at startup and does not follow later edits.`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "heatree_tree",
		Description: `Show the directory tree with line counts and change rates.

Directories list subdirectories first, then files, each by name. A directory's lines are the sum of its contents; its change rate is the mean over children with lines. Directories whose contents are not shown end with "…".

Parameters:
  - path: relative directory (default: root)
  - depth: levels below path to expand (default 2, negative for all)`,
	}, treeHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "heatree_files",
		Description: `Find files by glob pattern and show their metrics and heat buckets.

Pattern examples:
  - "**/*.go" - all Go files
  - "src/**/*.ts" - TypeScript files under src/
  - "*.json" - JSON files in root only`,
	}, filesHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "heatree_hotspots",
		Description: `List the files with the highest change rate (by: "changeRate", default) or the most lines (by: "lines").`,
	}, hotspotsHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "heatree_status",
		Description: "Show snapshot status: root, change window, file and directory counts, total lines, languages.",
	}, statusHandler.Handle)

	return mcpServer
}
