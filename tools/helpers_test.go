package tools

import (
	"io"
	"log/slog"

	"github.com/lexandro/heatree/index"
	"github.com/lexandro/heatree/metrics"
	"github.com/lexandro/heatree/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testIndex indexes:
//
//	/p
//	├─ src
//	│  ├─ main.go   (120 lines, 0.4/day)
//	│  └─ util.go   (30 lines, 0.4/day)
//	├─ README.md    (40 lines)
//	└─ build.sh     (10 lines, 1.5/day)
func testIndex() *index.Index {
	root := tree.NewDir("p", "/p")
	src := tree.NewDir("src", "/p/src")

	add := func(parent *tree.Node, name, lang string, lines int, rate float64) {
		n := tree.NewFile(name, parent.Path+"/"+name, metrics.Metrics{LineCount: lines, ChangeRate: rate})
		n.Language = lang
		parent.AddChild(n)
	}
	add(src, "main.go", "Go", 120, 0.4)
	add(src, "util.go", "Go", 30, 0.4)
	src.Aggregate()
	root.AddChild(src)
	add(root, "README.md", "Markdown", 40, 0)
	add(root, "build.sh", "Shell", 10, 1.5)
	root.Aggregate()
	root.SortChildren()
	return index.Build(root)
}

func resultText(result *mcp.CallToolResult) string {
	return result.Content[0].(*mcp.TextContent).Text
}
