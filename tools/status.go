package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexandro/heatree/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs defines the input parameters for the heatree_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Index      *index.Index
	WindowDays int
	NoGit      bool // change rates were not computed
	ScannedAt  time.Time
	Logger     *slog.Logger
}

// Handle processes a heatree_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	root := h.Index.Root()
	if root == nil {
		return errorResult("Error: no tree loaded"), nil, nil
	}
	age := time.Since(h.ScannedAt)

	h.Logger.Info("heatree_status",
		"files", h.Index.FileCount(),
		"lines", root.Metrics.LineCount,
		"age", age,
	)

	var builder strings.Builder
	builder.WriteString("=== heatree Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Root directory: %s\n", root.Path))
	if h.NoGit {
		builder.WriteString("Change window: disabled (no git history)\n")
	} else {
		builder.WriteString(fmt.Sprintf("Change window: %d days\n", h.WindowDays))
	}
	builder.WriteString(fmt.Sprintf("Snapshot age: %s\n", formatDuration(age)))
	builder.WriteString(fmt.Sprintf("Files: %d\n", h.Index.FileCount()))
	builder.WriteString(fmt.Sprintf("Directories: %d\n", h.Index.DirCount()))
	builder.WriteString(fmt.Sprintf("Total lines: %d\n", root.Metrics.LineCount))
	builder.WriteString(fmt.Sprintf("Root change rate: %s\n", formatRate(root.Metrics.ChangeRate)))

	languages := h.Index.Languages()
	if len(languages) > 0 {
		builder.WriteString("\nLanguages:\n")
		for _, lang := range languages {
			builder.WriteString(fmt.Sprintf("  %-20s %8d lines  %d files\n", lang.Language, lang.Lines, lang.Files))
		}
	}

	return textResult(builder.String()), nil, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
