package tools

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lexandro/heatree/index"
	"github.com/lexandro/heatree/metrics"
	"github.com/lexandro/heatree/tree"
)

// FormatTree draws rows with ├─ / └─ / │ connectors, one node per line,
// followed by its line count and change rate. A directory whose children
// are not among the rows is marked with a trailing "…".
func FormatTree(rows []tree.LineRow) string {
	if len(rows) == 0 {
		return "Empty tree."
	}

	labels := make([]string, len(rows))
	width := 0
	for i, row := range rows {
		labels[i] = treePrefix(row) + nodeLabel(row.Node, collapsed(rows, i))
		if w := utf8.RuneCountInString(labels[i]); w > width {
			width = w
		}
	}

	var builder strings.Builder
	for i, row := range rows {
		pad := width - utf8.RuneCountInString(labels[i])
		builder.WriteString(labels[i])
		builder.WriteString(strings.Repeat(" ", pad))
		builder.WriteString(fmt.Sprintf("  %8s lines  %s\n",
			formatLines(row.Node.Metrics.LineCount),
			formatRate(row.Node.Metrics.ChangeRate),
		))
	}
	return builder.String()
}

// treePrefix builds the connector columns for a row. Column 0 belongs to the
// root, which never has siblings, so it is not drawn.
func treePrefix(row tree.LineRow) string {
	if row.Depth == 0 {
		return ""
	}
	var b strings.Builder
	for i := 1; i < row.Depth; i++ {
		if row.AncestorContinues[i] {
			b.WriteString("│  ")
		} else {
			b.WriteString("   ")
		}
	}
	if row.IsLast {
		b.WriteString("└─ ")
	} else {
		b.WriteString("├─ ")
	}
	return b.String()
}

// collapsed reports whether rows[i] is a non-empty directory whose children
// were not emitted.
func collapsed(rows []tree.LineRow, i int) bool {
	node := rows[i].Node
	if !node.IsDir || len(node.Children) == 0 {
		return false
	}
	return i+1 >= len(rows) || rows[i+1].Depth <= rows[i].Depth
}

func nodeLabel(node *tree.Node, isCollapsed bool) string {
	if !node.IsDir {
		return node.Name
	}
	if isCollapsed {
		return node.Name + "/ …"
	}
	return node.Name + "/"
}

// FormatFileResults lists glob matches with their metrics and buckets.
func FormatFileResults(results []index.Entry, nameOnly bool) string {
	if len(results) == 0 {
		return "No files matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d files:\n\n", len(results)))

	for _, result := range results {
		if nameOnly {
			builder.WriteString(result.RelativePath)
			builder.WriteString("\n")
			continue
		}
		m := result.Node.Metrics
		builder.WriteString(fmt.Sprintf("  %s  (%s, %d lines [%s], %s [%s])\n",
			result.RelativePath,
			result.Node.Language,
			m.LineCount,
			metrics.LineBuckets[m.LineBucket()].Label,
			formatRate(m.ChangeRate),
			metrics.ChangeBuckets[m.ChangeBucket()].Label,
		))
	}
	return builder.String()
}

// FormatHotspots renders a ranked file list.
func FormatHotspots(entries []index.Entry, key index.SortKey) string {
	if len(entries) == 0 {
		return "No hotspots: no file has a non-zero value for " + string(key) + "."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Top %d files by %s:\n\n", len(entries), key))

	width := len(fmt.Sprintf("%d", len(entries)))
	for i, entry := range entries {
		m := entry.Node.Metrics
		builder.WriteString(fmt.Sprintf("%*d. %s  %s, %s lines\n",
			width, i+1,
			entry.RelativePath,
			formatRate(m.ChangeRate),
			formatLines(m.LineCount),
		))
	}
	return builder.String()
}

// formatRate prints a change rate with two decimals.
func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f/day", rate)
}

// formatLines shortens large line counts.
func formatLines(lines int) string {
	switch {
	case lines >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(lines)/1_000_000)
	case lines >= 10_000:
		return fmt.Sprintf("%.1fK", float64(lines)/1_000)
	default:
		return fmt.Sprintf("%d", lines)
	}
}
