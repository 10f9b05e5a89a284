package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexandro/heatree/metrics"
	"github.com/lexandro/heatree/tree"
)

// metricCellWidth is indicator, space, value, space and bar.
const metricCellWidth = 1 + 1 + 8 + 1 + barWidth

const minNameWidth = 16

// View implements tea.Model.
func (m Model) View() string {
	root := m.nav.Root()
	if root == nil {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(root))
	b.WriteString("\n")
	b.WriteString(renderLegend("Lines  ", metrics.LineBuckets, lineColors))
	b.WriteString("\n")
	b.WriteString(renderLegend("Changes", metrics.ChangeBuckets, changeColors))
	b.WriteString("\n\n")
	b.WriteString(m.renderColumnTitles())
	b.WriteString("\n")
	b.WriteString(m.renderRows())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader(root *tree.Node) string {
	window := fmt.Sprintf("  (%d-day window)", m.options.WindowDays)
	if m.options.NoGit {
		window = "  (no git history)"
	}
	return titleStyle.Render("heatree") + pathStyle.Render("  "+root.Path) + helpStyle.Render(window)
}

func (m Model) nameWidth() int {
	return max(m.width-2*metricCellWidth-2, minNameWidth)
}

func (m Model) renderColumnTitles() string {
	titles := []string{MetricLines.String(), MetricChanges.String()}
	cells := make([]string, len(titles))
	for i, title := range titles {
		style := headerStyle
		if Metric(i) == m.metric {
			style = emphasisStyle
		}
		cells[i] = style.Render(fmt.Sprintf("%*s", metricCellWidth, title))
	}
	return headerStyle.Render(fit("NAME", m.nameWidth())) + " " + cells[0] + " " + cells[1]
}

// renderRows draws the visible window of rows, skipping the root row.
func (m Model) renderRows() string {
	lines := m.nav.Lines()
	if len(lines) <= 1 {
		return helpStyle.Render("No files found") + "\n"
	}
	rows := lines[1:]

	start := min(m.offset, len(rows))
	end := min(start+m.pageSize(), len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i+1 == m.nav.Cursor()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(row tree.LineRow, selected bool) string {
	node := row.Node
	mt := node.Metrics

	var nameColor lipgloss.Color
	if m.metric == MetricLines {
		nameColor = lineColors[mt.LineBucket()]
	} else {
		nameColor = changeColors[mt.ChangeBucket()]
	}
	name := lipgloss.NewStyle().Foreground(nameColor)
	if selected {
		name = name.Background(colorSelected).Bold(true)
	}

	label := connectors(row) + icon(node) + displayName(node)
	return name.Render(fit(label, m.nameWidth())) + " " +
		metricCell(fmt.Sprintf("%8d", mt.LineCount), mt.LineBucket(), lineColors, selected) + " " +
		metricCell(fmt.Sprintf("%8.2f", mt.ChangeRate), mt.ChangeBucket(), changeColors, selected)
}

func metricCell(value string, bucket int, colors []lipgloss.Color, selected bool) string {
	color := colors[bucket]
	return lipgloss.NewStyle().Foreground(color).Render("█") + " " +
		valueStyle.Render(value) + " " +
		renderBar(bucket, color, selected)
}

// connectors draws the tree lines for a row below the root. The root's own
// column is not drawn because the root row is hidden.
func connectors(row tree.LineRow) string {
	var b strings.Builder
	for i := 1; i < row.Depth; i++ {
		if row.AncestorContinues[i] {
			b.WriteString("│ ")
		} else {
			b.WriteString("  ")
		}
	}
	if row.IsLast {
		b.WriteString("└─")
	} else {
		b.WriteString("├─")
	}
	return b.String()
}

func icon(node *tree.Node) string {
	switch {
	case !node.IsDir:
		return "   "
	case node.Expanded:
		return " ▼ "
	default:
		return " ▶ "
	}
}

func displayName(node *tree.Node) string {
	if node.IsDir {
		return node.Name + "/"
	}
	return node.Name
}

func (m Model) renderFooter() string {
	var parts []string
	for _, binding := range m.keys.helpBindings() {
		h := binding.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	total := len(m.nav.Rows()) - 1
	status := fmt.Sprintf("%d/%d  %s", max(m.nav.Cursor(), 0), max(total, 0), m.metric)
	return helpStyle.Render(strings.Join(parts, "  ") + "  |  " + status)
}
