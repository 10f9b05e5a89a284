package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexandro/heatree/metrics"
)

// Heat colors per bucket, coolest first.
var (
	lineColors = []lipgloss.Color{
		"#646464", // <50
		"#3296C8", // 50-100
		"#64C864", // 100-200
		"#C8C864", // 200-500
		"#FFA500", // 500-1K
		"#C83232", // 1K+
	}
	changeColors = []lipgloss.Color{
		"#326496", // <1.7
		"#3296C8", // 1.7-3.4
		"#64C864", // 3.4-5.2
		"#FFC832", // 5.2-6.9
		"#DC3232", // 6.9+
	}
)

const (
	colorTitle    = lipgloss.Color("#0EA5E9")
	colorText     = lipgloss.Color("#C0CAF5")
	colorMuted    = lipgloss.Color("#565F89")
	colorSelected = lipgloss.Color("#414868")
	colorBarTrack = lipgloss.Color("#141E28")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	pathStyle     = lipgloss.NewStyle().Foreground(colorText)
	legendStyle   = lipgloss.NewStyle().Foreground(colorText)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	emphasisStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Underline(true)
	valueStyle    = lipgloss.NewStyle().Foreground(colorText)
)

// barUnit is drawn (bucket+1)*2 times.
const barUnit = "■"

// barWidth fits the widest bar, six buckets of two units each.
const barWidth = 12

// renderBar draws a bucket-sized bar on a fixed-width track.
func renderBar(bucket int, color lipgloss.Color, selected bool) string {
	n := (bucket + 1) * 2
	track := colorBarTrack
	if selected {
		track = colorSelected
	}
	style := lipgloss.NewStyle().Foreground(color).Background(track)
	return style.Render(strings.Repeat(barUnit, n) + strings.Repeat(" ", barWidth-n))
}

// renderLegend draws one swatch per bucket.
func renderLegend(title string, buckets []metrics.Bucket, colors []lipgloss.Color) string {
	var b strings.Builder
	b.WriteString(legendStyle.Render(title + ": "))
	for i, bucket := range buckets {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render("■"))
		b.WriteString(legendStyle.Render(" " + bucket.Label))
	}
	return b.String()
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	out := string(runes) + "…"
	return out + strings.Repeat(" ", width-lipgloss.Width(out))
}
