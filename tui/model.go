// Package tui is the interactive heatmap browser.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexandro/heatree/tree"
)

// Metric selects the emphasized column.
type Metric int

const (
	MetricLines Metric = iota
	MetricChanges
)

// String returns the column title.
func (m Metric) String() string {
	if m == MetricChanges {
		return "CHANGES/DAY"
	}
	return "LINES"
}

// chromeHeight is the number of lines used by the header, legend, column
// titles and footer.
const chromeHeight = 6

// Options configures a Model.
type Options struct {
	WindowDays int  // shown in the header
	NoGit      bool // change rates were not computed
}

// Model is the bubbletea model. The root row is never displayed, so the
// cursor stays at 1 or below whenever the root has visible children.
type Model struct {
	nav     *tree.Navigator
	keys    KeyMap
	options Options
	metric  Metric
	offset  int // first visible row index, counted without the root row
	width   int
	height  int
}

// New creates a Model browsing root.
func New(root *tree.Node, options Options) Model {
	m := Model{
		nav:     tree.NewNavigator(root),
		keys:    DefaultKeyMap(),
		options: options,
		width:   100,
		height:  30,
	}
	m.skipRoot()
	return m
}

// Navigator exposes the underlying navigation state.
func (m Model) Navigator() *tree.Navigator {
	return m.nav
}

// Metric returns the emphasized column.
func (m Model) Metric() Metric {
	return m.metric
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	rowCount := len(m.nav.Rows())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.nav.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.nav.SetCursor(m.nav.Cursor() - m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.nav.SetCursor(m.nav.Cursor() + m.pageSize())
	case key.Matches(msg, m.keys.Top):
		m.nav.SetCursor(1)
	case key.Matches(msg, m.keys.Bottom):
		m.nav.SetCursor(rowCount - 1)
	case key.Matches(msg, m.keys.Toggle):
		if m.nav.Cursor() > 0 {
			m.nav.ToggleSelected()
		}
	case key.Matches(msg, m.keys.ExpandAll):
		if sel := m.selected(); sel != nil {
			m.nav.ExpandAll(sel.Path)
		}
	case key.Matches(msg, m.keys.CollapseAll):
		if sel := m.selected(); sel != nil {
			m.nav.CollapseAll(sel.Path)
		}
	case key.Matches(msg, m.keys.SwitchMetric):
		m.metric = (m.metric + 1) % 2
	}

	m.skipRoot()
	m.scroll()
	return m, nil
}

// selected returns the node under the cursor, excluding the hidden root.
func (m Model) selected() *tree.Node {
	if m.nav.Cursor() == 0 {
		return nil
	}
	return m.nav.Selected()
}

// skipRoot moves the cursor off the hidden root row when possible.
func (m *Model) skipRoot() {
	if m.nav.Cursor() == 0 && len(m.nav.Rows()) > 1 {
		m.nav.SetCursor(1)
	}
}

func (m Model) pageSize() int {
	if h := m.height - chromeHeight; h > 1 {
		return h
	}
	return 1
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	visible := m.nav.Cursor() - 1
	page := m.pageSize()
	if visible < m.offset {
		m.offset = max(visible, 0)
	}
	if visible >= m.offset+page {
		m.offset = visible - page + 1
	}
	if last := len(m.nav.Rows()) - 1 - page; m.offset > last {
		m.offset = max(last, 0)
	}
}
