package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexandro/heatree/metrics"
	"github.com/lexandro/heatree/tree"
)

// sampleTree builds /r with a/x.go, b/y.go and z.txt; only the root is
// expanded.
func sampleTree() *tree.Node {
	root := tree.NewDir("r", "/r")
	root.Expanded = true

	a := tree.NewDir("a", "/r/a")
	a.AddChild(tree.NewFile("x.go", "/r/a/x.go", metrics.Metrics{LineCount: 120, ChangeRate: 2}))
	a.Aggregate()
	b := tree.NewDir("b", "/r/b")
	b.AddChild(tree.NewFile("y.go", "/r/b/y.go", metrics.Metrics{LineCount: 5}))
	b.Aggregate()

	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(tree.NewFile("z.txt", "/r/z.txt", metrics.Metrics{LineCount: 1500, ChangeRate: 7.5}))
	root.Aggregate()
	root.SortChildren()
	return root
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func Test_New_CursorSkipsRoot(t *testing.T) {
	m := New(sampleTree(), Options{WindowDays: 30})
	if m.Navigator().Cursor() != 1 {
		t.Errorf("expected cursor on first child, got %d", m.Navigator().Cursor())
	}
}

func Test_Update_MoveUpStopsBelowRoot(t *testing.T) {
	m := New(sampleTree(), Options{})
	m = send(t, m, runes("k"), tea.KeyMsg{Type: tea.KeyUp})
	if m.Navigator().Cursor() != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", m.Navigator().Cursor())
	}
}

func Test_Update_MoveDown(t *testing.T) {
	m := New(sampleTree(), Options{})
	m = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown}, runes("j"))
	if got := m.Navigator().Selected().Name; got != "z.txt" {
		t.Errorf("expected z.txt selected, got %s", got)
	}
}

func Test_Update_ToggleAndCollapse(t *testing.T) {
	root := sampleTree()
	m := New(root, Options{})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	a := root.Find("/r/a")
	if !a.Expanded {
		t.Fatal("expected enter to expand a")
	}
	if len(m.Navigator().Rows()) != 5 {
		t.Errorf("expected 5 rows after expanding a, got %d", len(m.Navigator().Rows()))
	}

	m = send(t, m, runes("o"))
	if a.Expanded {
		t.Error("expected o to collapse a")
	}
}

func Test_Update_ExpandAllCollapseAll(t *testing.T) {
	root := sampleTree()
	m := New(root, Options{})

	m = send(t, m, runes("j"), runes("O"))
	if !root.Find("/r/b").Expanded {
		t.Error("expected O to expand b")
	}
	if root.Find("/r/a").Expanded {
		t.Error("expected O to leave a alone")
	}

	m = send(t, m, runes("C"))
	if root.Find("/r/b").Expanded {
		t.Error("expected C to collapse b")
	}
	if !root.Expanded {
		t.Error("expected root to stay expanded")
	}
}

func Test_Update_ToggleFileIsNoop(t *testing.T) {
	m := New(sampleTree(), Options{})
	m = send(t, m, runes("G"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.Navigator().Rows()); got != 4 {
		t.Errorf("expected 4 rows, got %d", got)
	}
}

func Test_Update_SwitchMetric(t *testing.T) {
	m := New(sampleTree(), Options{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Metric() != MetricChanges {
		t.Errorf("expected changes metric, got %v", m.Metric())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Metric() != MetricLines {
		t.Errorf("expected lines metric, got %v", m.Metric())
	}
}

func Test_Update_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := New(sampleTree(), Options{})
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func Test_Update_ScrollFollowsCursor(t *testing.T) {
	root := sampleTree()
	root.ExpandAll()
	m := New(root, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: chromeHeight + 2})

	m = send(t, m, runes("G"))
	view := m.View()
	if !strings.Contains(view, "z.txt") {
		t.Errorf("expected last row visible, got:\n%s", view)
	}
	if strings.Contains(view, "a/") {
		t.Errorf("expected first rows scrolled out, got:\n%s", view)
	}
}

func Test_View_HidesRootAndDrawsConnectors(t *testing.T) {
	root := sampleTree()
	root.Find("/r/a").Expanded = true
	m := New(root, Options{WindowDays: 14})

	view := m.View()
	for _, want := range []string{"heatree", "/r", "14-day window", "├─ ▼ a/", "│ └─   x.go", "└─   z.txt", "LINES", "CHANGES/DAY", "1K+", "6.9+"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
	for _, line := range strings.Split(view, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "r/") {
			t.Errorf("expected root row hidden, got line %q", line)
		}
	}
}

func Test_View_EmptyTree(t *testing.T) {
	root := tree.NewDir("empty", "/empty")
	root.Expanded = true
	m := New(root, Options{NoGit: true})

	view := m.View()
	if !strings.Contains(view, "No files found") || !strings.Contains(view, "no git history") {
		t.Errorf("unexpected view:\n%s", view)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("O"), runes("C"))
	if !root.Expanded {
		t.Error("expected hidden root to stay expanded")
	}
}

func Test_Fit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"├─ x", 4, "├─ x"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func Test_RenderBar_Width(t *testing.T) {
	for bucket := range metrics.LineBuckets {
		bar := renderBar(bucket, lineColors[bucket], false)
		if got := strings.Count(bar, barUnit); got != (bucket+1)*2 {
			t.Errorf("bucket %d: expected %d units, got %d", bucket, (bucket+1)*2, got)
		}
	}
}
