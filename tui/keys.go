package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser's key bindings.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Toggle       key.Binding
	ExpandAll    key.Binding
	CollapseAll  key.Binding
	SwitchMetric key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "o", " ", "space"),
			key.WithHelp("o", "toggle"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "collapse all"),
		),
		SwitchMetric: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch metric"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpBindings are listed in the footer.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.ExpandAll, k.CollapseAll, k.SwitchMetric, k.Quit}
}
