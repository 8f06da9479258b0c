package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the viewer.
type keyMap struct {
	Refresh    key.Binding
	Prompt     key.Binding
	Activity   key.Binding
	CycleTheme key.Binding
	Quit       key.Binding

	// Prompt mode
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Prompt: key.NewBinding(
			key.WithKeys("/", "b"),
			key.WithHelp("/", "open batch"),
		),
		Activity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "activity"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Prompt, k.Activity, k.CycleTheme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Prompt, k.Activity},
		{k.CycleTheme, k.Quit},
	}
}

// promptKeys is shown in the footer while the identifier prompt is open.
type promptKeys struct {
	keyMap
}

func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
