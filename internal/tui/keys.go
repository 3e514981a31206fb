package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the interactive spinner.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Reverse       key.Binding
	Indeterminate key.Binding
	Text          key.Binding
	Icon          key.Binding
	HideIcon      key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑/k", "more progress"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓/j", "less progress"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse direction"),
		),
		Indeterminate: key.NewBinding(
			key.WithKeys(" ", "i"),
			key.WithHelp("space/i", "indeterminate"),
		),
		Text: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "progress text"),
		),
		Icon: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "show icon"),
		),
		HideIcon: key.NewBinding(
			key.WithKeys("0", "esc"),
			key.WithHelp("0/esc", "hide icon"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Indeterminate, k.Icon, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reverse},
		{k.Indeterminate, k.Text},
		{k.Icon, k.HideIcon},
		{k.Help, k.Quit},
	}
}
