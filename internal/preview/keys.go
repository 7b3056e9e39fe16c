package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the preview's key bindings with built-in help text.
type KeyMap struct {
	Toggle   key.Binding
	Cancel   key.Binding
	Wider    key.Binding
	Narrower key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c", "skip to end"),
		),
		Wider: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "wider"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-", "narrower"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Cancel, k.Wider, k.Narrower, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
