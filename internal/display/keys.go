package display

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle      key.Binding
	Reset       key.Binding
	SessionUp   key.Binding
	SessionDown key.Binding
	BreakUp     key.Binding
	BreakDown   key.Binding
	EditSession key.Binding
	EditBreak   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "start/stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		SessionUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "session +1"),
		),
		SessionDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "session -1"),
		),
		BreakUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "break +1"),
		),
		BreakDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "break -1"),
		),
		EditSession: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "set session"),
		),
		EditBreak: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "set break"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset},
		{k.SessionUp, k.SessionDown, k.EditSession},
		{k.BreakUp, k.BreakDown, k.EditBreak},
		{k.Help, k.Quit},
	}
}
