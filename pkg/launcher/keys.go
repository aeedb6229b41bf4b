package launcher

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Servers   key.Binding
	Accounts  key.Binding
	Settings  key.Binding
	Launch    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var defaultKeys = keyMap{
	Servers: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "servers"),
	),
	Accounts: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "accounts"),
	),
	Settings: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "settings"),
	),
	Launch: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "launch"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh status"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Servers, k.Accounts, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Launch, k.Servers, k.Accounts},
		{k.Settings, k.Refresh, k.Help, k.Quit},
	}
}

// overlayKeys is shown in the footer while the overlay has focus
type overlayKeys struct {
	Move    key.Binding
	Pick    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var overlayHelpKeys = overlayKeys{
	Move: key.NewBinding(
		key.WithKeys("up", "down"),
		key.WithHelp("↑/↓", "move"),
	),
	Pick: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pick"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func (k overlayKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pick, k.Confirm, k.Cancel}
}

func (k overlayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
