package selectlist

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("212")
	muted   = lipgloss.Color("241")
)

// Entry styles
var (
	ItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ItemSelected = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	ItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)

	MutedText = lipgloss.NewStyle().Foreground(muted)
)
