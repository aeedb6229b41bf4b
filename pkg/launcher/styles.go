package launcher

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/lobby/pkg/overlay"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(overlay.Primary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(overlay.Muted).
			Width(10)

	valueStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(overlay.Muted)

	onlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offlineStyle = lipgloss.NewStyle().Foreground(overlay.Error)
	warnStyle    = lipgloss.NewStyle().Foreground(overlay.Warning)

	starStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	// settingsPanel is drawn on a solid background unless the overlay
	// asks for a transparent one
	settingsPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(overlay.BorderNormal).
			Padding(1, 2)
)
