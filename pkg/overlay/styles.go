package overlay

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colors shared by overlay content regions
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Muted        = lipgloss.Color("241")
	BgSecondary  = lipgloss.Color("235")
	BorderNormal = lipgloss.Color("240")
)

// Fade endpoints for the overlay border; hex so they can be blended
var (
	fadeFrom = mustHex("#303030")
	fadeTo   = mustHex("#ff87d7")
)

// Button styles
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)
)

// Text styles
var (
	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	MutedText  = lipgloss.NewStyle().Foreground(Muted)
	Body       = lipgloss.NewStyle()
)

// Box is the frame drawn around the visible region
var Box = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fadeColor returns the border colour for a fade at opacity 0..1
func fadeColor(opacity float64) lipgloss.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return lipgloss.Color(fadeFrom.BlendLab(fadeTo, opacity).Clamped().Hex())
}

// RenderButtons lays out a row of buttons; the first is styled as focused
func RenderButtons(labels ...string) string {
	parts := make([]string, 0, len(labels)*2)
	for i, label := range labels {
		if label == "" {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, "  ")
		}
		if i == 0 {
			parts = append(parts, ButtonFocused.Render(label))
		} else {
			parts = append(parts, Button.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
