package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Content is the text of the default dialog. Description is markdown.
type Content struct {
	Title       string
	Description string
	Acknowledge string
	Dismiss     string
}

// Dialog is the default content region: a title, a description and an
// acknowledge/dismiss button pair.
type Dialog struct {
	ctl     *Controller
	content Content

	onAcknowledge Handler
	onDismiss     Handler

	// rendered description, keyed by width
	renderedFor   string
	renderedWidth int
	rendered      string
}

func newDialog(ctl *Controller) *Dialog {
	d := &Dialog{ctl: ctl}
	d.onAcknowledge = ctl.Hide
	d.onDismiss = ctl.Hide
	d.content = Content{
		Acknowledge: ctl.lang.Query("overlay.acknowledge"),
		Dismiss:     ctl.lang.Query("overlay.dismiss"),
	}
	return d
}

func (d *Dialog) setContent(c Content) {
	d.content = c
	d.renderedFor = ""
}

// Content returns the dialog's current text
func (d *Dialog) Content() Content {
	return d.content
}

// Acknowledge runs the acknowledge handler
func (d *Dialog) Acknowledge() tea.Cmd {
	return d.onAcknowledge()
}

// Dismiss runs the dismiss handler
func (d *Dialog) Dismiss() tea.Cmd {
	return d.onDismiss()
}

// View renders the dialog at width
func (d *Dialog) View(width int) string {
	var sections []string
	if d.content.Title != "" {
		sections = append(sections, ModalTitle.Render(d.content.Title))
	}
	if desc := d.description(width); desc != "" {
		sections = append(sections, desc)
	}

	dismiss := ""
	if d.ctl.DismissVisible() {
		dismiss = d.content.Dismiss
	}
	sections = append(sections, RenderButtons(d.content.Acknowledge, dismiss))
	return strings.Join(sections, "\n\n")
}

func (d *Dialog) description(width int) string {
	desc := strings.TrimSpace(d.content.Description)
	if desc == "" {
		return ""
	}
	if d.renderedFor == desc && d.renderedWidth == width {
		return d.rendered
	}

	out := lipgloss.NewStyle().Width(width).Render(desc)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		// glamour's document margin takes two columns on each side
		glamour.WithWordWrap(max(width-4, 10)),
	)
	if err == nil {
		if md, err := r.Render(desc); err == nil {
			out = strings.Trim(md, "\n")
		}
	}

	d.renderedFor = desc
	d.renderedWidth = width
	d.rendered = out
	return out
}
