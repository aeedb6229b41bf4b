package launcher

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/pkg/overlay"
	"github.com/marcus/lobby/pkg/selectlist"
)

// headerLines is the number of lines a panel draws above its list
const headerLines = 2

// panelInput is the list interaction a selection panel accepts while shown
type panelInput interface {
	handleKey(msg tea.KeyMsg) bool
	click(line int) bool
}

// selectPanel is the list half of a selection panel. Enter and Esc are not
// handled here; the overlay routes them to Acknowledge and Dismiss.
type selectPanel struct {
	ctl     *overlay.Controller
	list    *selectlist.List
	lang    overlay.Localizer
	keys    panelKeys
	visible bool
	query   string
}

// panelKeys are the language keys for a panel's labels
type panelKeys struct {
	title, confirm, cancel string
}

// SetVisible implements overlay.VisibilityAware
func (p *selectPanel) SetVisible(visible bool) {
	p.visible = visible
	p.query = ""
}

// Visible reports whether the overlay shows this panel
func (p *selectPanel) Visible() bool {
	return p.visible
}

// List returns the panel's list
func (p *selectPanel) List() *selectlist.List {
	return p.list
}

func (p *selectPanel) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		p.list.CursorUp()
	case tea.KeyDown:
		p.list.CursorDown()
	case tea.KeySpace:
		p.list.ActivateFocused()
	case tea.KeyBackspace:
		if p.query == "" {
			return true
		}
		_, size := utf8.DecodeLastRuneInString(p.query)
		p.query = p.query[:len(p.query)-size]
		if p.query != "" {
			p.list.Jump(p.query)
		}
		return true
	case tea.KeyRunes:
		p.query += string(msg.Runes)
		p.list.Jump(p.query)
		return true
	default:
		return false
	}
	p.query = ""
	return true
}

// click activates the entry drawn on line of the panel view
func (p *selectPanel) click(line int) bool {
	id, ok := p.list.EntryAt(line - headerLines)
	if !ok {
		return false
	}
	p.list.Activate(id)
	return true
}

func (p *selectPanel) view(width int) string {
	var b strings.Builder
	b.WriteString(overlay.ModalTitle.Render(p.lang.Query(p.keys.title)))
	b.WriteString("\n\n")
	b.WriteString(p.list.View(width))
	b.WriteString("\n\n")
	b.WriteString(overlay.RenderButtons(p.lang.Query(p.keys.confirm), p.lang.Query(p.keys.cancel)))
	return b.String()
}
