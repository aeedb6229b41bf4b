package selectlist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DefaultRenderer draws the "name" field (or the id) behind a cursor and a
// selection marker
func DefaultRenderer(e Entry, focused bool, width int) string {
	label := e.Field("name")
	if label == "" {
		label = e.ID
	}

	cursor := "  "
	if focused {
		cursor = Cursor.Render("> ")
	}
	marker := "○ "
	style := ItemNormal
	if e.Selected {
		marker = "● "
		style = ItemSelected
	}
	if focused {
		style = ItemFocused
	}

	avail := width - lipgloss.Width(cursor) - lipgloss.Width(marker)
	if avail > 0 && lipgloss.Width(label) > avail {
		label = ansi.Truncate(label, avail, "…")
	}
	return cursor + style.Render(marker+label)
}

// View renders the visible window of entries at width and records which
// entry each line belongs to for EntryAt.
func (l *List) View(width int) string {
	l.lines = l.lines[:0]
	if len(l.entries) == 0 {
		l.lines = append(l.lines, -1)
		return MutedText.Render(l.emptyText)
	}

	visible := min(l.maxVisible, len(l.entries))
	keep := l.focus
	if keep < 0 {
		keep = l.anchor()
	}

	// keep the focused (or selected) entry inside the window
	if keep < l.offset {
		l.offset = keep
	} else if keep >= l.offset+visible {
		l.offset = keep - visible + 1
	}
	l.offset = max(0, min(l.offset, len(l.entries)-visible))

	var rows []string
	if l.offset > 0 {
		rows = append(rows, MutedText.Render("↑ more above"))
		l.lines = append(l.lines, -1)
	}
	for i := l.offset; i < l.offset+visible; i++ {
		block := l.render(l.entries[i], i == l.focus, width)
		rows = append(rows, block)
		for range strings.Split(block, "\n") {
			l.lines = append(l.lines, i)
		}
	}
	if l.offset+visible < len(l.entries) {
		rows = append(rows, MutedText.Render("↓ more below"))
		l.lines = append(l.lines, -1)
	}
	return strings.Join(rows, "\n")
}
