// Package selectlist is a single-select list: entries are populated from a
// data source, at most one is flagged selected, and activating an entry moves
// the flag to it.
package selectlist

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Entry is one row of the list
type Entry struct {
	ID       string
	Fields   map[string]string
	Selected bool
}

// Field returns a display field, or "" if unset
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// Renderer draws one entry. The result may span several lines.
type Renderer func(e Entry, focused bool, width int) string

// Option configures a List
type Option func(*List)

// WithRenderer sets the per-entry renderer
func WithRenderer(r Renderer) Option {
	return func(l *List) {
		if r != nil {
			l.render = r
		}
	}
}

// WithMaxVisible caps the number of entries drawn at once
func WithMaxVisible(n int) Option {
	return func(l *List) {
		if n > 0 {
			l.maxVisible = n
		}
	}
}

// WithSearchFields sets the fields type-to-find matches against.
// Default is "name".
func WithSearchFields(fields ...string) Option {
	return func(l *List) {
		if len(fields) > 0 {
			l.searchFields = fields
		}
	}
}

// WithEmptyText sets the text drawn for an empty list
func WithEmptyText(s string) Option {
	return func(l *List) {
		l.emptyText = s
	}
}

// List holds ordered entries and a focus cursor. It is not safe for
// concurrent use.
type List struct {
	entries  []Entry
	focus    int
	onChange func(Entry)

	render       Renderer
	maxVisible   int
	searchFields []string
	emptyText    string

	offset int
	// entry index for each line of the last View, -1 for indicator lines
	lines []int
}

// New creates an empty list
func New(opts ...Option) *List {
	l := &List{
		focus:        -1,
		render:       DefaultRenderer,
		maxVisible:   6,
		searchFields: []string{"name"},
		emptyText:    "(no entries)",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnChange registers the callback fired when the selection moves. It
// survives Populate; a second call replaces the first.
func (l *List) OnChange(fn func(Entry)) {
	l.onChange = fn
}

// Populate replaces the entries. The first entry matching preselect is
// flagged selected and every other flag is cleared. Focus is cleared.
func (l *List) Populate(entries []Entry, preselect func(Entry) bool) {
	l.entries = make([]Entry, len(entries))
	found := false
	for i, e := range entries {
		e.Selected = false
		if !found && preselect != nil && preselect(e) {
			e.Selected = true
			found = true
		}
		l.entries[i] = e
	}
	l.focus = -1
	l.offset = 0
	l.lines = nil
}

// Activate moves the selection to id. Activating the selected entry or an
// unknown id does nothing and returns false.
func (l *List) Activate(id string) bool {
	idx := l.index(id)
	if idx < 0 || l.entries[idx].Selected {
		return false
	}
	for i := range l.entries {
		l.entries[i].Selected = i == idx
	}
	// blur, so a repeated keypress does not activate again
	l.focus = -1
	if l.onChange != nil {
		l.onChange(l.entries[idx])
	}
	return true
}

// SelectedID returns the first flagged entry's id
func (l *List) SelectedID() (string, bool) {
	for _, e := range l.entries {
		if e.Selected {
			return e.ID, true
		}
	}
	return "", false
}

// First returns the first entry's id
func (l *List) First() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	return l.entries[0].ID, true
}

// Len returns the number of entries
func (l *List) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in order
func (l *List) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Entry returns the entry for id
func (l *List) Entry(id string) (Entry, bool) {
	idx := l.index(id)
	if idx < 0 {
		return Entry{}, false
	}
	return l.entries[idx], true
}

// Focused returns the focused entry's id
func (l *List) Focused() (string, bool) {
	if l.focus < 0 || l.focus >= len(l.entries) {
		return "", false
	}
	return l.entries[l.focus].ID, true
}

// CursorDown moves focus to the next entry. With no focus it lands on the
// selected entry, or the first.
func (l *List) CursorDown() {
	if len(l.entries) == 0 {
		return
	}
	if l.focus < 0 {
		l.focus = l.anchor()
		return
	}
	if l.focus < len(l.entries)-1 {
		l.focus++
	}
}

// CursorUp moves focus to the previous entry
func (l *List) CursorUp() {
	if len(l.entries) == 0 {
		return
	}
	if l.focus < 0 {
		l.focus = l.anchor()
		return
	}
	if l.focus > 0 {
		l.focus--
	}
}

// ActivateFocused activates the focused entry
func (l *List) ActivateFocused() bool {
	id, ok := l.Focused()
	if !ok {
		return false
	}
	return l.Activate(id)
}

// Jump focuses the entry that best matches query. It reports whether
// anything matched.
func (l *List) Jump(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(l.entries) == 0 {
		return false
	}
	matches := fuzzy.FindFrom(query, searchSource{l})
	if len(matches) == 0 {
		return false
	}
	l.focus = matches[0].Index
	return true
}

// EntryAt returns the id of the entry drawn on line of the last View
func (l *List) EntryAt(line int) (string, bool) {
	if line < 0 || line >= len(l.lines) {
		return "", false
	}
	idx := l.lines[line]
	if idx < 0 || idx >= len(l.entries) {
		return "", false
	}
	return l.entries[idx].ID, true
}

func (l *List) index(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) anchor() int {
	for i, e := range l.entries {
		if e.Selected {
			return i
		}
	}
	return 0
}

// searchSource adapts the list for fuzzy matching
type searchSource struct {
	l *List
}

func (s searchSource) String(i int) string {
	e := s.l.entries[i]
	parts := make([]string, 0, len(s.l.searchFields))
	for _, f := range s.l.searchFields {
		if v := e.Fields[f]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return strings.ToLower(e.ID)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func (s searchSource) Len() int {
	return len(s.l.entries)
}
