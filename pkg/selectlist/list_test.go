package selectlist

import (
	"strings"
	"testing"
)

func entries(ids ...string) []Entry {
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{ID: id, Fields: map[string]string{"name": "Server " + id}}
	}
	return out
}

func selectedCount(l *List) int {
	n := 0
	for _, e := range l.Entries() {
		if e.Selected {
			n++
		}
	}
	return n
}

func byID(id string) func(Entry) bool {
	return func(e Entry) bool { return e.ID == id }
}

func TestPopulatePreselect(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		preselect func(Entry) bool
		wantID    string
		wantOK    bool
	}{
		{"match middle", []string{"s1", "s2", "s3"}, byID("s2"), "s2", true},
		{"no match", []string{"s1", "s2"}, byID("zz"), "", false},
		{"nil predicate", []string{"s1"}, nil, "", false},
		{"empty", nil, byID("s1"), "", false},
		{"first of many matches", []string{"s1", "s2", "s3"}, func(e Entry) bool { return e.ID != "s1" }, "s2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			l.Populate(entries(tt.ids...), tt.preselect)

			id, ok := l.SelectedID()
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("SelectedID: got %q, %v; want %q, %v", id, ok, tt.wantID, tt.wantOK)
			}
			if n := selectedCount(l); n > 1 {
				t.Errorf("%d entries flagged selected", n)
			}
		})
	}
}

func TestPopulateClearsIncomingFlags(t *testing.T) {
	in := entries("a", "b", "c")
	in[0].Selected = true
	in[2].Selected = true

	l := New()
	l.Populate(in, byID("b"))

	if id, _ := l.SelectedID(); id != "b" {
		t.Errorf("SelectedID: got %q, want b", id)
	}
	if n := selectedCount(l); n != 1 {
		t.Errorf("selected count: got %d, want 1", n)
	}
}

func TestActivateSelectedIsNoop(t *testing.T) {
	l := New()
	l.Populate(entries("a", "b"), byID("a"))

	calls := 0
	l.OnChange(func(Entry) { calls++ })

	if l.Activate("a") {
		t.Error("activating the selected entry reported a change")
	}
	if calls != 0 {
		t.Error("change callback fired for a no-op")
	}
	if id, _ := l.SelectedID(); id != "a" {
		t.Errorf("SelectedID: got %q", id)
	}
}

func TestActivateMovesSelection(t *testing.T) {
	l := New()
	l.Populate(entries("a", "b", "c", "d"), byID("c"))

	for _, id := range []string{"a", "d", "b", "c", "a"} {
		l.Activate(id)
		got, ok := l.SelectedID()
		if !ok || got != id {
			t.Errorf("after Activate(%q): SelectedID %q, %v", id, got, ok)
		}
		if n := selectedCount(l); n != 1 {
			t.Errorf("after Activate(%q): %d selected", id, n)
		}
	}

	if l.Activate("missing") {
		t.Error("unknown id activated")
	}
}

func TestActivateClearsFocus(t *testing.T) {
	l := New()
	l.Populate(entries("a", "b"), byID("a"))
	l.CursorDown()
	l.CursorDown()

	if id, _ := l.Focused(); id != "b" {
		t.Fatalf("Focused: got %q, want b", id)
	}
	if !l.ActivateFocused() {
		t.Fatal("ActivateFocused should select b")
	}
	if _, ok := l.Focused(); ok {
		t.Error("focus should be cleared after activation")
	}
	if l.ActivateFocused() {
		t.Error("second activation with no focus should do nothing")
	}
}

func TestActivateThenSelected(t *testing.T) {
	// s1 then s3: the later click wins
	l := New()
	l.Populate(entries("s1", "s2", "s3"), byID("s2"))
	l.Activate("s1")
	l.Activate("s3")

	if id, _ := l.SelectedID(); id != "s3" {
		t.Errorf("SelectedID: got %q, want s3", id)
	}
}

func TestOnChangeSurvivesPopulate(t *testing.T) {
	l := New()
	var got []string
	l.OnChange(func(e Entry) { got = append(got, e.ID) })

	l.Populate(entries("a", "b"), nil)
	l.Activate("b")
	l.Populate(entries("x", "y"), byID("x"))
	l.Activate("y")

	if strings.Join(got, ",") != "b,y" {
		t.Errorf("callbacks: got %v", got)
	}
}

func TestFirst(t *testing.T) {
	l := New()
	if _, ok := l.First(); ok {
		t.Error("First on empty list")
	}
	l.Populate(entries("a", "b"), nil)
	if id, ok := l.First(); !ok || id != "a" {
		t.Errorf("First: got %q, %v", id, ok)
	}
}

func TestCursorBounds(t *testing.T) {
	l := New()
	l.CursorDown()
	l.CursorUp()
	if _, ok := l.Focused(); ok {
		t.Fatal("empty list gained focus")
	}

	l.Populate(entries("a", "b", "c"), byID("b"))
	l.CursorUp()
	if id, _ := l.Focused(); id != "b" {
		t.Errorf("first move should land on selected entry, got %q", id)
	}
	l.CursorUp()
	l.CursorUp()
	if id, _ := l.Focused(); id != "a" {
		t.Errorf("Focused: got %q, want a", id)
	}
	for range 5 {
		l.CursorDown()
	}
	if id, _ := l.Focused(); id != "c" {
		t.Errorf("Focused: got %q, want c", id)
	}
}

func TestJump(t *testing.T) {
	l := New()
	l.Populate([]Entry{
		{ID: "main", Fields: map[string]string{"name": "WesterosCraft Production"}},
		{ID: "test", Fields: map[string]string{"name": "WesterosCraft Test Server"}},
		{ID: "dev", Fields: map[string]string{"name": "Developer Sandbox"}},
	}, byID("main"))

	if !l.Jump("sandbox") {
		t.Fatal("Jump found nothing")
	}
	if id, _ := l.Focused(); id != "dev" {
		t.Errorf("Focused: got %q, want dev", id)
	}
	if !l.Jump("TEST SERV") {
		t.Fatal("Jump should be case-insensitive")
	}
	if id, _ := l.Focused(); id != "test" {
		t.Errorf("Focused: got %q, want test", id)
	}
	if l.Jump("qqqq") || l.Jump("  ") {
		t.Error("Jump matched nonsense")
	}
	// jumping never changes the selection
	if id, _ := l.SelectedID(); id != "main" {
		t.Errorf("SelectedID: got %q", id)
	}
}

func TestViewAndEntryAt(t *testing.T) {
	l := New(WithMaxVisible(2))
	l.Populate(entries("a", "b", "c"), byID("a"))

	view := l.View(40)
	if !strings.Contains(view, "Server a") || strings.Contains(view, "Server c") {
		t.Errorf("unexpected window:\n%s", view)
	}
	if id, ok := l.EntryAt(0); !ok || id != "a" {
		t.Errorf("EntryAt(0): got %q, %v", id, ok)
	}
	if id, ok := l.EntryAt(1); !ok || id != "b" {
		t.Errorf("EntryAt(1): got %q, %v", id, ok)
	}
	if _, ok := l.EntryAt(2); ok {
		t.Error("indicator line should not map to an entry")
	}

	// moving focus to the end scrolls the window
	l.CursorDown()
	l.CursorDown()
	l.CursorDown()
	view = l.View(40)
	if !strings.Contains(view, "Server c") || !strings.Contains(view, "more above") {
		t.Errorf("window did not scroll:\n%s", view)
	}
	if id, ok := l.EntryAt(2); !ok || id != "c" {
		t.Errorf("EntryAt(2): got %q, %v", id, ok)
	}
}

func TestViewMultiLineRenderer(t *testing.T) {
	l := New(WithRenderer(func(e Entry, _ bool, _ int) string {
		return e.ID + "\n  detail"
	}))
	l.Populate(entries("a", "b"), nil)
	l.View(40)

	want := []string{"a", "a", "b", "b"}
	for line, id := range want {
		if got, _ := l.EntryAt(line); got != id {
			t.Errorf("EntryAt(%d): got %q, want %q", line, got, id)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	l := New(WithEmptyText("nothing here"))
	if !strings.Contains(l.View(20), "nothing here") {
		t.Error("empty text not rendered")
	}
	if _, ok := l.EntryAt(0); ok {
		t.Error("empty list mapped a line")
	}
}
