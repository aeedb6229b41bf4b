package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeRegion struct {
	acks      int
	dismisses int
	visible   bool
	onAck     func() tea.Cmd
	onDismiss func() tea.Cmd
	view      string
}

func (r *fakeRegion) Acknowledge() tea.Cmd {
	r.acks++
	if r.onAck != nil {
		return r.onAck()
	}
	return nil
}

func (r *fakeRegion) Dismiss() tea.Cmd {
	r.dismisses++
	if r.onDismiss != nil {
		return r.onDismiss()
	}
	return nil
}

func (r *fakeRegion) View(int) string { return r.view }

func (r *fakeRegion) SetVisible(v bool) { r.visible = v }

type fakeHost struct {
	view          string
	focusable     bool
	transparent   bool
	backdropCalls int
}

func (h *fakeHost) CurrentView() string { return h.view }
func (h *fakeHost) SetFocusable(f bool) { h.focusable = f }
func (h *fakeHost) SetBackdrop(t bool) {
	h.transparent = t
	h.backdropCalls++
}

type mapLocalizer map[string]string

func (m mapLocalizer) Query(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

func key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// newTestController returns a controller with fast fades and fake regions
// for the two selection panels.
func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeRegion, *fakeRegion) {
	t.Helper()
	reg := NewRegistry()
	opts = append([]Option{WithFade(time.Millisecond, 2)}, opts...)
	ctl := New(reg, opts...)

	servers := &fakeRegion{view: "servers"}
	accounts := &fakeRegion{view: "accounts"}
	if err := reg.Register(ContentServerSelect, servers); err != nil {
		t.Fatalf("register servers: %v", err)
	}
	if err := reg.Register(ContentAccountSelect, accounts); err != nil {
		t.Fatalf("register accounts: %v", err)
	}
	return ctl, servers, accounts
}

// drain runs cmd and every follow-up transition tick to completion
func drain(ctl *Controller, cmd tea.Cmd) {
	for i := 0; cmd != nil && i < 100; i++ {
		cmd = ctl.Update(cmd())
	}
}
