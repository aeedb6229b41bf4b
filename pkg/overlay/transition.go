package overlay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultFadeDuration matches the launcher's 250ms fades
	DefaultFadeDuration = 250 * time.Millisecond
	// DefaultFadeFrames is the number of ticks per fade
	DefaultFadeFrames = 5
)

type fadeKind int

const (
	fadeIn fadeKind = iota
	fadeOut
	crossFade
)

// transition is one running fade. gen identifies it; ticks from an older
// generation are dropped.
type transition struct {
	gen     int
	kind    fadeKind
	frame   int
	to      ContentID
	running bool
}

// transitionMsg advances the fade identified by gen on ctl
type transitionMsg struct {
	ctl *Controller
	gen int
}

func (t transition) totalFrames(frames int) int {
	if t.kind == crossFade {
		return frames * 2
	}
	return frames
}

// opacity of the shown region for the current frame
func (t transition) opacity(frames int, visible bool) float64 {
	if !t.running {
		if visible {
			return 1
		}
		return 0
	}
	f := float64(t.frame) / float64(frames)
	switch t.kind {
	case fadeIn:
		return f
	case fadeOut:
		return 1 - f
	default:
		if t.frame < frames {
			return 1 - f
		}
		return f - 1
	}
}

func (c *Controller) startFade(kind fadeKind, to ContentID) tea.Cmd {
	c.fade = transition{
		gen:     c.fade.gen + 1,
		kind:    kind,
		to:      to,
		running: true,
	}
	if kind != crossFade {
		c.transitionStarted(kind == fadeIn)
	}
	return c.tick(c.fade.gen)
}

func (c *Controller) tick(gen int) tea.Cmd {
	interval := c.fadeDuration / time.Duration(c.fadeFrames)
	ctl := c
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return transitionMsg{ctl: ctl, gen: gen}
	})
}

// advance handles one tick; returns the next tick or nil when done
func (c *Controller) advance(msg transitionMsg) tea.Cmd {
	if msg.ctl != c || msg.gen != c.fade.gen || !c.fade.running {
		return nil
	}
	c.fade.frame++
	if c.fade.kind == crossFade && c.fade.frame == c.fadeFrames {
		c.registry.ShowOnly(c.fade.to)
	}
	if c.fade.frame < c.fade.totalFrames(c.fadeFrames) {
		return c.tick(c.fade.gen)
	}
	c.fade.running = false
	c.transitionComplete(c.fade.kind)
	return nil
}

// transitionStarted applies the settings backdrop override
func (c *Controller) transitionStarted(visible bool) {
	if c.host.CurrentView() == c.settingsView {
		c.host.SetBackdrop(visible)
	}
}

func (c *Controller) transitionComplete(kind fadeKind) {
	switch kind {
	case fadeOut:
		c.registry.ShowOnly(ContentDefault)
		c.state.Active = ContentDefault
		c.dismissControl = c.state.Dismissable
	case crossFade:
		c.registry.ShowOnly(c.fade.to)
	}
}
