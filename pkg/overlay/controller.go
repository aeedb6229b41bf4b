package overlay

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Handler is the action run when a control is activated
type Handler func() tea.Cmd

// Host is the primary view beneath the overlay
type Host interface {
	// CurrentView names the primary view currently displayed
	CurrentView() string
	// SetFocusable toggles whether the primary view accepts focus
	SetFocusable(focusable bool)
	// SetBackdrop switches the settings view background override
	SetBackdrop(transparent bool)
}

// Localizer resolves user-facing strings
type Localizer interface {
	Query(key string) string
}

// DefaultSettingsView is the view name that receives the backdrop override
const DefaultSettingsView = "settings"

// State is the overlay's visibility state
type State struct {
	Visible     bool
	Dismissable bool
	Active      ContentID
}

// Controller owns the overlay state. It is not safe for concurrent use;
// call it from the Bubble Tea update loop only.
type Controller struct {
	state          State
	dismissControl bool
	// bumped by every Show and Swap
	epoch int

	registry *Registry
	router   *KeyRouter
	dialog   *Dialog

	host         Host
	lang         Localizer
	settingsView string

	fade         transition
	fadeDuration time.Duration
	fadeFrames   int
}

// Option configures a Controller
type Option func(*Controller)

// WithHost sets the primary view collaborator
func WithHost(h Host) Option {
	return func(c *Controller) {
		if h != nil {
			c.host = h
		}
	}
}

// WithLocalizer sets the string source for default labels
func WithLocalizer(l Localizer) Option {
	return func(c *Controller) {
		if l != nil {
			c.lang = l
		}
	}
}

// WithSettingsView overrides the view name that gets the backdrop override
func WithSettingsView(name string) Option {
	return func(c *Controller) {
		c.settingsView = name
	}
}

// WithFade sets the fade duration and frame count
func WithFade(d time.Duration, frames int) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fadeDuration = d
		}
		if frames > 0 {
			c.fadeFrames = frames
		}
	}
}

// New creates a hidden overlay. The default dialog is registered as
// ContentDefault in registry.
func New(registry *Registry, opts ...Option) *Controller {
	if registry == nil {
		registry = NewRegistry()
	}
	c := &Controller{
		state:        State{Active: ContentDefault},
		registry:     registry,
		router:       NewKeyRouter(registry),
		host:         noopHost{},
		lang:         keyLocalizer{},
		settingsView: DefaultSettingsView,
		fadeDuration: DefaultFadeDuration,
		fadeFrames:   DefaultFadeFrames,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dialog = newDialog(c)
	// ContentDefault is always known, so this cannot fail
	_ = registry.Register(ContentDefault, c.dialog)
	return c
}

// Show makes the overlay visible with region id shown. The primary view
// loses focus and keys are routed to id.
func (c *Controller) Show(dismissable bool, id ContentID) tea.Cmd {
	if !c.registry.Known(id) {
		slog.Error("overlay: unknown content region", "content", id)
		id = ContentDefault
	}
	c.router.Bind(true, id, dismissable)
	c.state = State{Visible: true, Dismissable: dismissable, Active: id}
	c.host.SetFocusable(false)
	c.registry.ShowOnly(id)
	c.dismissControl = dismissable
	c.epoch++
	slog.Debug("overlay: show", "content", id, "dismissable", dismissable)
	return c.startFade(fadeIn, id)
}

// Hide clears visibility and returns focus to the primary view. When the
// fade completes the default region is shown again so the next Show starts
// from a clean slate.
func (c *Controller) Hide() tea.Cmd {
	c.router.Bind(false, c.state.Active, c.state.Dismissable)
	c.state.Visible = false
	c.host.SetFocusable(true)
	slog.Debug("overlay: hide", "content", c.state.Active)
	return c.startFade(fadeOut, ContentDefault)
}

// Swap cross-fades to region id while staying visible. Keys move to id
// immediately, routed as dismissable says. No-op while hidden.
func (c *Controller) Swap(id ContentID, dismissable bool) tea.Cmd {
	if !c.state.Visible {
		return nil
	}
	if !c.registry.Known(id) {
		slog.Error("overlay: unknown content region", "content", id)
		return nil
	}
	c.state.Active = id
	c.state.Dismissable = dismissable
	if id == ContentDefault {
		c.dismissControl = dismissable
	}
	c.router.Bind(true, id, dismissable)
	c.epoch++
	slog.Debug("overlay: swap", "content", id, "dismissable", dismissable)
	return c.startFade(crossFade, id)
}

// Epoch counts Show and Swap calls. A caller that compares it before and
// after async work can tell whether other content took the overlay.
func (c *Controller) Epoch() int {
	return c.epoch
}

// Visible reports whether the overlay is shown
func (c *Controller) Visible() bool {
	return c.state.Visible
}

// State returns a copy of the overlay state
func (c *Controller) State() State {
	return c.state
}

// Binding returns the key router's active binding
func (c *Controller) Binding() (KeyBinding, bool) {
	return c.router.Binding()
}

// DismissVisible reports whether the default dialog shows its dismiss control
func (c *Controller) DismissVisible() bool {
	return c.dismissControl
}

// Animating reports whether a fade is running
func (c *Controller) Animating() bool {
	return c.fade.running
}

// Opacity of the shown region, 0..1
func (c *Controller) Opacity() float64 {
	return c.fade.opacity(c.fadeFrames, c.state.Visible)
}

// Registry returns the content registry
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Dialog returns the default content region
func (c *Controller) Dialog() *Dialog {
	return c.dialog
}

// SetContent replaces the default dialog's text. An empty Dismiss label uses
// the localized default.
func (c *Controller) SetContent(content Content) {
	if content.Dismiss == "" {
		content.Dismiss = c.lang.Query("overlay.dismiss")
	}
	c.dialog.setContent(content)
}

// SetAcknowledgeHandler installs the acknowledge action; nil hides the overlay
func (c *Controller) SetAcknowledgeHandler(h Handler) {
	if h == nil {
		h = c.Hide
	}
	c.dialog.onAcknowledge = h
}

// SetDismissHandler installs the dismiss action; nil hides the overlay
func (c *Controller) SetDismissHandler(h Handler) {
	if h == nil {
		h = c.Hide
	}
	c.dialog.onDismiss = h
}

// HandleKey routes a key to the active region. It reports whether the key
// was consumed.
func (c *Controller) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	return c.router.Dispatch(msg)
}

// Update consumes the controller's own transition messages
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	tm, ok := msg.(transitionMsg)
	if !ok {
		return nil
	}
	return c.advance(tm)
}

// View renders the shown region in its frame, or "" when nothing is on
// screen.
func (c *Controller) View(width, height int) string {
	if !c.state.Visible && !c.fade.running {
		return ""
	}
	region, ok := c.registry.Lookup(c.registry.Shown())
	if !ok {
		return ""
	}

	boxWidth := width * 70 / 100
	if boxWidth > 80 {
		boxWidth = 80
	}
	if boxWidth < 30 {
		boxWidth = min(30, width)
	}
	inner := boxWidth - Box.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	opacity := c.Opacity()
	style := Box.BorderForeground(fadeColor(opacity)).Width(boxWidth - Box.GetHorizontalBorderSize())
	if opacity < 0.5 {
		style = style.Faint(true)
	}
	box := style.Render(region.View(inner))
	if height > 0 && lipgloss.Height(box) > height {
		box = lipgloss.NewStyle().MaxHeight(height).Render(box)
	}
	return box
}

type noopHost struct{}

func (noopHost) CurrentView() string { return "" }
func (noopHost) SetFocusable(bool)   {}
func (noopHost) SetBackdrop(bool)    {}

type keyLocalizer struct{}

func (keyLocalizer) Query(key string) string { return key }
