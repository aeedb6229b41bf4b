package overlay

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding is the routing target for keyboard events
type KeyBinding struct {
	Content     ContentID
	Dismissable bool
}

type keyListener func(msg tea.KeyMsg) (bool, tea.Cmd)

// KeyRouter forwards Enter and Esc to the active region's controls.
// At most one listener is installed at a time.
type KeyRouter struct {
	registry *Registry
	binding  KeyBinding
	listener keyListener
}

// NewKeyRouter creates an unbound router resolving regions through registry
func NewKeyRouter(registry *Registry) *KeyRouter {
	return &KeyRouter{registry: registry}
}

// Bind removes any installed listener and, when visible, installs the
// listener matching dismissable for region id.
func (r *KeyRouter) Bind(visible bool, id ContentID, dismissable bool) {
	r.Unbind()
	if !visible {
		return
	}
	r.binding = KeyBinding{Content: id, Dismissable: dismissable}
	if dismissable {
		r.listener = r.dismissableListener
	} else {
		r.listener = r.acknowledgeListener
	}
}

// Unbind removes the installed listener. Safe to call repeatedly.
func (r *KeyRouter) Unbind() {
	r.listener = nil
	r.binding = KeyBinding{}
}

// Binding returns the active binding, if any
func (r *KeyRouter) Binding() (KeyBinding, bool) {
	if r.listener == nil {
		return KeyBinding{}, false
	}
	return r.binding, true
}

// Dispatch offers msg to the installed listener. It reports whether the key
// was consumed.
func (r *KeyRouter) Dispatch(msg tea.KeyMsg) (bool, tea.Cmd) {
	if r.listener == nil {
		return false, nil
	}
	return r.listener(msg)
}

// acknowledgeListener handles a non-dismissable overlay: Enter and Esc both
// acknowledge.
func (r *KeyRouter) acknowledgeListener(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		return r.activate(true)
	}
	return false, nil
}

// dismissableListener handles a dismissable overlay.
func (r *KeyRouter) dismissableListener(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return r.activate(true)
	case "esc":
		return r.activate(false)
	}
	return false, nil
}

func (r *KeyRouter) activate(acknowledge bool) (bool, tea.Cmd) {
	region, ok := r.registry.Lookup(r.binding.Content)
	if !ok {
		slog.Debug("overlay: no region for key binding", "content", r.binding.Content)
		return false, nil
	}
	if acknowledge {
		return true, region.Acknowledge()
	}
	return true, region.Dismiss()
}
