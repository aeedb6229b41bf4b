package overlay

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ContentID names a content region inside the overlay
type ContentID string

const (
	ContentDefault       ContentID = "overlayContent"
	ContentServerSelect  ContentID = "serverSelectContent"
	ContentAccountSelect ContentID = "accountSelectContent"
)

// KnownContent is the default set of content regions
var KnownContent = []ContentID{ContentDefault, ContentServerSelect, ContentAccountSelect}

// Region is a content region that can be shown inside the overlay.
// Acknowledge and Dismiss activate its primary and cancel controls.
type Region interface {
	Acknowledge() tea.Cmd
	Dismiss() tea.Cmd
	View(width int) string
}

// VisibilityAware regions are told when they are shown or hidden
type VisibilityAware interface {
	SetVisible(visible bool)
}

// Registry resolves content ids to regions and tracks which one is shown
type Registry struct {
	known   map[ContentID]bool
	order   []ContentID
	regions map[ContentID]Region
	shown   ContentID
}

// NewRegistry creates a registry accepting the given ids. With no ids the
// KnownContent set is used. ContentDefault is always accepted.
func NewRegistry(ids ...ContentID) *Registry {
	if len(ids) == 0 {
		ids = KnownContent
	}
	r := &Registry{
		known:   make(map[ContentID]bool),
		regions: make(map[ContentID]Region),
		shown:   ContentDefault,
	}
	r.accept(ContentDefault)
	for _, id := range ids {
		r.accept(id)
	}
	return r
}

func (r *Registry) accept(id ContentID) {
	if r.known[id] {
		return
	}
	r.known[id] = true
	r.order = append(r.order, id)
}

// Known reports whether id belongs to the registry's set
func (r *Registry) Known(id ContentID) bool {
	return r.known[id]
}

// IDs returns the accepted ids in registration order
func (r *Registry) IDs() []ContentID {
	return append([]ContentID(nil), r.order...)
}

// Register binds a region to id. Re-registering replaces the region.
func (r *Registry) Register(id ContentID, region Region) error {
	if !r.known[id] {
		return fmt.Errorf("unknown content region %q", id)
	}
	if region == nil {
		return fmt.Errorf("nil region for %q", id)
	}
	r.regions[id] = region
	if va, ok := region.(VisibilityAware); ok {
		va.SetVisible(id == r.shown)
	}
	return nil
}

// Lookup returns the region registered for id
func (r *Registry) Lookup(id ContentID) (Region, bool) {
	region, ok := r.regions[id]
	return region, ok
}

// ShowOnly hides every sibling region and shows id
func (r *Registry) ShowOnly(id ContentID) {
	r.shown = id
	for _, other := range r.order {
		va, ok := r.regions[other].(VisibilityAware)
		if !ok {
			continue
		}
		va.SetVisible(other == id)
	}
}

// Shown returns the id of the shown region
func (r *Registry) Shown() ContentID {
	return r.shown
}
