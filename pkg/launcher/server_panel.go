package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/lobby/internal/models"
	"github.com/marcus/lobby/pkg/overlay"
	"github.com/marcus/lobby/pkg/selectlist"
)

// serverCatalogMsg carries a finished catalog fetch for the server panel
type serverCatalogMsg struct {
	gen  int
	dist *models.Distribution
	err  error
}

// CatalogErrorMsg reports a failed catalog fetch to whoever opened the
// server panel
type CatalogErrorMsg struct {
	Err error
}

// ServerPanel lists the catalog's servers. Confirm commits the selected
// server; cancel hides the overlay.
type ServerPanel struct {
	selectPanel

	catalog CatalogSource
	store   ConfigStore
	hooks   Hooks
	timeout time.Duration

	gen     int
	loading bool
	dist    *models.Distribution
	// overlay epoch when the fetch started
	epoch int
}

// NewServerPanel creates a server panel and registers it with ctl
func NewServerPanel(ctl *overlay.Controller, catalog CatalogSource, store ConfigStore, hooks Hooks, lang overlay.Localizer) *ServerPanel {
	p := &ServerPanel{
		catalog: catalog,
		store:   store,
		hooks:   hooks,
		timeout: 15 * time.Second,
	}
	p.selectPanel = selectPanel{
		ctl:  ctl,
		lang: lang,
		keys: panelKeys{
			title:   "serverSelect.title",
			confirm: "serverSelect.confirm",
			cancel:  "serverSelect.cancel",
		},
		list: selectlist.New(
			selectlist.WithRenderer(serverRenderer(lang)),
			selectlist.WithMaxVisible(4),
			selectlist.WithSearchFields("name", "description"),
			selectlist.WithEmptyText(lang.Query("serverSelect.empty")),
		),
	}
	if err := ctl.Registry().Register(overlay.ContentServerSelect, p); err != nil {
		slog.Error("register server panel", "err", err)
	}
	return p
}

// Open fetches the catalog off the event loop. The result arrives as a
// serverCatalogMsg for HandleCatalog.
func (p *ServerPanel) Open() tea.Cmd {
	p.gen++
	p.loading = true
	p.epoch = p.ctl.Epoch()
	gen := p.gen
	catalog, timeout := p.catalog, p.timeout
	slog.Debug("opening server selection", "gen", gen)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		dist, err := catalog.Distribution(ctx)
		return serverCatalogMsg{gen: gen, dist: dist, err: err}
	}
}

// Abandon drops any fetch in flight
func (p *ServerPanel) Abandon() {
	p.gen++
	p.loading = false
}

// Loading reports whether a fetch is in flight
func (p *ServerPanel) Loading() bool {
	return p.loading
}

// Distribution returns the catalog from the last successful fetch
func (p *ServerPanel) Distribution() *models.Distribution {
	return p.dist
}

// HandleCatalog populates the list from a fetch result and shows the panel.
// Results from a superseded Open are dropped, as are results arriving after
// other content was shown in the overlay.
func (p *ServerPanel) HandleCatalog(msg serverCatalogMsg) tea.Cmd {
	if msg.gen != p.gen {
		slog.Debug("dropping stale server catalog", "gen", msg.gen, "current", p.gen)
		return nil
	}
	p.loading = false
	if p.ctl.Epoch() != p.epoch {
		slog.Debug("dropping server catalog, overlay content changed", "gen", msg.gen)
		return nil
	}
	if msg.err != nil {
		slog.Error("load server catalog", "err", msg.err)
		err := msg.err
		return func() tea.Msg { return CatalogErrorMsg{Err: err} }
	}

	p.dist = msg.dist
	selected := p.store.SelectedServer()
	p.list.Populate(serverEntries(msg.dist), func(e selectlist.Entry) bool {
		return e.ID == selected
	})
	return p.ctl.Show(true, overlay.ContentServerSelect)
}

// Acknowledge commits the selected server and hides the overlay
func (p *ServerPanel) Acknowledge() tea.Cmd {
	id, ok := p.list.SelectedID()
	if !ok {
		if id, ok = p.list.First(); !ok {
			slog.Debug("server selection empty, nothing to commit")
			return nil
		}
		slog.Warn("no server flagged selected, using first entry", "server", id)
	}

	p.store.SetSelectedServer(id)
	if err := p.store.Save(); err != nil {
		slog.Error("save config", "err", err)
	}

	var cmds []tea.Cmd
	if srv, ok := p.dist.ServerByID(id); ok {
		cmds = append(cmds, p.hooks.ServerChanged(srv))
	}
	cmds = append(cmds, p.ctl.Hide())
	return tea.Batch(cmds...)
}

// Dismiss hides the overlay
func (p *ServerPanel) Dismiss() tea.Cmd {
	return p.ctl.Hide()
}

// View implements overlay.Region
func (p *ServerPanel) View(width int) string {
	return p.view(width)
}

func serverEntries(dist *models.Distribution) []selectlist.Entry {
	if dist == nil {
		return nil
	}
	entries := make([]selectlist.Entry, 0, len(dist.Servers))
	for _, s := range dist.Servers {
		fields := map[string]string{
			"name":             s.Name,
			"description":      s.Description,
			"icon":             s.Icon,
			"minecraftVersion": s.MinecraftVersion,
			"version":          s.Version,
		}
		if s.MainServer {
			fields["mainServer"] = "true"
		}
		entries = append(entries, selectlist.Entry{ID: s.ID, Fields: fields})
	}
	return entries
}

// serverRenderer draws a server as a name line and a detail line
func serverRenderer(lang overlay.Localizer) selectlist.Renderer {
	return func(e selectlist.Entry, focused bool, width int) string {
		name := selectlist.DefaultRenderer(e, focused, width)
		if e.Field("mainServer") == "true" {
			name += " " + starStyle.Render("★") + " " + mutedStyle.Render(lang.Query("settings.serverListing.mainServer"))
		}

		var info []string
		if v := e.Field("minecraftVersion"); v != "" {
			info = append(info, fmt.Sprintf(lang.Query("serverSelect.minecraft"), v))
		}
		if v := e.Field("version"); v != "" {
			info = append(info, fmt.Sprintf(lang.Query("serverSelect.revision"), v))
		}
		if d := e.Field("description"); d != "" {
			info = append(info, d)
		}
		detail := "    " + strings.Join(info, " · ")
		detail = ansi.Truncate(detail, width, "…")
		return lipgloss.JoinVertical(lipgloss.Left, ansi.Truncate(name, width, "…"), mutedStyle.Render(detail))
	}
}
