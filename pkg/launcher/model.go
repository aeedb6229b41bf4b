package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/internal/lang"
	"github.com/marcus/lobby/internal/models"
	"github.com/marcus/lobby/pkg/overlay"
)

// Views the launcher can display
const (
	ViewLanding  = "landing"
	ViewSettings = overlay.DefaultSettingsView
)

// Options configures a Model. Catalog and Store are required.
type Options struct {
	Catalog CatalogSource
	Store   ConfigStore
	Lang    overlay.Localizer
	// Hooks replaces the launcher's own reactions to committed selections
	Hooks Hooks

	FetchTimeout time.Duration
	ProbeTimeout time.Duration
	FadeDuration time.Duration

	Dial DialFunc
	Now  func() time.Time
}

// catalogLoadedMsg is the startup catalog load
type catalogLoadedMsg struct {
	dist *models.Distribution
	err  error
}

// Model is the launcher's Bubble Tea model. It is also the overlay's host.
type Model struct {
	width, height int
	view          string
	focusable     bool
	transparent   bool

	catalog CatalogSource
	store   ConfigStore
	lang    overlay.Localizer
	hooks   Hooks

	overlay  *overlay.Controller
	servers  *ServerPanel
	accounts *AccountPanel

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	dist       *models.Distribution
	catalogErr error

	status       serverStatus
	statusGen    int
	dial         DialFunc
	probeTimeout time.Duration
	now          func() time.Time

	settings settingsSnapshot

	// where the overlay box was last drawn
	boxX, boxY, boxW, boxH int

	quitting bool
}

// New creates the launcher model
func New(opts Options) *Model {
	if opts.Lang == nil {
		l, err := lang.Load("")
		if err != nil {
			slog.Error("load language", "err", err)
		}
		opts.Lang = l
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 3 * time.Second
	}
	if opts.Dial == nil {
		var d net.Dialer
		opts.Dial = d.DialContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle

	m := &Model{
		view:         ViewLanding,
		focusable:    true,
		catalog:      opts.Catalog,
		store:        opts.Store,
		lang:         opts.Lang,
		keys:         defaultKeys,
		help:         help.New(),
		spinner:      sp,
		dial:         opts.Dial,
		probeTimeout: opts.ProbeTimeout,
		now:          opts.Now,
	}
	m.hooks = opts.Hooks
	if m.hooks == nil {
		m.hooks = appHooks{m: m}
	}

	ctlOpts := []overlay.Option{
		overlay.WithHost(m),
		overlay.WithLocalizer(m.lang),
		overlay.WithSettingsView(ViewSettings),
	}
	if opts.FadeDuration > 0 {
		ctlOpts = append(ctlOpts, overlay.WithFade(opts.FadeDuration, overlay.DefaultFadeFrames))
	}
	m.overlay = overlay.New(overlay.NewRegistry(), ctlOpts...)
	m.servers = NewServerPanel(m.overlay, m.catalog, m.store, m.hooks, m.lang)
	if opts.FetchTimeout > 0 {
		m.servers.timeout = opts.FetchTimeout
	}
	m.accounts = NewAccountPanel(m.overlay, m.store, m.hooks, m, m.lang)
	return m
}

// CurrentView implements overlay.Host
func (m *Model) CurrentView() string {
	return m.view
}

// SetFocusable implements overlay.Host
func (m *Model) SetFocusable(focusable bool) {
	m.focusable = focusable
}

// SetBackdrop implements overlay.Host
func (m *Model) SetBackdrop(transparent bool) {
	m.transparent = transparent
}

// Overlay returns the overlay controller
func (m *Model) Overlay() *overlay.Controller {
	return m.overlay
}

// OpenServerSelection fetches the catalog and shows the server panel
func (m *Model) OpenServerSelection() tea.Cmd {
	return tea.Batch(m.servers.Open(), m.spinner.Tick)
}

// OpenAccountSelection shows the account panel. When nothing is on screen
// the default dialog is first filled with the current account, so the
// panel's cancel has somewhere to return to.
func (m *Model) OpenAccountSelection() tea.Cmd {
	m.servers.Abandon()
	if !m.overlay.Visible() {
		m.overlay.SetContent(m.accountOverview())
		m.overlay.SetAcknowledgeHandler(nil)
		m.overlay.SetDismissHandler(m.accounts.Open)
	}
	return m.accounts.Open()
}

func (m *Model) accountOverview() overlay.Content {
	desc := m.lang.Query("landing.noAccount")
	if acc, ok := m.store.SelectedAccount(); ok {
		desc = fmt.Sprintf("**%s**", acc.DisplayName)
		if acc.Type != "" {
			desc += fmt.Sprintf(" (%s)", acc.Type)
		}
	}
	return overlay.Content{
		Title:       m.lang.Query("landing.account"),
		Description: desc,
		Acknowledge: m.lang.Query("overlay.acknowledge"),
		Dismiss:     m.lang.Query("overlay.accountExpired.dismiss"),
	}
}

// Init loads the catalog for the landing view
func (m *Model) Init() tea.Cmd {
	catalog, timeout := m.catalog, m.servers.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		dist, err := catalog.Distribution(ctx)
		return catalogLoadedMsg{dist: dist, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.servers.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		return m, m.handleCatalogLoaded(msg)

	case serverCatalogMsg:
		cmd := m.servers.HandleCatalog(msg)
		if d := m.servers.Distribution(); d != nil {
			m.dist = d
			m.catalogErr = nil
		}
		return m, cmd

	case CatalogErrorMsg:
		return m, m.showCatalogError(msg.Err)

	case statusMsg:
		m.handleStatus(msg)
		return m, nil
	}

	return m, m.overlay.Update(msg)
}

func (m *Model) handleCatalogLoaded(msg catalogLoadedMsg) tea.Cmd {
	// the server panel already delivered a newer catalog
	if m.servers.Distribution() != nil {
		slog.Debug("dropping startup catalog, panel fetch is newer")
		return nil
	}
	if msg.err != nil {
		slog.Warn("load catalog", "err", msg.err)
		m.catalogErr = msg.err
		return nil
	}
	m.dist = msg.dist

	// fall back to the main server when nothing valid is selected
	srv, ok := m.dist.ServerByID(m.store.SelectedServer())
	if !ok {
		if srv, ok = m.dist.MainServer(); !ok {
			return nil
		}
		m.store.SetSelectedServer(srv.ID)
		if err := m.store.Save(); err != nil {
			slog.Error("save config", "err", err)
		}
	}
	return tea.Batch(m.probeStatus(srv), m.validateAccount())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return tea.Quit
	}

	if m.overlay.Visible() {
		if p := m.activePanel(); p != nil && p.handleKey(msg) {
			return nil
		}
		// everything else stays inside the overlay
		_, cmd := m.overlay.HandleKey(msg)
		return cmd
	}
	if !m.focusable {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Servers):
		return m.OpenServerSelection()
	case key.Matches(msg, m.keys.Accounts):
		return m.OpenAccountSelection()
	case key.Matches(msg, m.keys.Settings):
		if m.view == ViewSettings {
			m.view = ViewLanding
			return nil
		}
		m.view = ViewSettings
		return m.hooks.PrepareSettings()
	case key.Matches(msg, m.keys.Launch):
		return m.launch()
	case key.Matches(msg, m.keys.Refresh):
		return m.refreshStatus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.overlay.Visible() || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	p := m.activePanel()
	if p == nil {
		return nil
	}
	if msg.X < m.boxX || msg.X >= m.boxX+m.boxW || msg.Y < m.boxY || msg.Y >= m.boxY+m.boxH {
		return nil
	}
	top := overlay.Box.GetBorderTopSize() + overlay.Box.GetPaddingTop()
	p.click(msg.Y - m.boxY - top)
	return nil
}

// activePanel returns the selection panel that currently has the keyboard
func (m *Model) activePanel() panelInput {
	switch m.overlay.State().Active {
	case overlay.ContentServerSelect:
		return &m.servers.selectPanel
	case overlay.ContentAccountSelect:
		return &m.accounts.selectPanel
	}
	return nil
}

// launch shows the launch dialog for the selected server and account
func (m *Model) launch() tea.Cmd {
	srv, ok := m.dist.ServerByID(m.store.SelectedServer())
	if !ok {
		return m.OpenServerSelection()
	}
	acc, ok := m.store.SelectedAccount()
	if !ok {
		return m.showDialog(overlay.Content{
			Title:       m.lang.Query("overlay.noAccount.title"),
			Description: m.lang.Query("overlay.noAccount.description"),
			Acknowledge: m.lang.Query("overlay.acknowledge"),
		}, false, nil, nil)
	}
	if acc.Expired(m.now()) {
		return m.validateAccount()
	}
	slog.Info("launch", "server", srv.ID, "uuid", acc.UUID)
	return m.showDialog(overlay.Content{
		Title:       m.lang.Query("overlay.launch.title"),
		Description: fmt.Sprintf(m.lang.Query("overlay.launch.description"), srv.Name, acc.DisplayName),
		Acknowledge: m.lang.Query("overlay.launch.acknowledge"),
	}, false, nil, nil)
}
