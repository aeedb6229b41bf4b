package launcher

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/internal/models"
	"github.com/marcus/lobby/pkg/overlay"
)

// appHooks are the Model's own reactions to a committed selection
type appHooks struct {
	m *Model
}

func (h appHooks) ServerChanged(s models.Server) tea.Cmd {
	slog.Info("selected server changed", "server", s.ID)
	return h.m.probeStatus(s)
}

func (h appHooks) AccountChanged(a models.Account) tea.Cmd {
	slog.Info("selected account changed", "uuid", a.UUID)
	return nil
}

func (h appHooks) PrepareSettings() tea.Cmd {
	h.m.prepareSettings()
	return nil
}

func (h appHooks) ValidateAccount() tea.Cmd {
	return h.m.validateAccount()
}

// settingsSnapshot is what the settings view draws
type settingsSnapshot struct {
	server   string
	accounts []models.Account
	selected string
}

func (m *Model) prepareSettings() {
	snap := settingsSnapshot{accounts: m.store.Accounts()}
	if acc, ok := m.store.SelectedAccount(); ok {
		snap.selected = acc.UUID
	}
	snap.server = m.store.SelectedServer()
	if srv, ok := m.dist.ServerByID(snap.server); ok {
		snap.server = srv.Name
	}
	m.settings = snap
}

// validateAccount shows the expired-session dialog when the selected
// account's session has lapsed. Its dismiss action opens the account panel
// nested over the dialog.
func (m *Model) validateAccount() tea.Cmd {
	acc, ok := m.store.SelectedAccount()
	if !ok || !acc.Expired(m.now()) {
		return nil
	}
	slog.Info("selected account expired", "uuid", acc.UUID, "expired_at", acc.ExpiresAt)
	return m.showDialog(overlay.Content{
		Title:       m.lang.Query("overlay.accountExpired.title"),
		Description: fmt.Sprintf(m.lang.Query("overlay.accountExpired.description"), acc.DisplayName),
		Acknowledge: m.lang.Query("overlay.accountExpired.acknowledge"),
		Dismiss:     m.lang.Query("overlay.accountExpired.dismiss"),
	}, true, nil, m.accounts.Open)
}

// showDialog fills the default dialog and shows it. nil handlers hide.
func (m *Model) showDialog(c overlay.Content, dismissable bool, ack, dismiss overlay.Handler) tea.Cmd {
	m.overlay.SetContent(c)
	m.overlay.SetAcknowledgeHandler(ack)
	m.overlay.SetDismissHandler(dismiss)
	return m.overlay.Show(dismissable, overlay.ContentDefault)
}

func (m *Model) showCatalogError(err error) tea.Cmd {
	return m.showDialog(overlay.Content{
		Title:       m.lang.Query("overlay.catalogError.title"),
		Description: err.Error(),
		Acknowledge: m.lang.Query("overlay.catalogError.acknowledge"),
	}, false, nil, nil)
}
