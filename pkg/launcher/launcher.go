// Package launcher is the lobby terminal UI: a landing view and a settings
// view beneath a modal overlay that hosts the server and account selection
// panels.
package launcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/internal/models"
)

// CatalogSource provides the server catalog
type CatalogSource interface {
	Distribution(ctx context.Context) (*models.Distribution, error)
}

// ConfigStore is the persisted launcher state the panels commit into
type ConfigStore interface {
	SelectedServer() string
	SetSelectedServer(id string)
	Accounts() []models.Account
	AuthAccounts() map[string]models.Account
	SelectedAccount() (models.Account, bool)
	SetSelectedAccount(uuid string) (models.Account, bool)
	Save() error
}

// Hooks are the collaborators notified after a selection is committed
type Hooks interface {
	// ServerChanged refreshes the status display for the new server
	ServerChanged(server models.Server) tea.Cmd
	// AccountChanged updates whatever shows the selected account
	AccountChanged(account models.Account) tea.Cmd
	// PrepareSettings rebuilds the settings view
	PrepareSettings() tea.Cmd
	// ValidateAccount checks the selected account is still usable
	ValidateAccount() tea.Cmd
}
