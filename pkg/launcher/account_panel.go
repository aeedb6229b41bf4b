package launcher

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/internal/models"
	"github.com/marcus/lobby/pkg/overlay"
	"github.com/marcus/lobby/pkg/selectlist"
)

// AccountPanel lists stored accounts. It is reached from the default dialog,
// so cancel cross-fades back to the dialog instead of hiding.
type AccountPanel struct {
	selectPanel

	store ConfigStore
	hooks Hooks
	host  overlay.Host

	// dismissable of the content the panel was opened over
	returnDismissable bool
}

// NewAccountPanel creates an account panel and registers it with ctl
func NewAccountPanel(ctl *overlay.Controller, store ConfigStore, hooks Hooks, host overlay.Host, lang overlay.Localizer) *AccountPanel {
	p := &AccountPanel{
		store: store,
		hooks: hooks,
		host:  host,

		returnDismissable: true,
	}
	p.selectPanel = selectPanel{
		ctl:  ctl,
		lang: lang,
		keys: panelKeys{
			title:   "accountSelect.title",
			confirm: "accountSelect.confirm",
			cancel:  "accountSelect.cancel",
		},
		list: selectlist.New(
			selectlist.WithRenderer(accountRenderer),
			selectlist.WithEmptyText(lang.Query("accountSelect.empty")),
		),
	}
	if err := ctl.Registry().Register(overlay.ContentAccountSelect, p); err != nil {
		slog.Error("register account panel", "err", err)
	}
	return p
}

// Open populates the list from the store and shows the panel. The selected
// account is preselected, or the first one when none is. If the overlay is
// already up the panel cross-fades in over the current content, and cancel
// later restores that content's dismissable.
func (p *AccountPanel) Open() tea.Cmd {
	sel, hasSel := p.store.SelectedAccount()
	p.list.Populate(accountEntries(p.store.Accounts()), func(e selectlist.Entry) bool {
		return !hasSel || e.ID == sel.UUID
	})
	if p.ctl.Visible() {
		p.returnDismissable = p.ctl.State().Dismissable
		return p.ctl.Swap(overlay.ContentAccountSelect, true)
	}
	p.returnDismissable = true
	return p.ctl.Show(true, overlay.ContentAccountSelect)
}

// Acknowledge commits the selected account, hides the overlay and
// revalidates the new account
func (p *AccountPanel) Acknowledge() tea.Cmd {
	id, ok := p.list.SelectedID()
	if !ok {
		if id, ok = p.list.First(); !ok {
			slog.Debug("account selection empty, nothing to commit")
			return nil
		}
		slog.Warn("no account flagged selected, using first entry", "uuid", id)
	}

	acc, ok := p.store.SetSelectedAccount(id)
	if !ok {
		slog.Error("selected account no longer stored", "uuid", id)
		return p.ctl.Hide()
	}
	if err := p.store.Save(); err != nil {
		slog.Error("save config", "err", err)
	}

	cmds := []tea.Cmd{p.hooks.AccountChanged(acc)}
	if p.host.CurrentView() == overlay.DefaultSettingsView {
		cmds = append(cmds, p.hooks.PrepareSettings())
	}
	cmds = append(cmds, p.ctl.Hide())
	// validation may show a dialog, so it runs after the hide
	cmds = append(cmds, p.hooks.ValidateAccount())
	return tea.Batch(cmds...)
}

// Dismiss returns to the default dialog without hiding the overlay
func (p *AccountPanel) Dismiss() tea.Cmd {
	return p.ctl.Swap(overlay.ContentDefault, p.returnDismissable)
}

// View implements overlay.Region
func (p *AccountPanel) View(width int) string {
	return p.view(width)
}

func accountEntries(accounts []models.Account) []selectlist.Entry {
	entries := make([]selectlist.Entry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, selectlist.Entry{
			ID: a.UUID,
			Fields: map[string]string{
				"name": a.DisplayName,
				"type": string(a.Type),
			},
		})
	}
	return entries
}

func accountRenderer(e selectlist.Entry, focused bool, width int) string {
	line := selectlist.DefaultRenderer(e, focused, width)
	if t := e.Field("type"); t != "" {
		line += " " + mutedStyle.Render("("+t+")")
	}
	return line
}
