package launcher

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/internal/models"
)

type fakeCatalog struct {
	results []*models.Distribution
	err     error
	calls   int
}

func (f *fakeCatalog) Distribution(context.Context) (*models.Distribution, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return &models.Distribution{}, nil
	}
	i := min(f.calls, len(f.results)) - 1
	return f.results[i], nil
}

type fakeStore struct {
	server   string
	accounts []models.Account
	selected string

	saves          int
	saveErr        error
	serverCommits  []string
	accountCommits []string
}

func (s *fakeStore) SelectedServer() string { return s.server }

func (s *fakeStore) SetSelectedServer(id string) {
	s.server = id
	s.serverCommits = append(s.serverCommits, id)
}

func (s *fakeStore) Accounts() []models.Account {
	return append([]models.Account(nil), s.accounts...)
}

func (s *fakeStore) AuthAccounts() map[string]models.Account {
	out := make(map[string]models.Account, len(s.accounts))
	for _, a := range s.accounts {
		out[a.UUID] = a
	}
	return out
}

func (s *fakeStore) SelectedAccount() (models.Account, bool) {
	for _, a := range s.accounts {
		if a.UUID == s.selected {
			return a, true
		}
	}
	return models.Account{}, false
}

func (s *fakeStore) SetSelectedAccount(uuid string) (models.Account, bool) {
	s.accountCommits = append(s.accountCommits, uuid)
	for _, a := range s.accounts {
		if a.UUID == uuid {
			s.selected = uuid
			return a, true
		}
	}
	return models.Account{}, false
}

func (s *fakeStore) Save() error {
	s.saves++
	return s.saveErr
}

type recordingHooks struct {
	calls []string
}

func (h *recordingHooks) ServerChanged(s models.Server) tea.Cmd {
	h.calls = append(h.calls, "server:"+s.ID)
	return nil
}

func (h *recordingHooks) AccountChanged(a models.Account) tea.Cmd {
	h.calls = append(h.calls, "account:"+a.UUID)
	return nil
}

func (h *recordingHooks) PrepareSettings() tea.Cmd {
	h.calls = append(h.calls, "settings")
	return nil
}

func (h *recordingHooks) ValidateAccount() tea.Cmd {
	h.calls = append(h.calls, "validate")
	return nil
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func catalogOf(ids ...string) *models.Distribution {
	d := &models.Distribution{Version: "1.0.0"}
	for _, id := range ids {
		d.Servers = append(d.Servers, models.Server{
			ID:               id,
			Name:             "Server " + id,
			MinecraftVersion: "1.20.1",
			Version:          "3.0.0",
		})
	}
	return d
}

func refusingDial(context.Context, string, string) (net.Conn, error) {
	return nil, errors.New("connection refused")
}

func newTestModel(t *testing.T, catalog CatalogSource, store ConfigStore, hooks Hooks) *Model {
	t.Helper()
	m := New(Options{
		Catalog:      catalog,
		Store:        store,
		Hooks:        hooks,
		FadeDuration: 5 * time.Millisecond,
		Dial:         refusingDial,
		Now:          func() time.Time { return testNow },
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// drive runs cmd and everything it leads to through the model
func drive(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 1000; i++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(m *Model, k string) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	drive(m, cmd)
}
