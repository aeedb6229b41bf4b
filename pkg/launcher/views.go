package launcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/lobby/pkg/overlay"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}

	var body string
	if m.view == ViewSettings {
		body = m.settingsView(width)
	} else {
		body = m.landingView()
	}
	footer := m.footer()
	bodyHeight := max(1, height-lipgloss.Height(footer))
	bg := lipgloss.Place(width, bodyHeight, lipgloss.Left, lipgloss.Top, body) + "\n" + footer

	box := m.overlay.View(width, height)
	if box == "" {
		m.boxW, m.boxH = 0, 0
		return bg
	}
	m.boxW, m.boxH = lipgloss.Width(box), lipgloss.Height(box)
	m.boxX = max(0, (width-m.boxW)/2)
	m.boxY = max(0, (height-m.boxH)/2)
	return overlayAt(bg, box, m.boxX, m.boxY, width, height)
}

func (m *Model) footer() string {
	if m.overlay.Visible() && m.activePanel() != nil {
		return m.help.View(overlayHelpKeys)
	}
	return m.help.View(m.keys)
}

func (m *Model) landingView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("lobby"))
	b.WriteString("\n")

	server := mutedStyle.Render(m.lang.Query("landing.noServer"))
	if srv, ok := m.dist.ServerByID(m.store.SelectedServer()); ok {
		server = valueStyle.Render(srv.Name)
		if srv.MinecraftVersion != "" {
			server += " " + mutedStyle.Render(srv.MinecraftVersion)
		}
	} else if m.catalogErr != nil {
		server = warnStyle.Render(m.lang.Query("landing.notLoaded"))
	}
	if m.servers.Loading() {
		server += " " + m.spinner.View() + mutedStyle.Render(m.lang.Query("serverSelect.loading"))
	}
	b.WriteString(row(m.lang.Query("landing.server"), server))

	account := mutedStyle.Render(m.lang.Query("landing.noAccount"))
	if acc, ok := m.store.SelectedAccount(); ok {
		account = valueStyle.Render(acc.DisplayName)
		if acc.Expired(m.now()) {
			account += " " + warnStyle.Render("!")
		}
	}
	b.WriteString(row(m.lang.Query("landing.account"), account))
	b.WriteString(row(m.lang.Query("landing.status"), m.statusText()))
	return b.String()
}

func (m *Model) statusText() string {
	switch m.status.state {
	case statusChecking:
		return mutedStyle.Render(m.lang.Query("landing.checking"))
	case statusOnline:
		s := onlineStyle.Render("● " + m.lang.Query("landing.online"))
		if m.status.latency > 0 {
			s += mutedStyle.Render(fmt.Sprintf(" %dms", m.status.latency.Milliseconds()))
		}
		return s
	case statusOffline:
		return offlineStyle.Render("● " + m.lang.Query("landing.offline"))
	}
	return mutedStyle.Render("-")
}

func (m *Model) settingsView(width int) string {
	var b strings.Builder
	b.WriteString(overlay.ModalTitle.Render(m.lang.Query("settings.title")))
	b.WriteString("\n\n")

	server := m.settings.server
	if server == "" {
		server = mutedStyle.Render(m.lang.Query("landing.noServer"))
	}
	b.WriteString(row(m.lang.Query("settings.server"), server))
	if m.dist != nil && m.dist.Version != "" {
		b.WriteString(row(m.lang.Query("settings.distribution"), m.dist.Version))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.lang.Query("settings.accounts")))
	b.WriteString("\n")
	if len(m.settings.accounts) == 0 {
		b.WriteString("  " + mutedStyle.Render(m.lang.Query("accountSelect.empty")) + "\n")
	}
	for _, acc := range m.settings.accounts {
		line := "  " + acc.DisplayName
		if acc.UUID == m.settings.selected {
			line = "  " + valueStyle.Render(acc.DisplayName) + " " + mutedStyle.Render("("+m.lang.Query("settings.selected")+")")
		}
		b.WriteString(line + "\n")
	}

	style := settingsPanel.Width(min(width-2, 72))
	if !m.transparent {
		style = style.Background(overlay.BgSecondary)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}
