package launcher

import (
	"context"
	"log/slog"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/lobby/internal/models"
)

// defaultPort is used when a server address carries no port
const defaultPort = "25565"

type statusState int

const (
	statusUnknown statusState = iota
	statusChecking
	statusOnline
	statusOffline
)

type serverStatus struct {
	server  string
	state   statusState
	latency time.Duration
}

// statusMsg is the result of one probe
type statusMsg struct {
	gen     int
	server  string
	online  bool
	latency time.Duration
	err     error
}

// DialFunc opens a connection; net.Dialer.DialContext satisfies it
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// probeStatus starts a TCP probe of s. Only the latest probe's result is
// kept.
func (m *Model) probeStatus(s models.Server) tea.Cmd {
	m.statusGen++
	gen := m.statusGen
	if s.Address == "" {
		m.status = serverStatus{server: s.ID, state: statusUnknown}
		return nil
	}
	m.status = serverStatus{server: s.ID, state: statusChecking}

	addr := withDefaultPort(s.Address)
	dial, timeout, id := m.dial, m.probeTimeout, s.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		conn, err := dial(ctx, "tcp", addr)
		if err != nil {
			return statusMsg{gen: gen, server: id, err: err}
		}
		conn.Close()
		return statusMsg{gen: gen, server: id, online: true, latency: time.Since(start)}
	}
}

func (m *Model) handleStatus(msg statusMsg) {
	if msg.gen != m.statusGen {
		return
	}
	if msg.err != nil {
		slog.Debug("server offline", "server", msg.server, "err", msg.err)
		m.status = serverStatus{server: msg.server, state: statusOffline}
		return
	}
	m.status = serverStatus{server: msg.server, state: statusOnline, latency: msg.latency}
}

// refreshStatus probes the selected server again
func (m *Model) refreshStatus() tea.Cmd {
	srv, ok := m.dist.ServerByID(m.store.SelectedServer())
	if !ok {
		return nil
	}
	return m.probeStatus(srv)
}

func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, defaultPort)
}
