package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/lobby/internal/config"
)

const testDistribution = `{
  "version": "1.0.0",
  "servers": [
    {"id": "main", "name": "Main Server", "minecraftVersion": "1.20.1", "version": "3.1.0", "mainServer": true},
    {"id": "test", "name": "Test Server", "minecraftVersion": "1.21", "version": "0.9.0", "address": "test.example.net"}
  ]
}`

// run executes the root command against a fresh config dir
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDistribution(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "distribution.json")
	if err := os.WriteFile(path, []byte(testDistribution), 0644); err != nil {
		t.Fatalf("write distribution: %v", err)
	}
	return path
}

func TestIsUICommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"bare", nil, true},
		{"launch", []string{"launch"}, true},
		{"server list", []string{"server", "list"}, false},
		{"account add", []string{"account", "add"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tt.args)
			if err != nil {
				t.Fatalf("Find(%v): %v", tt.args, err)
			}
			if got := isUICommand(cmd); got != tt.want {
				t.Errorf("isUICommand(%s) = %v, want %v", cmd.Name(), got, tt.want)
			}
		})
	}
}

func TestServerListAndSelect(t *testing.T) {
	dir := t.TempDir()
	distro := writeDistribution(t)

	out, err := run(t, dir, "--distro", distro, "server", "list")
	if err != nil {
		t.Fatalf("server list: %v", err)
	}
	for _, want := range []string{"main: Main Server [1.20.1]", "test: Test Server [1.21]"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, dir, "--distro", distro, "server", "select", "test"); err != nil {
		t.Fatalf("server select: %v", err)
	}
	if got, _ := config.GetSelectedServer(dir); got != "test" {
		t.Errorf("selected server: got %q, want test", got)
	}

	if _, err := run(t, dir, "--distro", distro, "server", "select", "nope"); err == nil {
		t.Error("selecting an unknown server should fail")
	}
}

func TestServerShowMarkdown(t *testing.T) {
	dir := t.TempDir()
	distro := writeDistribution(t)

	out, err := run(t, dir, "--distro", distro, "server", "show", "test")
	if err != nil {
		t.Fatalf("server show: %v", err)
	}
	for _, want := range []string{"Test Server", "test.example.net", "0.9.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}
}

func TestDistroURLPrecedence(t *testing.T) {
	store, err := config.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.SetDistributionURL("https://config.example/distribution.json")

	old := distroURL
	defer func() { distroURL = old }()

	distroURL = ""
	t.Setenv(distroEnv, "")
	if got := resolveDistroURL(store); got != "https://config.example/distribution.json" {
		t.Errorf("config: got %q", got)
	}

	t.Setenv(distroEnv, "https://env.example/distribution.json")
	if got := resolveDistroURL(store); got != "https://env.example/distribution.json" {
		t.Errorf("env: got %q", got)
	}

	distroURL = "/tmp/flag.json"
	if got := resolveDistroURL(store); got != "/tmp/flag.json" {
		t.Errorf("flag: got %q", got)
	}
}
