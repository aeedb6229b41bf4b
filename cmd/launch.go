package cmd

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/lobby/internal/lang"
	"github.com/marcus/lobby/pkg/launcher"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Open the launcher UI",
	Args:  cobra.NoArgs,
	RunE:  runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the launcher needs an interactive terminal; use the server and account subcommands instead")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	src, closeSrc, err := openSource(store)
	if err != nil {
		return err
	}
	defer closeSrc()

	l, err := lang.Load(store.Language())
	if err != nil {
		slog.Warn("load language", "lang", store.Language(), "err", err)
	}

	slog.Info("starting launcher", "version", version, "distribution", src.URL())
	opts := launcher.Options{Catalog: src, Store: store}
	if l != nil {
		opts.Lang = l
	}
	p := tea.NewProgram(launcher.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func init() {
	rootCmd.AddCommand(launchCmd)
}
