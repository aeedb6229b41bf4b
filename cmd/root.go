package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/lobby/internal/config"
)

var (
	version   string
	baseDir   string
	debug     bool
	distroURL string

	logFile io.Closer
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "lobby",
	Short: "Terminal launcher for a game server distribution",
	Long: `lobby - pick a server from a distribution catalog, pick an account, launch.

Run without a subcommand to open the launcher UI.`,
	SilenceUsage:      true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	RunE: runLaunch,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// set here: setup refers back to rootCmd
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "config directory (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&distroURL, "distro", "", "distribution URL or file (overrides config and "+distroEnv+")")
}

func setup(cmd *cobra.Command, args []string) error {
	if baseDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return fmt.Errorf("cannot determine config directory: %w", err)
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// the UI owns the terminal, so it logs to a file
	if isUICommand(cmd) {
		f, err := os.OpenFile(filepath.Join(baseDir, "lobby.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
		return nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// isUICommand reports whether cmd runs the launcher UI
func isUICommand(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == launchCmd
}
