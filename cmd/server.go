package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/marcus/lobby/internal/config"
	"github.com/marcus/lobby/internal/models"
	"github.com/marcus/lobby/internal/output"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "List and select servers from the distribution",
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers in the distribution",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dist, err := loadDistribution(cmd)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		selected, err := config.GetSelectedServer(baseDir)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(cmd, dist.Servers)
		}
		if len(dist.Servers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No servers in distribution")
			return nil
		}
		tree := output.RenderTree(output.ServerTree(dist, selected), output.TreeRenderOptions{ShowDetail: true})
		fmt.Fprintln(cmd.OutOrStdout(), tree)
		return nil
	},
}

var serverShowCmd = &cobra.Command{
	Use:   "show [server-id]",
	Short: "Show a server's details (default: the selected server)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dist, err := loadDistribution(cmd)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		id := ""
		if len(args) > 0 {
			id = args[0]
		} else if id, err = config.GetSelectedServer(baseDir); err != nil {
			return err
		}
		srv, ok := dist.ServerByID(id)
		if !ok {
			err := fmt.Errorf("server %q not found", id)
			output.Error("%v", err)
			return err
		}

		md := serverMarkdown(srv)
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		rendered, err := r.Render(md)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var serverSelectCmd = &cobra.Command{
	Use:   "select <server-id>",
	Short: "Select the server to launch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dist, err := loadDistribution(cmd)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		srv, ok := dist.ServerByID(args[0])
		if !ok {
			err := fmt.Errorf("server %q not found", args[0])
			output.Error("%v", err)
			return err
		}
		if err := config.SetSelectedServer(baseDir, srv.ID); err != nil {
			output.Error("failed to select server: %v", err)
			return err
		}
		output.Success("SELECTED %s (%s)", srv.ID, srv.Name)
		return nil
	},
}

// loadDistribution fetches the catalog, bypassing the cache with --refresh
func loadDistribution(cmd *cobra.Command) (*models.Distribution, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	src, closeSrc, err := openSource(store)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		return src.Refresh(context.Background())
	}
	return src.Distribution(context.Background())
}

func serverMarkdown(s models.Server) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Description)
	}
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| id | `%s` |\n", s.ID)
	fmt.Fprintf(&b, "| minecraft | %s |\n", s.MinecraftVersion)
	fmt.Fprintf(&b, "| revision | %s |\n", s.Version)
	if s.Address != "" {
		fmt.Fprintf(&b, "| address | `%s` |\n", s.Address)
	}
	if s.MainServer {
		fmt.Fprintf(&b, "| main server | yes |\n")
	}
	return b.String()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	serverCmd.PersistentFlags().Bool("refresh", false, "refetch the distribution instead of using the cache")
	serverListCmd.Flags().Bool("json", false, "JSON output")

	serverCmd.AddCommand(serverListCmd, serverShowCmd, serverSelectCmd)
	rootCmd.AddCommand(serverCmd)
}
