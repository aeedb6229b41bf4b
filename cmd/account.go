package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/marcus/lobby/internal/config"
	"github.com/marcus/lobby/internal/models"
	"github.com/marcus/lobby/internal/output"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage stored accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		accounts := store.Accounts()

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(cmd, accounts)
		}
		if len(accounts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No accounts stored")
			return nil
		}
		now := time.Now()
		root := output.AccountTree(accounts, store.SelectedAccountID(), func(a models.Account) bool {
			return a.Expired(now)
		})
		fmt.Fprintln(cmd.OutOrStdout(), output.RenderTree(root, output.TreeRenderOptions{}))
		return nil
	},
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store an account",
	Long: `Store an account. Without --name, and on a terminal, an interactive
form asks for the details.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := accountFromFlags(cmd)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if acc.DisplayName == "" {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				err := errors.New("--name is required when not running on a terminal")
				output.Error("%v", err)
				return err
			}
			if err := runAccountForm(&acc); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
		}
		if acc.UUID == "" {
			acc.UUID = uuid.NewString()
		}

		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		store.AddAccount(acc)
		if sel, _ := cmd.Flags().GetBool("select"); sel {
			store.SetSelectedAccount(acc.UUID)
		}
		if err := store.Save(); err != nil {
			output.Error("failed to save account: %v", err)
			return err
		}
		output.Success("ADDED %s (%s)", acc.DisplayName, acc.UUID)
		return nil
	},
}

var accountSelectCmd = &cobra.Command{
	Use:   "select <uuid>",
	Short: "Select the account to launch with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		acc, ok := store.SetSelectedAccount(args[0])
		if !ok {
			output.Error("%v: %s", config.ErrAccountNotFound, args[0])
			return config.ErrAccountNotFound
		}
		if err := store.Save(); err != nil {
			output.Error("failed to save: %v", err)
			return err
		}
		if acc.Expired(time.Now()) {
			output.Warning("session for %s has expired", acc.DisplayName)
		}
		output.Success("SELECTED %s (%s)", acc.DisplayName, acc.UUID)
		return nil
	},
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <uuid>",
	Short: "Remove a stored account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := store.RemoveAccount(args[0]); err != nil {
			output.Error("%v: %s", err, args[0])
			return err
		}
		if err := store.Save(); err != nil {
			output.Error("failed to save: %v", err)
			return err
		}
		output.Success("REMOVED %s", args[0])
		return nil
	},
}

// accountTypeValue is a flag value limited to the known account types
type accountTypeValue models.AccountType

var _ pflag.Value = (*accountTypeValue)(nil)

func newAccountTypeValue(t models.AccountType) *accountTypeValue {
	v := accountTypeValue(t)
	return &v
}

func (v *accountTypeValue) String() string { return string(*v) }

func (v *accountTypeValue) Set(s string) error {
	t := models.AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !models.IsValidAccountType(t) {
		return fmt.Errorf("invalid account type %q (want microsoft, mojang or offline)", s)
	}
	*v = accountTypeValue(t)
	return nil
}

func (v *accountTypeValue) Type() string { return "type" }

// accountFromFlags builds an account from the add command's flags
func accountFromFlags(cmd *cobra.Command) (models.Account, error) {
	name, _ := cmd.Flags().GetString("name")
	id, _ := cmd.Flags().GetString("uuid")
	typ := string(models.AccountOffline)
	if f := cmd.Flags().Lookup("type"); f != nil {
		typ = f.Value.String()
	}
	expires, _ := cmd.Flags().GetDuration("expires")

	acc := models.Account{
		UUID:        strings.TrimSpace(id),
		DisplayName: strings.TrimSpace(name),
		Type:        models.AccountType(strings.ToLower(typ)),
	}
	if !models.IsValidAccountType(acc.Type) {
		return acc, fmt.Errorf("invalid account type %q (want microsoft, mojang or offline)", typ)
	}
	if acc.UUID != "" {
		if _, err := uuid.Parse(acc.UUID); err != nil {
			return acc, fmt.Errorf("invalid uuid %q: %w", acc.UUID, err)
		}
	}
	if expires > 0 {
		acc.ExpiresAt = time.Now().Add(expires).UTC()
	}
	return acc, nil
}

func runAccountForm(acc *models.Account) error {
	typ := string(acc.Type)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Display name").
				Value(&acc.DisplayName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Account type").
				Options(huh.NewOptions(
					string(models.AccountMicrosoft),
					string(models.AccountMojang),
					string(models.AccountOffline),
				)...).
				Value(&typ),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	acc.DisplayName = strings.TrimSpace(acc.DisplayName)
	acc.Type = models.AccountType(typ)
	return nil
}

func init() {
	accountListCmd.Flags().Bool("json", false, "JSON output")

	accountAddCmd.Flags().String("name", "", "display name")
	accountAddCmd.Flags().String("uuid", "", "account uuid (generated when empty)")
	accountAddCmd.Flags().Var(newAccountTypeValue(models.AccountOffline), "type", "account type: microsoft, mojang or offline")
	accountAddCmd.Flags().Duration("expires", 0, "session lifetime, e.g. 720h (0 never expires)")
	accountAddCmd.Flags().Bool("select", false, "select the account after adding it")

	accountCmd.AddCommand(accountListCmd, accountAddCmd, accountSelectCmd, accountRemoveCmd)
	rootCmd.AddCommand(accountCmd)
}
