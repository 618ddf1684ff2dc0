package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvoss/gpacalc/internal/tui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfileListCmd,
	})
	return cmd
}

func runProfileAddCmd(cmd *cobra.Command, args []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := app.store.EnsureProfile(context.Background(), args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"Profile %s ready. Select it with --profile %s or via the config file.\n", p.Name, p.Name)
	return err
}

func runProfileListCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	profiles, err := app.store.ListProfiles(context.Background())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No profiles found.")
		return err
	}
	for _, p := range profiles {
		tier := "free"
		if p.Premium {
			tier = "premium"
		}
		marker := " "
		if p.ID == app.profile.ID {
			marker = "*"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", marker, p.Name, tier); err != nil {
			return err
		}
	}
	return nil
}

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Unlock premium features",
		Args:  cobra.NoArgs,
		RunE:  runUpgradeCmd,
	}
}

func runUpgradeCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	premium, err := app.gate.Premium(ctx)
	if err != nil {
		return err
	}
	if premium {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Already premium.")
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("upgrade is interactive; run it from a terminal")
	}
	confirmed, err := tui.RunUpgradeForm()
	if err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}
	if !confirmed {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Upgrade cancelled.")
		return err
	}
	if err := app.gate.Unlock(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Premium unlocked.")
	return err
}
