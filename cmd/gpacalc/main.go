// Package main provides the CLI entrypoint for gpacalc.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nvoss/gpacalc/internal/tui"
)

const defaultScaleName = "US"

var (
	rootProfile string
	rootScale   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gpacalc",
		Short:         "Terminal GPA tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootProfile, "profile", "", "profile name (default: guest)")
	rootCmd.PersistentFlags().StringVar(&rootScale, "scale", defaultScaleName, "grading scale (US or AU)")

	rootCmd.AddCommand(newSemesterCmd())
	rootCmd.AddCommand(newCourseCmd())
	rootCmd.AddCommand(newGPACmd())
	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newExpectedCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newUpgradeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	model := tui.NewModel(app.store, app.gate, app.profile, app.scale, app.multipliers)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
