package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvoss/gpacalc/internal/entitlement"
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/report"
	"github.com/nvoss/gpacalc/internal/scale"
	"github.com/nvoss/gpacalc/internal/tui"
)

var (
	semesterName string
	semesterTerm string
)

func newSemesterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semester",
		Short: "Manage semesters",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a semester",
		Args:  cobra.NoArgs,
		RunE:  runSemesterAddCmd,
	}
	addCmd.Flags().StringVar(&semesterName, "name", "", "semester name")
	addCmd.Flags().StringVar(&semesterTerm, "term", "", "term label (free text)")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List semesters with their GPA",
		Args:  cobra.NoArgs,
		RunE:  runSemesterListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <semester-id>",
		Short: "Delete a semester and its courses",
		Args:  cobra.ExactArgs(1),
		RunE:  runSemesterRmCmd,
	})
	return cmd
}

func runSemesterAddCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	in := model.SemesterInput{Name: semesterName, Term: semesterTerm, Scale: app.scale.String()}
	if in.Name == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--name is required in non-interactive mode")
		}
		in, err = tui.RunSemesterForm(app.scale)
		if err != nil {
			return fmt.Errorf("failed to run form: %w", err)
		}
	}
	if err := model.ValidateSemesterInput(in); err != nil {
		return err
	}
	sc, err := scale.Parse(in.Scale)
	if err != nil {
		return err
	}

	// The free tier tracks a single semester per scale.
	existing, err := app.store.ListSemesters(ctx, app.profile.ID, sc)
	if err != nil {
		return err
	}
	if len(existing) >= 1 {
		if err := app.gate.Require(ctx, entitlement.FeatureMultiSemester); err != nil {
			return err
		}
	}

	sem, err := app.store.CreateSemester(ctx, app.profile.ID, in.Name, in.Term, sc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added semester %s (%s)\n", sem.Name, sem.ID)
	return err
}

func runSemesterListCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	semesters, err := app.store.ListSemesters(ctx, app.profile.ID, app.scale)
	if err != nil {
		return err
	}
	if len(semesters) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No semesters found.")
		return err
	}
	for _, sem := range semesters {
		display := report.DisplayGPA(sem.Courses, sem.Scale, false, app.multipliers)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s, %d courses)  GPA %s\n",
			sem.ID, sem.Name, sem.Term, len(sem.Courses), display); err != nil {
			return err
		}
	}
	return nil
}

func runSemesterRmCmd(cmd *cobra.Command, args []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.store.DeleteSemester(context.Background(), args[0]); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
	return err
}
