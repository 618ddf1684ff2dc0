package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvoss/gpacalc/internal/entitlement"
	"github.com/nvoss/gpacalc/internal/logging"
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/report"
	"github.com/nvoss/gpacalc/internal/tui"
)

var (
	predictGPA     string
	predictCredits string
)

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Project the GPA from expected future courses",
		Args:  cobra.NoArgs,
		RunE:  runPredictCmd,
	}
	cmd.Flags().StringVar(&predictGPA, "gpa", "", "current GPA (blank: use stored standing)")
	cmd.Flags().StringVar(&predictCredits, "credits", "", "credits behind the current GPA")
	return cmd
}

func runPredictCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if err := app.gate.Require(ctx, entitlement.FeaturePrediction); err != nil {
		return err
	}

	standing, err := app.store.GetStanding(ctx, app.profile.ID, app.scale)
	if err != nil {
		return err
	}
	// Flag input overrides the stored baseline. Blank or unparseable
	// values mean "no prior standing", never zero.
	if cmd.Flags().Changed("gpa") || cmd.Flags().Changed("credits") {
		standing = model.Standing{
			GPA:     parseOptionalFloat(predictGPA),
			Credits: parseOptionalFloat(predictCredits),
		}
		if predictGPA != "" && standing.GPA == nil {
			logging.Warn(app.logger, "ignoring unparseable --gpa value", "value", predictGPA)
		}
		if predictCredits != "" && standing.Credits == nil {
			logging.Warn(app.logger, "ignoring unparseable --credits value", "value", predictCredits)
		}
		if err := app.store.SaveStanding(ctx, app.profile.ID, app.scale, standing); err != nil {
			return err
		}
	}

	expected, err := app.store.ListPredictionCourses(ctx, app.profile.ID, app.scale)
	if err != nil {
		return err
	}
	return report.RenderProjection(cmd.OutOrStdout(), standing, expected, app.scale)
}

func newExpectedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expected",
		Short: "Manage expected future courses for prediction",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Add an expected course",
		Args:  cobra.NoArgs,
		RunE:  runExpectedAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List expected courses",
		Args:  cobra.NoArgs,
		RunE:  runExpectedListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all expected courses",
		Args:  cobra.NoArgs,
		RunE:  runExpectedClearCmd,
	})
	return cmd
}

func runExpectedAddCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if err := app.gate.Require(ctx, entitlement.FeaturePrediction); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("expected add is interactive; run it from a terminal")
	}
	p, err := tui.RunPredictionForm(app.scale)
	if err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}
	if err := app.store.AddPredictionCourse(ctx, app.profile.ID, app.scale, p); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added expected course %s (%s, %g credits)\n",
		p.Name, p.ExpectedGrade, p.Credits)
	return err
}

func runExpectedListCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if err := app.gate.Require(ctx, entitlement.FeaturePrediction); err != nil {
		return err
	}
	expected, err := app.store.ListPredictionCourses(ctx, app.profile.ID, app.scale)
	if err != nil {
		return err
	}
	if len(expected) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No expected courses found.")
		return err
	}
	for _, p := range expected {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %g credits\n",
			p.Name, p.ExpectedGrade, p.Credits); err != nil {
			return err
		}
	}
	return nil
}

func runExpectedClearCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if err := app.gate.Require(ctx, entitlement.FeaturePrediction); err != nil {
		return err
	}
	if err := app.store.ClearPredictionCourses(ctx, app.profile.ID, app.scale); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Cleared.")
	return err
}
