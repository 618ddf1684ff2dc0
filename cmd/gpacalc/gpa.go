package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvoss/gpacalc/internal/entitlement"
	"github.com/nvoss/gpacalc/internal/gpa"
	"github.com/nvoss/gpacalc/internal/report"
)

var (
	gpaWeighted   bool
	gpaCumulative bool
)

func newGPACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpa",
		Short: "Show the GPA for the current semester or all semesters",
		Args:  cobra.NoArgs,
		RunE:  runGPACmd,
	}
	cmd.Flags().BoolVar(&gpaWeighted, "weighted", false, "apply weighting bonuses (premium)")
	cmd.Flags().BoolVar(&gpaCumulative, "cumulative", false, "aggregate across all semesters (premium)")
	return cmd
}

func runGPACmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if gpaWeighted {
		if err := app.gate.Require(ctx, entitlement.FeatureWeightedGPA); err != nil {
			return err
		}
	}
	if gpaCumulative {
		if err := app.gate.Require(ctx, entitlement.FeatureMultiSemester); err != nil {
			return err
		}
	}

	if gpaCumulative {
		semesters, err := app.store.ListSemesters(ctx, app.profile.ID, app.scale)
		if err != nil {
			return err
		}
		return report.RenderSummary(cmd.OutOrStdout(), semesters, gpaWeighted, app.multipliers)
	}

	sem, err := app.latestSemester(ctx)
	if err != nil {
		return err
	}
	display := report.DisplayGPA(sem.Courses, sem.Scale, gpaWeighted, app.multipliers)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s over %g credits\n",
		sem.Name, sem.Term, display, gpa.TotalCredits(sem.Courses))
	return err
}
