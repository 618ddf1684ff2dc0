package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/report"
	"github.com/nvoss/gpacalc/internal/tui"
)

var (
	courseSemesterID string
	courseName       string
	courseGrade      string
	courseCredits    float64
	courseWeighted   bool
	courseWeightType string
)

func newCourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage courses",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course to a semester",
		Args:  cobra.NoArgs,
		RunE:  runCourseAddCmd,
	}
	addCmd.Flags().StringVar(&courseSemesterID, "semester", "", "semester id (default: latest)")
	addCmd.Flags().StringVar(&courseName, "name", "", "course name")
	addCmd.Flags().StringVar(&courseGrade, "grade", "", "grade symbol")
	addCmd.Flags().Float64Var(&courseCredits, "credits", 0, "credit value")
	addCmd.Flags().BoolVar(&courseWeighted, "weighted", false, "count as a weighted course (US only)")
	addCmd.Flags().StringVar(&courseWeightType, "weight-type", "", "AP, Honours, or Standard")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List courses in a semester",
		Args:  cobra.NoArgs,
		RunE:  runCourseListCmd,
	}
	listCmd.Flags().StringVar(&courseSemesterID, "semester", "", "semester id (default: latest)")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <course-id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE:  runCourseRmCmd,
	})
	return cmd
}

func (a *app) resolveSemester(ctx context.Context, id string) (model.Semester, error) {
	if id == "" {
		return a.latestSemester(ctx)
	}
	return a.store.GetSemester(ctx, id)
}

func runCourseAddCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	sem, err := app.resolveSemester(ctx, courseSemesterID)
	if err != nil {
		return err
	}

	in := model.CourseInput{
		Name:       courseName,
		Grade:      courseGrade,
		Credits:    courseCredits,
		Weighted:   courseWeighted,
		WeightType: courseWeightType,
	}
	if in.Name == "" || in.Grade == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--name and --grade are required in non-interactive mode")
		}
		in, err = tui.RunCourseForm(sem.Scale)
		if err != nil {
			return fmt.Errorf("failed to run form: %w", err)
		}
	}
	if err := model.ValidateCourseInput(in, sem.Scale); err != nil {
		return err
	}

	c, err := app.store.AddCourse(ctx, sem.ID, in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s\n", c.Name, c.ID, sem.Name)
	return err
}

func runCourseListCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	sem, err := app.resolveSemester(ctx, courseSemesterID)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sem.Name, sem.Term); err != nil {
		return err
	}
	return report.RenderCourseTable(cmd.OutOrStdout(), sem.Courses)
}

func runCourseRmCmd(cmd *cobra.Command, args []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.store.DeleteCourse(context.Background(), args[0]); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
	return err
}
