// Package report renders GPA summaries and course tables for terminal
// output and export.
package report

import (
	"fmt"
	"io"

	"github.com/nvoss/gpacalc/internal/gpa"
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

// NoData is shown where no GPA can be computed.
const NoData = "—"

// FormatGPA renders a GPA to the fixed two-decimal display format.
func FormatGPA(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatGPAWithCap pairs a GPA with its display ceiling, e.g. "3.90 / 4.50".
func FormatGPAWithCap(value, ceiling float64) string {
	return fmt.Sprintf("%s / %s", FormatGPA(value), FormatGPA(ceiling))
}

// DisplayGPA renders a course list's GPA, or the no-data placeholder for
// an empty list.
func DisplayGPA(courses []model.Course, sc scale.Scale, useWeighting bool, m scale.Multipliers) string {
	if len(courses) == 0 {
		return NoData
	}
	value := gpa.Calculate(courses, sc, useWeighting, m)
	if useWeighting {
		return FormatGPAWithCap(value, gpa.WeightedCap(courses, sc, m))
	}
	return FormatGPAWithCap(value, scale.Config(sc).Max)
}

// RenderCourseTable prints the courses of one semester.
func RenderCourseTable(w io.Writer, courses []model.Course) error {
	if len(courses) == 0 {
		_, err := fmt.Fprintln(w, "No courses found.")
		return err
	}
	headers := []string{"Course", "Grade", "Credits", "Weight"}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		weight := ""
		if c.Weighted {
			weight = string(c.WeightType)
		}
		rows = append(rows, []string{
			c.Name,
			c.Grade,
			fmt.Sprintf("%g", c.Credits),
			weight,
		})
	}
	rightAlign := map[int]bool{2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints per-semester GPA rows followed by the cumulative
// figure.
func RenderSummary(w io.Writer, semesters []model.Semester, useWeighting bool, m scale.Multipliers) error {
	if len(semesters) == 0 {
		_, err := fmt.Fprintln(w, "No semesters found.")
		return err
	}
	sc := semesters[0].Scale
	headers := []string{"Semester", "Term", "Courses", "Credits", "GPA"}
	rows := make([][]string, 0, len(semesters)+1)
	for _, sem := range semesters {
		rows = append(rows, []string{
			sem.Name,
			sem.Term,
			fmt.Sprintf("%d", len(sem.Courses)),
			fmt.Sprintf("%g", gpa.TotalCredits(sem.Courses)),
			DisplayGPA(sem.Courses, sem.Scale, useWeighting, m),
		})
	}
	flat := gpa.Flatten(semesters)
	rows = append(rows, []string{
		"Cumulative",
		"",
		fmt.Sprintf("%d", len(flat)),
		fmt.Sprintf("%g", gpa.TotalCredits(flat)),
		DisplayGPA(flat, sc, useWeighting, m),
	})
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderProjection prints the blended projection alongside its inputs.
func RenderProjection(w io.Writer, current model.Standing, expected []model.PredictionCourse, sc scale.Scale) error {
	if current.GPA != nil {
		if _, err := fmt.Fprintf(w, "Current GPA: %s", FormatGPA(*current.GPA)); err != nil {
			return err
		}
		if current.Credits != nil {
			if _, err := fmt.Fprintf(w, " over %g credits", *current.Credits); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if len(expected) > 0 {
		headers := []string{"Expected Course", "Grade", "Credits"}
		rows := make([][]string, 0, len(expected))
		for _, p := range expected {
			rows = append(rows, []string{p.Name, p.ExpectedGrade, fmt.Sprintf("%g", p.Credits)})
		}
		for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	projected := gpa.Projected(current, expected, sc)
	if len(expected) == 0 && current.GPA == nil {
		_, err := fmt.Fprintf(w, "Projected GPA: %s\n", NoData)
		return err
	}
	_, err := fmt.Fprintf(w, "Projected GPA: %s\n", FormatGPAWithCap(projected, scale.Config(sc).Max))
	return err
}
