// Package export writes transcript reports to disk.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nvoss/gpacalc/internal/gpa"
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/report"
	"github.com/nvoss/gpacalc/internal/scale"
)

// Format selects the transcript output format.
type Format string

const (
	// FormatCSV writes one row per course plus GPA summary rows.
	FormatCSV Format = "csv"
	// FormatText writes the plain-text summary and course tables.
	FormatText Format = "text"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatText:
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q (valid: csv, text)", s)
}

// Transcript bundles everything one export run needs.
type Transcript struct {
	ProfileName  string
	Scale        scale.Scale
	Semesters    []model.Semester
	UseWeighting bool
	Multipliers  scale.Multipliers
}

// Write renders the transcript to path in the given format. The file is
// written to a temp file first and renamed into place.
func Write(path string, format Format, tr Transcript) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "transcript-*")
	if err != nil {
		return fmt.Errorf("failed to create temp export file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	switch format {
	case FormatCSV:
		err = writeCSV(tmpFile, tr)
	case FormatText:
		err = writeText(tmpFile, tr)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func writeCSV(f *os.File, tr Transcript) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"semester", "term", "course", "grade", "credits", "weighted", "weight_type"}); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	for _, sem := range tr.Semesters {
		for _, c := range sem.Courses {
			record := []string{
				sem.Name,
				sem.Term,
				c.Name,
				c.Grade,
				fmt.Sprintf("%g", c.Credits),
				fmt.Sprintf("%t", c.Weighted),
				string(c.WeightType),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
		}
	}
	for _, sem := range tr.Semesters {
		value := gpa.Calculate(sem.Courses, sem.Scale, tr.UseWeighting, tr.Multipliers)
		record := []string{
			sem.Name, sem.Term, "GPA", report.FormatGPA(value),
			fmt.Sprintf("%g", gpa.TotalCredits(sem.Courses)), "", "",
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	flat := gpa.Flatten(tr.Semesters)
	cumulative := gpa.CalculateCumulative(tr.Semesters, tr.UseWeighting, tr.Multipliers)
	record := []string{
		"Cumulative", "", "GPA", report.FormatGPA(cumulative),
		fmt.Sprintf("%g", gpa.TotalCredits(flat)), "", "",
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

func writeText(f *os.File, tr Transcript) error {
	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "Transcript for %s (%s scale)\n", tr.ProfileName, tr.Scale); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Exported %s\n\n", time.Now().Format("2006-01-02")); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := report.RenderSummary(w, tr.Semesters, tr.UseWeighting, tr.Multipliers); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	for _, sem := range tr.Semesters {
		if _, err := fmt.Fprintf(w, "\n%s (%s)\n", sem.Name, sem.Term); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		if err := report.RenderCourseTable(w, sem.Courses); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}
