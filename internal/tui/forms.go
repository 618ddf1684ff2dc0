package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

func gradeOptions(sc scale.Scale) []huh.Option[string] {
	cfg := scale.Config(sc)
	opts := make([]huh.Option[string], 0, len(cfg.Grades))
	for _, g := range cfg.Grades {
		opts = append(opts, huh.NewOption(g, g))
	}
	return opts
}

func creditOptions(sc scale.Scale) []huh.Option[string] {
	cfg := scale.Config(sc)
	opts := make([]huh.Option[string], 0, len(cfg.CreditOptions))
	for _, c := range cfg.CreditOptions {
		label := fmt.Sprintf("%g", c)
		opts = append(opts, huh.NewOption(label, label))
	}
	return opts
}

// RunCourseForm collects a course entry interactively. Grade and credit
// choices are constrained to the scale's enumerated options; the weight
// picker only appears on the US scale.
func RunCourseForm(sc scale.Scale) (model.CourseInput, error) {
	var (
		name       string
		grade      string
		credits    string
		weightType string
	)

	fields := []huh.Field{
		huh.NewInput().
			Title("Course name").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name must not be empty")
				}
				return nil
			}).
			Value(&name),
		huh.NewSelect[string]().
			Title("Grade").
			Options(gradeOptions(sc)...).
			Value(&grade),
		huh.NewSelect[string]().
			Title("Credits").
			Options(creditOptions(sc)...).
			Value(&credits),
	}
	if sc == scale.US {
		fields = append(fields, huh.NewSelect[string]().
			Title("Course level").
			Options(
				huh.NewOption("Regular", ""),
				huh.NewOption("AP", string(scale.WeightAP)),
				huh.NewOption("Honours", string(scale.WeightHonours)),
				huh.NewOption("Standard (weighted, no bonus)", string(scale.WeightStandard)),
			).
			Value(&weightType))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(FormTheme())
	if err := form.Run(); err != nil {
		return model.CourseInput{}, err
	}

	parsedCredits, err := strconv.ParseFloat(credits, 64)
	if err != nil {
		return model.CourseInput{}, fmt.Errorf("invalid credits %q: %w", credits, err)
	}
	in := model.CourseInput{
		Name:    strings.TrimSpace(name),
		Grade:   grade,
		Credits: parsedCredits,
	}
	if weightType != "" {
		in.Weighted = true
		in.WeightType = weightType
	}
	return in, nil
}

// RunSemesterForm collects a semester entry interactively.
func RunSemesterForm(defaultScale scale.Scale) (model.SemesterInput, error) {
	var (
		name string
		term string
		sc   = defaultScale.String()
	)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Semester name").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name must not be empty")
				}
				return nil
			}).
			Value(&name),
		huh.NewInput().
			Title("Term (free text, e.g. 2025-1)").
			Value(&term),
		huh.NewSelect[string]().
			Title("Grading scale").
			Options(
				huh.NewOption("US 4.0", scale.US.String()),
				huh.NewOption("Australian 7.0", scale.AU.String()),
			).
			Value(&sc),
	)).WithTheme(FormTheme())
	if err := form.Run(); err != nil {
		return model.SemesterInput{}, err
	}
	return model.SemesterInput{
		Name:  strings.TrimSpace(name),
		Term:  strings.TrimSpace(term),
		Scale: sc,
	}, nil
}

// RunPredictionForm collects an expected future course.
func RunPredictionForm(sc scale.Scale) (model.PredictionCourse, error) {
	var (
		name    string
		grade   string
		credits string
	)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Expected course name").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name must not be empty")
				}
				return nil
			}).
			Value(&name),
		huh.NewSelect[string]().
			Title("Expected grade").
			Options(gradeOptions(sc)...).
			Value(&grade),
		huh.NewSelect[string]().
			Title("Credits").
			Options(creditOptions(sc)...).
			Value(&credits),
	)).WithTheme(FormTheme())
	if err := form.Run(); err != nil {
		return model.PredictionCourse{}, err
	}
	parsedCredits, err := strconv.ParseFloat(credits, 64)
	if err != nil {
		return model.PredictionCourse{}, fmt.Errorf("invalid credits %q: %w", credits, err)
	}
	return model.PredictionCourse{
		Name:          strings.TrimSpace(name),
		ExpectedGrade: grade,
		Credits:       parsedCredits,
	}, nil
}

// RunUpgradeForm asks for purchase confirmation. The actual checkout is
// a stub; confirming simply flips the stored entitlement.
func RunUpgradeForm() (bool, error) {
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Upgrade to premium?").
			Description("Unlocks weighted GPA, multi-semester tracking, prediction, and export.").
			Affirmative("Upgrade").
			Negative("Not now").
			Value(&confirmed),
	)).WithTheme(FormTheme())
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
