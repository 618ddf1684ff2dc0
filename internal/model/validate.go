package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nvoss/gpacalc/internal/scale"
)

var validate = validator.New()

// CourseInput carries user-entered course fields before a Course is
// created. Validation happens here so the aggregation functions can stay
// permissive.
type CourseInput struct {
	Name       string  `validate:"required"`
	Grade      string  `validate:"required"`
	Credits    float64 `validate:"gt=0"`
	Weighted   bool
	WeightType string
}

// SemesterInput carries user-entered semester fields.
type SemesterInput struct {
	Name  string `validate:"required"`
	Term  string
	Scale string `validate:"required"`
}

// ValidateCourseInput checks a course entry against its owning scale:
// non-empty trimmed name, a grade symbol of the scale, credits drawn from
// the scale's enumerated options, and a known weight type.
func ValidateCourseInput(in CourseInput, sc scale.Scale) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid course: %w", err)
	}
	if !scale.ValidGrade(sc, in.Grade) {
		return fmt.Errorf("invalid course: grade %q is not valid on the %s scale", in.Grade, sc)
	}
	if !scale.ValidCredits(sc, in.Credits) {
		return fmt.Errorf("invalid course: %g credits is not a valid option on the %s scale", in.Credits, sc)
	}
	if _, ok := scale.ParseWeightType(in.WeightType); !ok {
		return fmt.Errorf("invalid course: unknown weight type %q", in.WeightType)
	}
	return nil
}

// ValidateSemesterInput checks a semester entry.
func ValidateSemesterInput(in SemesterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid semester: %w", err)
	}
	if _, err := scale.Parse(in.Scale); err != nil {
		return fmt.Errorf("invalid semester: %w", err)
	}
	return nil
}
