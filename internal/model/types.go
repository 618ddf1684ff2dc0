// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/nvoss/gpacalc/internal/scale"
)

// Course is a single graded unit of study.
type Course struct {
	ID      string
	Name    string
	Grade   string
	Credits float64
	// Weighted and WeightType only take effect on the US scale.
	Weighted   bool
	WeightType scale.WeightType
	CreatedAt  time.Time
}

// Semester groups courses that share one grading scale. The scale is
// fixed at creation; every course in Courses carries grades from it.
type Semester struct {
	ID        string
	Name      string
	Term      string
	Scale     scale.Scale
	Courses   []Course
	CreatedAt time.Time
}

// PredictionCourse is a hypothetical future course used for GPA
// projection. It is never stored alongside real courses.
type PredictionCourse struct {
	Name          string
	ExpectedGrade string
	Credits       float64
}

// AsCourse converts a prediction into a Course so the regular GPA
// calculation can consume it. Predictions are always unweighted.
func (p PredictionCourse) AsCourse() Course {
	return Course{
		Name:    p.Name,
		Grade:   p.ExpectedGrade,
		Credits: p.Credits,
	}
}

// Standing is a user-entered current GPA baseline for prediction.
// Nil fields mean "not provided", which is distinct from zero.
type Standing struct {
	GPA     *float64
	Credits *float64
}

// Profile scopes stored data to one local user identity.
type Profile struct {
	ID        string
	Name      string
	Premium   bool
	CreatedAt time.Time
}

// GuestProfileName is the implicit profile used before any sign-in.
const GuestProfileName = "guest"
