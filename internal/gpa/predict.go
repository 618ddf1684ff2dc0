package gpa

import (
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

// Projected blends a known current standing with the GPA expected over a
// list of future courses, weighting each side by its credits. Expected
// courses are always evaluated unweighted.
//
// A nil GPA or credits in the standing means the value was not provided.
// Absent values are never treated as zero: with no expected courses the
// current GPA (or 0) is returned unchanged, and with no usable standing
// the future GPA stands alone.
func Projected(current model.Standing, expected []model.PredictionCourse, sc scale.Scale) float64 {
	if len(expected) == 0 {
		if current.GPA != nil {
			return *current.GPA
		}
		return 0
	}

	courses := make([]model.Course, 0, len(expected))
	for _, p := range expected {
		courses = append(courses, p.AsCourse())
	}
	futureGPA := Calculate(courses, sc, false, scale.Multipliers{})
	futureCredits := TotalCredits(courses)

	if current.GPA != nil && current.Credits != nil && *current.Credits > 0 {
		return (*current.GPA**current.Credits + futureGPA*futureCredits) /
			(*current.Credits + futureCredits)
	}
	return futureGPA
}
