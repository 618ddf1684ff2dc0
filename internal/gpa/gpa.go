// Package gpa contains the grade-point average calculations: per-list
// averages, cumulative aggregation across semesters, the weighted display
// ceiling, and projection from expected future courses.
package gpa

import (
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

// Calculate folds a course list into a credit-weighted grade-point
// average. With useWeighting set, a course flagged as weighted receives
// the multiplier bonus for its weight type on top of its base grade
// point; this only applies on the US scale. Unknown grade symbols count
// as 0 points. An empty list, or one whose credits sum to 0, yields 0.
func Calculate(courses []model.Course, sc scale.Scale, useWeighting bool, m scale.Multipliers) float64 {
	if len(courses) == 0 {
		return 0
	}
	var totalPoints, totalCredits float64
	for _, c := range courses {
		point := scale.Points(sc, c.Grade)
		if useWeighting && c.Weighted && sc == scale.US {
			point += m.Bonus(c.WeightType)
		}
		totalPoints += point * c.Credits
		totalCredits += c.Credits
	}
	if totalCredits <= 0 {
		return 0
	}
	return totalPoints / totalCredits
}

// CalculateCumulative computes the GPA across every course of the given
// semesters, flattened in order. The scale is taken from the first
// semester; callers must not mix scales within one call (the store only
// ever loads semesters of a single scale together). An empty semester
// list yields 0.
func CalculateCumulative(semesters []model.Semester, useWeighting bool, m scale.Multipliers) float64 {
	if len(semesters) == 0 {
		return 0
	}
	return Calculate(Flatten(semesters), semesters[0].Scale, useWeighting, m)
}

// Flatten collects every course across the semesters in semester order,
// preserving course order within each.
func Flatten(semesters []model.Semester) []model.Course {
	var n int
	for _, s := range semesters {
		n += len(s.Courses)
	}
	out := make([]model.Course, 0, n)
	for _, s := range semesters {
		out = append(out, s.Courses...)
	}
	return out
}

// TotalCredits sums the credit values of the courses.
func TotalCredits(courses []model.Course) float64 {
	var total float64
	for _, c := range courses {
		total += c.Credits
	}
	return total
}
