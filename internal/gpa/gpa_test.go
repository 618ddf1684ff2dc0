package gpa

import (
	"math"
	"testing"

	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func course(grade string, credits float64) model.Course {
	return model.Course{Name: grade, Grade: grade, Credits: credits}
}

func weightedCourse(grade string, credits float64, wt scale.WeightType) model.Course {
	return model.Course{Name: grade, Grade: grade, Credits: credits, Weighted: true, WeightType: wt}
}

func TestCalculateEmpty(t *testing.T) {
	for _, sc := range []scale.Scale{scale.US, scale.AU} {
		if got := Calculate(nil, sc, false, scale.DefaultMultipliers()); got != 0 {
			t.Errorf("Calculate(nil, %s) = %v, want 0", sc, got)
		}
		if got := Calculate(nil, sc, true, scale.DefaultMultipliers()); got != 0 {
			t.Errorf("Calculate(nil, %s, weighted) = %v, want 0", sc, got)
		}
	}
}

func TestCalculateBasic(t *testing.T) {
	tests := []struct {
		name    string
		courses []model.Course
		scale   scale.Scale
		want    float64
	}{
		{
			name:    "US two courses",
			courses: []model.Course{course("A", 3), course("B", 3)},
			scale:   scale.US,
			want:    3.5,
		},
		{
			name:    "AU two courses",
			courses: []model.Course{course("HD", 10), course("P", 10)},
			scale:   scale.AU,
			want:    5.5,
		},
		{
			name:    "credit weighting matters",
			courses: []model.Course{course("A", 1), course("F", 3)},
			scale:   scale.US,
			want:    1.0,
		},
		{
			name:    "fractional grade points",
			courses: []model.Course{course("A-", 3), course("B+", 3)},
			scale:   scale.US,
			want:    3.5,
		},
		{
			name:    "unknown grade counts as zero",
			courses: []model.Course{course("A", 3), course("Z", 3)},
			scale:   scale.US,
			want:    2.0,
		},
		{
			name:    "zero total credits",
			courses: []model.Course{course("A", 0)},
			scale:   scale.US,
			want:    0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.courses, tc.scale, false, scale.DefaultMultipliers())
			if !almostEqual(got, tc.want) {
				t.Fatalf("Calculate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCalculateSameGradeAnyCredits(t *testing.T) {
	// A weighted average of identical values is that value, whatever the
	// individual credit weights are.
	for _, sc := range []scale.Scale{scale.US, scale.AU} {
		cfg := scale.Config(sc)
		for _, g := range cfg.Grades {
			courses := []model.Course{course(g, 1), course(g, 4), course(g, 6)}
			got := Calculate(courses, sc, false, scale.DefaultMultipliers())
			if !almostEqual(got, cfg.Points[g]) {
				t.Errorf("%s %q: got %v, want %v", sc, g, got, cfg.Points[g])
			}
		}
	}
}

func TestCalculateOrderInvariant(t *testing.T) {
	a := []model.Course{course("A", 3), course("B-", 2), course("C+", 5), course("F", 1)}
	b := []model.Course{a[3], a[1], a[0], a[2]}
	ga := Calculate(a, scale.US, false, scale.DefaultMultipliers())
	gb := Calculate(b, scale.US, false, scale.DefaultMultipliers())
	if !almostEqual(ga, gb) {
		t.Fatalf("order changed result: %v vs %v", ga, gb)
	}
}

func TestCalculateWeighting(t *testing.T) {
	m := scale.DefaultMultipliers()
	tests := []struct {
		name         string
		courses      []model.Course
		scale        scale.Scale
		useWeighting bool
		want         float64
	}{
		{
			name:         "AP bonus applied",
			courses:      []model.Course{weightedCourse("A", 4, scale.WeightAP)},
			scale:        scale.US,
			useWeighting: true,
			want:         5.0,
		},
		{
			name:         "Honours bonus applied",
			courses:      []model.Course{weightedCourse("B", 3, scale.WeightHonours)},
			scale:        scale.US,
			useWeighting: true,
			want:         3.5,
		},
		{
			name:         "Standard contributes nothing",
			courses:      []model.Course{weightedCourse("B", 3, scale.WeightStandard)},
			scale:        scale.US,
			useWeighting: true,
			want:         3.0,
		},
		{
			name:         "flag off ignores course opt-in",
			courses:      []model.Course{weightedCourse("A", 4, scale.WeightAP)},
			scale:        scale.US,
			useWeighting: false,
			want:         4.0,
		},
		{
			name:         "unweighted course ignores flag",
			courses:      []model.Course{course("A", 4)},
			scale:        scale.US,
			useWeighting: true,
			want:         4.0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.courses, tc.scale, tc.useWeighting, m)
			if !almostEqual(got, tc.want) {
				t.Fatalf("Calculate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCalculateWeightingNoOpOnAU(t *testing.T) {
	// Weighting fields are only active on the US scale; flipping the flag
	// for an AU list must change nothing, even with weighted fields set.
	courses := []model.Course{
		weightedCourse("HD", 10, scale.WeightAP),
		weightedCourse("C", 20, scale.WeightHonours),
	}
	m := scale.DefaultMultipliers()
	off := Calculate(courses, scale.AU, false, m)
	on := Calculate(courses, scale.AU, true, m)
	if !almostEqual(off, on) {
		t.Fatalf("weighting changed AU result: %v vs %v", off, on)
	}
}

func TestCalculateCumulative(t *testing.T) {
	semesters := []model.Semester{
		{Scale: scale.US, Courses: []model.Course{course("A", 3)}},
		{Scale: scale.US, Courses: []model.Course{course("B", 3)}},
	}
	got := CalculateCumulative(semesters, false, scale.DefaultMultipliers())
	if !almostEqual(got, 3.5) {
		t.Fatalf("CalculateCumulative = %v, want 3.5", got)
	}

	// Matches the flattened single-list computation.
	flat := Calculate(Flatten(semesters), semesters[0].Scale, false, scale.DefaultMultipliers())
	if !almostEqual(got, flat) {
		t.Fatalf("cumulative %v != flattened %v", got, flat)
	}
}

func TestCalculateCumulativeEmpty(t *testing.T) {
	if got := CalculateCumulative(nil, false, scale.DefaultMultipliers()); got != 0 {
		t.Fatalf("CalculateCumulative(nil) = %v, want 0", got)
	}
	empty := []model.Semester{{Scale: scale.US}, {Scale: scale.US}}
	if got := CalculateCumulative(empty, false, scale.DefaultMultipliers()); got != 0 {
		t.Fatalf("CalculateCumulative(no courses) = %v, want 0", got)
	}
}

func TestFlattenOrder(t *testing.T) {
	semesters := []model.Semester{
		{Scale: scale.US, Courses: []model.Course{course("A", 3), course("B", 3)}},
		{Scale: scale.US, Courses: []model.Course{course("C", 3)}},
	}
	flat := Flatten(semesters)
	if len(flat) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(flat))
	}
	want := []string{"A", "B", "C"}
	for i, g := range want {
		if flat[i].Grade != g {
			t.Fatalf("position %d: got %q, want %q", i, flat[i].Grade, g)
		}
	}
}

func TestTotalCredits(t *testing.T) {
	courses := []model.Course{course("A", 3), course("B", 4.5)}
	if got := TotalCredits(courses); !almostEqual(got, 7.5) {
		t.Fatalf("TotalCredits = %v, want 7.5", got)
	}
	if got := TotalCredits(nil); got != 0 {
		t.Fatalf("TotalCredits(nil) = %v, want 0", got)
	}
}
