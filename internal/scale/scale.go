// Package scale defines the supported grading scales and their static
// configuration: valid grade symbols, grade-point values, GPA ceilings,
// and credit options.
package scale

import "fmt"

// Scale identifies a grading system. The type is closed: only the two
// declared constants are valid values.
type Scale string

const (
	// US is the American 4.0 letter-grade scale.
	US Scale = "US"
	// AU is the Australian 7.0 scale.
	AU Scale = "AU"
)

// Parse converts a string into a Scale.
func Parse(s string) (Scale, error) {
	switch Scale(s) {
	case US:
		return US, nil
	case AU:
		return AU, nil
	}
	return "", fmt.Errorf("unknown scale %q (valid: US, AU)", s)
}

// String implements fmt.Stringer.
func (s Scale) String() string {
	return string(s)
}

// ScaleConfig describes one grading scale. All fields are static; callers
// must not mutate the returned slices or maps.
type ScaleConfig struct {
	// Grades lists the valid symbols in display order, highest grade first.
	Grades []string
	// Points maps each grade symbol to its unweighted grade-point value.
	Points map[string]float64
	// Max is the highest achievable unweighted GPA.
	Max float64
	// WeightedMax is the display ceiling when weighting is in effect.
	WeightedMax float64
	// CreditOptions enumerates the credit values a course may carry.
	CreditOptions []float64
}

var usConfig = ScaleConfig{
	Grades: []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "F"},
	Points: map[string]float64{
		"A":  4.0,
		"A-": 3.7,
		"B+": 3.3,
		"B":  3.0,
		"B-": 2.7,
		"C+": 2.3,
		"C":  2.0,
		"C-": 1.7,
		"D+": 1.3,
		"D":  1.0,
		"D-": 0.7,
		"F":  0.0,
	},
	Max:           4.0,
	WeightedMax:   5.0,
	CreditOptions: []float64{1, 2, 3, 4, 5, 6},
}

// AU courses never weight, so the weighted ceiling equals the regular max.
var auConfig = ScaleConfig{
	Grades: []string{"HD", "D", "C", "P", "F"},
	Points: map[string]float64{
		"HD": 7.0,
		"D":  6.0,
		"C":  5.0,
		"P":  4.0,
		"F":  0.0,
	},
	Max:           7.0,
	WeightedMax:   7.0,
	CreditOptions: []float64{10, 20},
}

// Config returns the static configuration for a scale.
func Config(s Scale) ScaleConfig {
	switch s {
	case AU:
		return auConfig
	default:
		return usConfig
	}
}

// Points returns the unweighted grade-point value for a grade symbol.
// Unknown symbols resolve to 0 rather than an error; rejecting bad input
// is the entry form's job.
func Points(s Scale, grade string) float64 {
	return Config(s).Points[grade]
}

// ValidGrade reports whether grade is a symbol of the scale.
func ValidGrade(s Scale, grade string) bool {
	_, ok := Config(s).Points[grade]
	return ok
}

// ValidCredits reports whether credits is one of the scale's enumerated
// credit options.
func ValidCredits(s Scale, credits float64) bool {
	for _, c := range Config(s).CreditOptions {
		if c == credits {
			return true
		}
	}
	return false
}
