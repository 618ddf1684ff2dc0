package gpa

import (
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

// WeightedCap resolves the display ceiling to pair with a weighted GPA.
// The ceiling tracks the highest bonus actually present in the course
// set: any AP course raises it to the scale's weighted maximum, Honours
// courses alone raise it by the Honours bonus, and with no weighted
// courses it stays at the unweighted maximum. This keeps the denominator
// honest when only smaller bonuses are in play.
func WeightedCap(courses []model.Course, sc scale.Scale, m scale.Multipliers) float64 {
	cfg := scale.Config(sc)
	if sc != scale.US {
		return cfg.Max
	}
	hasHonours := false
	for _, c := range courses {
		if !c.Weighted {
			continue
		}
		switch c.WeightType {
		case scale.WeightAP:
			return cfg.WeightedMax
		case scale.WeightHonours:
			hasHonours = true
		}
	}
	if hasHonours {
		return cfg.Max + m.Honours
	}
	return cfg.Max
}
