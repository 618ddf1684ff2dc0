package scale

// WeightType classifies an advanced course for weighting purposes.
// Weighting is only meaningful on the US scale.
type WeightType string

const (
	// WeightAP marks an Advanced Placement course.
	WeightAP WeightType = "AP"
	// WeightHonours marks an Honours course.
	WeightHonours WeightType = "Honours"
	// WeightStandard marks a regular course; it contributes no bonus.
	WeightStandard WeightType = "Standard"
)

// ParseWeightType converts a string into a WeightType. The empty string
// maps to WeightStandard.
func ParseWeightType(s string) (WeightType, bool) {
	switch WeightType(s) {
	case WeightAP:
		return WeightAP, true
	case WeightHonours:
		return WeightHonours, true
	case WeightStandard, "":
		return WeightStandard, true
	}
	return "", false
}

// Multipliers holds the per-type bonus added to a weighted course's base
// grade point.
type Multipliers struct {
	AP       float64
	Honours  float64
	Standard float64
}

// DefaultMultipliers returns the standard bonus table.
func DefaultMultipliers() Multipliers {
	return Multipliers{AP: 1.0, Honours: 0.5, Standard: 0}
}

// Bonus returns the additive bonus for a weight type.
func (m Multipliers) Bonus(wt WeightType) float64 {
	switch wt {
	case WeightAP:
		return m.AP
	case WeightHonours:
		return m.Honours
	case WeightStandard:
		return m.Standard
	}
	return 0
}
