package scale

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Scale
		wantErr bool
	}{
		{in: "US", want: US},
		{in: "AU", want: AU},
		{in: "", wantErr: true},
		{in: "uk", wantErr: true},
		{in: "us", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestConfigGradesMatchPoints(t *testing.T) {
	for _, s := range []Scale{US, AU} {
		cfg := Config(s)
		if len(cfg.Grades) != len(cfg.Points) {
			t.Errorf("%s: %d grades but %d point entries", s, len(cfg.Grades), len(cfg.Points))
		}
		for _, g := range cfg.Grades {
			if _, ok := cfg.Points[g]; !ok {
				t.Errorf("%s: grade %q has no point value", s, g)
			}
		}
		// Display order is highest grade first.
		for i := 1; i < len(cfg.Grades); i++ {
			if cfg.Points[cfg.Grades[i]] > cfg.Points[cfg.Grades[i-1]] {
				t.Errorf("%s: grades out of order at %q", s, cfg.Grades[i])
			}
		}
	}
}

func TestConfigMaxima(t *testing.T) {
	us := Config(US)
	if us.Max != 4.0 || us.WeightedMax != 5.0 {
		t.Errorf("US maxima = %v/%v, want 4/5", us.Max, us.WeightedMax)
	}
	au := Config(AU)
	if au.Max != 7.0 || au.WeightedMax != 7.0 {
		t.Errorf("AU maxima = %v/%v, want 7/7", au.Max, au.WeightedMax)
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		scale Scale
		grade string
		want  float64
	}{
		{US, "A", 4.0},
		{US, "A-", 3.7},
		{US, "B+", 3.3},
		{US, "F", 0.0},
		{US, "HD", 0.0}, // unknown symbol on this scale
		{US, "", 0.0},
		{AU, "HD", 7.0},
		{AU, "P", 4.0},
		{AU, "A", 0.0}, // unknown symbol on this scale
	}
	for _, tc := range tests {
		if got := Points(tc.scale, tc.grade); got != tc.want {
			t.Errorf("Points(%s, %q) = %v, want %v", tc.scale, tc.grade, got, tc.want)
		}
	}
}

func TestValidCredits(t *testing.T) {
	if !ValidCredits(US, 3) {
		t.Error("US should accept 3 credits")
	}
	if ValidCredits(US, 10) {
		t.Error("US should reject 10 credits")
	}
	if !ValidCredits(AU, 10) {
		t.Error("AU should accept 10 credits")
	}
	if ValidCredits(AU, 3) {
		t.Error("AU should reject 3 credits")
	}
}

func TestMultipliersBonus(t *testing.T) {
	m := DefaultMultipliers()
	if m.Bonus(WeightAP) != 1.0 {
		t.Errorf("AP bonus = %v, want 1.0", m.Bonus(WeightAP))
	}
	if m.Bonus(WeightHonours) != 0.5 {
		t.Errorf("Honours bonus = %v, want 0.5", m.Bonus(WeightHonours))
	}
	if m.Bonus(WeightStandard) != 0 {
		t.Errorf("Standard bonus = %v, want 0", m.Bonus(WeightStandard))
	}
}

func TestParseWeightType(t *testing.T) {
	if wt, ok := ParseWeightType(""); !ok || wt != WeightStandard {
		t.Errorf("empty weight type = %v/%v, want Standard", wt, ok)
	}
	if _, ok := ParseWeightType("IB"); ok {
		t.Error("unknown weight type should not parse")
	}
}
