package domain

import "testing"

func TestClassifyRiskScoreBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  RiskLevel
	}{
		{-10, RiskLow},
		{0, RiskLow},
		{24, RiskLow},
		{25, RiskMedium},
		{49, RiskMedium},
		{50, RiskHigh},
		{74, RiskHigh},
		{75, RiskSevere},
		{100, RiskSevere},
		{250, RiskSevere},
	}
	for _, c := range cases {
		if got := ClassifyRiskScore(c.score); got != c.want {
			t.Errorf("ClassifyRiskScore(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestRiskLevelValid(t *testing.T) {
	for _, l := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskSevere} {
		if !l.Valid() {
			t.Errorf("%s should be valid", l)
		}
	}
	if RiskLevel("Critical").Valid() {
		t.Error("unknown level should not be valid")
	}
}
