package domain

// RiskLevel is one of four ordered severity tiers.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
	RiskSevere RiskLevel = "Severe"
)

// Valid reports whether l is one of the known risk levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskSevere:
		return true
	}
	return false
}

// Risk tier thresholds. A score at or above a threshold falls into that tier.
const (
	severeThreshold = 75
	highThreshold   = 50
	mediumThreshold = 25
)

// ClassifyRiskScore maps a numeric assessment score to a risk tier. Total over
// all integers: scores above 100 are Severe, negative scores are Low.
func ClassifyRiskScore(score int) RiskLevel {
	switch {
	case score >= severeThreshold:
		return RiskSevere
	case score >= highThreshold:
		return RiskHigh
	case score >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
