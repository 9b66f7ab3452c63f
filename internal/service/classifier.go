package service

import "github.com/surgeproject/surge/internal/domain"

// Classifier maps a congestion score to a discrete level. It is pure and
// total: thresholds are fixed at construction and Classify touches no state.
type Classifier struct {
	lowMax    float64
	mediumMax float64
}

// NewClassifier constructs a Classifier. Scores below lowMax classify as
// LOW, scores in [lowMax, mediumMax) as MEDIUM, and mediumMax and above as
// HIGH. Callers must ensure mediumMax > lowMax (config validation does).
func NewClassifier(lowMax, mediumMax float64) *Classifier {
	return &Classifier{lowMax: lowMax, mediumMax: mediumMax}
}

// Classify returns the congestion level for score.
func (c *Classifier) Classify(score float64) domain.CongestionLevel {
	switch {
	case score < c.lowMax:
		return domain.CongestionLow
	case score < c.mediumMax:
		return domain.CongestionMedium
	default:
		return domain.CongestionHigh
	}
}
