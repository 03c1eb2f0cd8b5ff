package engine

import "math"

// Severity buckets the size of a projected grade change.
type Severity string

const (
	SeverityTiny       Severity = "Tiny"
	SeverityNoticeable Severity = "Noticeable"
	SeverityBig        Severity = "Big"
)

// fallbackScore is used for confidence values outside 1..5.
const fallbackScore = 83.0

var confidenceScores = map[int]float64{
	1: 65,
	2: 75,
	3: 83,
	4: 90,
	5: 96,
}

// GPAImpact estimates how one assignment outcome moves the course grade.
type GPAImpact struct {
	Name           string   `json:"name"`
	CurrentGrade   float64  `json:"current_grade"`
	WeightPercent  float64  `json:"weight_percent"`
	PredictedScore float64  `json:"predicted_score"`
	ProjectedGrade float64  `json:"projected_grade"`
	DeltaPoints    float64  `json:"delta_points"` // negative = drop
	Severity       Severity `json:"severity"`
	DropRisk       bool     `json:"drop_risk"`
	Message        string   `json:"message"`
}

// ExpectedScoreFromConfidence maps a 1..5 confidence to an expected score out of 100.
func ExpectedScoreFromConfidence(confidence int) float64 {
	if s, ok := confidenceScores[confidence]; ok {
		return s
	}
	return fallbackScore
}

// ProjectedGrade blends the current grade with an assignment score by the assignment weight:
// current*(1-w) + score*w with w = weight/100, everything clamped to its valid range.
func ProjectedGrade(currentGrade, weightPercent, score float64) float64 {
	w := clamp(weightPercent/100, 0, 1)
	return round2(clamp(currentGrade, 0, 100)*(1-w) + clamp(score, 0, 100)*w)
}

func severityFor(delta float64) Severity {
	switch mag := math.Abs(delta); {
	case mag < 0.5:
		return SeverityTiny
	case mag < 1.5:
		return SeverityNoticeable
	default:
		return SeverityBig
	}
}

// GPAImpactEstimate projects the grade change from a; predictedScore defaults from
// the assignment's confidence when nil.
func GPAImpactEstimate(a Assignment, currentGrade float64, predictedScore *float64) GPAImpact {
	predicted := ExpectedScoreFromConfidence(a.Confidence)
	if predictedScore != nil {
		predicted = *predictedScore
	}

	projected := ProjectedGrade(currentGrade, a.WeightPercent, predicted)
	delta := round2(projected - currentGrade)
	dropRisk := a.WeightPercent >= 20 && a.Confidence <= 2

	msg := "Potential grade change: " + formatNumber(delta) + " points."
	if dropRisk {
		msg += " ⚠️ High weight + low confidence."
	}

	return GPAImpact{
		Name:           a.Name,
		CurrentGrade:   round2(currentGrade),
		WeightPercent:  a.WeightPercent,
		PredictedScore: round2(predicted),
		ProjectedGrade: projected,
		DeltaPoints:    delta,
		Severity:       severityFor(delta),
		DropRisk:       dropRisk,
		Message:        msg,
	}
}

// GPAImpactEstimates runs GPAImpactEstimate for every assignment with confidence-based scores.
func GPAImpactEstimates(assignments []Assignment, currentGrade float64) []GPAImpact {
	impacts := make([]GPAImpact, 0, len(assignments))
	for _, a := range assignments {
		impacts = append(impacts, GPAImpactEstimate(a, currentGrade, nil))
	}
	return impacts
}
