package engine

import (
	"math"
	"strings"
)

// Assessment kinds understood by SuggestEstimatedHours.
const (
	KindQuiz    = "quiz"
	KindTest    = "test"
	KindMidterm = "midterm"
	KindFinal   = "final"
)

var (
	baseHoursByKind = map[string]float64{
		KindQuiz:    1.5,
		KindTest:    5,
		KindMidterm: 10,
		KindFinal:   14,
	}
	confidenceAdjust = map[int]float64{
		1: 4,
		2: 2,
		3: 0,
		4: -1,
		5: -2,
	}
)

// SuggestEstimatedHours proposes a starting estimate of prep hours for an assessment.
// Unknown kinds are treated as a test, unknown confidence values get no adjustment.
func SuggestEstimatedHours(kind string, confidence int) float64 {
	base, ok := baseHoursByKind[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		base = baseHoursByKind[KindTest]
	}
	hours := math.Round((base+confidenceAdjust[confidence])*10) / 10
	return math.Max(0.5, hours)
}
