package engine

import (
	"sort"
	"time"
)

// RiskLabel buckets a risk score.
type RiskLabel string

const (
	RiskLow    RiskLabel = "Low"
	RiskMedium RiskLabel = "Medium"
	RiskHigh   RiskLabel = "High"
)

// RiskResult is the static risk of one assignment: how consequential and how
// imminent it is, ignoring pacing.
type RiskResult struct {
	Name      string    `json:"name"`
	DaysLeft  int       `json:"days_left"`
	RiskScore float64   `json:"risk_score"`
	RiskLabel RiskLabel `json:"risk_label"`
}

// soonness maps days left to a 2..10 imminence score.
func soonness(daysLeft int) float64 {
	switch {
	case daysLeft <= 1:
		return 10
	case daysLeft <= 3:
		return 8
	case daysLeft <= 7:
		return 6
	case daysLeft <= 14:
		return 4
	default:
		return 2
	}
}

func labelForRisk(risk float64) RiskLabel {
	switch {
	case risk < 3.5:
		return RiskLow
	case risk < 5.5:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// CalcRisk scores an assignment as 0.4*soon + 0.4*weight/10 + 0.2*(6-confidence).
func CalcRisk(a Assignment, today time.Time) RiskResult {
	daysLeft := DaysUntil(a.DueDate, today)
	doubt := float64(6 - a.Confidence)
	risk := 0.4*soonness(daysLeft) + 0.4*(a.WeightPercent/10) + 0.2*doubt

	return RiskResult{
		Name:      a.Name,
		DaysLeft:  daysLeft,
		RiskScore: round2(risk),
		RiskLabel: labelForRisk(risk),
	}
}

// RankByRisk returns risk results sorted from highest to lowest score.
// Ties keep input order.
func RankByRisk(assignments []Assignment, today time.Time) []RiskResult {
	scored := make([]RiskResult, 0, len(assignments))
	for _, a := range assignments {
		scored = append(scored, CalcRisk(a, today))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore > scored[j].RiskScore
	})
	return scored
}
