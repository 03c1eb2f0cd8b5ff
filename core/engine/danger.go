package engine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DangerResult merges the static risk and the zero-delay urgency of an assignment.
type DangerResult struct {
	Name        string    `json:"name"`
	DaysLeft    int       `json:"days_left"`
	RiskScore   float64   `json:"risk_score"`
	RiskLabel   RiskLabel `json:"risk_label"`
	HoursPerDay *float64  `json:"hours_per_day"`
	Zone        Zone      `json:"zone"`
	DangerScore float64   `json:"danger_score"`
}

// rankedDanger remembers where a ranked result came from, since names need not be unique.
type rankedDanger struct {
	DangerResult
	index int
}

func dangerScore(r RiskResult, u UrgencyResult) float64 {
	urgencyScaled := 10.0
	if u.HoursPerDay != nil {
		urgencyScaled = math.Min(5, *u.HoursPerDay) * 2
	}
	return round2(0.7*r.RiskScore + 0.3*urgencyScaled)
}

// DangerScore blends risk (70%) and immediate urgency (30%) into a 0..10 score.
func DangerScore(a Assignment, today time.Time) float64 {
	return dangerScore(CalcRisk(a, today), CalcUrgency(a, today, 0))
}

func calcDanger(a Assignment, today time.Time) DangerResult {
	r := CalcRisk(a, today)
	u := CalcUrgency(a, today, 0)
	return DangerResult{
		Name:        a.Name,
		DaysLeft:    r.DaysLeft,
		RiskScore:   r.RiskScore,
		RiskLabel:   r.RiskLabel,
		HoursPerDay: u.HoursPerDay,
		Zone:        u.Zone,
		DangerScore: dangerScore(r, u),
	}
}

func rankByDanger(assignments []Assignment, today time.Time) []rankedDanger {
	ranked := make([]rankedDanger, 0, len(assignments))
	for i, a := range assignments {
		ranked = append(ranked, rankedDanger{DangerResult: calcDanger(a, today), index: i})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DangerScore > ranked[j].DangerScore
	})
	return ranked
}

// RankByDanger returns one merged record per assignment, most dangerous first.
// Ties keep input order.
func RankByDanger(assignments []Assignment, today time.Time) []DangerResult {
	ranked := rankByDanger(assignments, today)
	results := make([]DangerResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, r.DangerResult)
	}
	return results
}

// StressForecastResult lists the high-risk assignments due inside a window.
type StressForecastResult struct {
	WindowDays    int      `json:"window_days"`
	HighRiskCount int      `json:"high_risk_count"`
	HighRiskNames []string `json:"high_risk_names"`
	Message       string   `json:"message"`
}

// StressForecast counts High-risk assignments due within the next windowDays days.
func StressForecast(assignments []Assignment, today time.Time, windowDays int) StressForecastResult {
	names := make([]string, 0)
	for _, a := range assignments {
		r := CalcRisk(a, today)
		if r.DaysLeft >= 0 && r.DaysLeft <= windowDays && r.RiskLabel == RiskHigh {
			names = append(names, a.Name)
		}
	}

	word := "assignments"
	if len(names) == 1 {
		word = "assignment"
	}
	return StressForecastResult{
		WindowDays:    windowDays,
		HighRiskCount: len(names),
		HighRiskNames: names,
		Message:       fmt.Sprintf("You have %d high-risk %s in the next %d days.", len(names), word, windowDays),
	}
}

// CrunchForecastResult lists assignments inside a window that already demand a
// Crunch or Panic pace.
type CrunchForecastResult struct {
	WindowDays         int      `json:"window_days"`
	CrunchOrPanicCount int      `json:"crunch_or_panic_count"`
	Names              []string `json:"names"`
	Message            string   `json:"message"`
}

// CrunchForecast counts assignments due within windowDays whose zero-delay zone is
// Crunch Zone or Panic Zone.
func CrunchForecast(assignments []Assignment, today time.Time, windowDays int) CrunchForecastResult {
	names := make([]string, 0)
	for _, a := range assignments {
		left := DaysUntil(a.DueDate, today)
		if left < 0 || left > windowDays {
			continue
		}
		if z := CalcUrgency(a, today, 0).Zone; z == ZoneCrunch || z == ZonePanic {
			names = append(names, a.Name)
		}
	}
	return CrunchForecastResult{
		WindowDays:         windowDays,
		CrunchOrPanicCount: len(names),
		Names:              names,
		Message:            fmt.Sprintf("You have %d Crunch/Panic assignments in the next %d days.", len(names), windowDays),
	}
}
