package engine

import "time"

// Zone names the daily pace an assignment demands.
type Zone string

const (
	ZoneOverdue Zone = "Overdue"
	ZoneSafe    Zone = "Safe"
	ZoneSteady  Zone = "Steady"
	ZoneCrunch  Zone = "Crunch Zone"
	ZonePanic   Zone = "Panic Zone"
)

// UrgencyResult is the required pace if work starts StartDelayDays from today.
// HoursPerDay is nil when the delayed start is already past the due date.
type UrgencyResult struct {
	Name               string   `json:"name"`
	StartDelayDays     int      `json:"start_delay_days"`
	DaysLeftAfterDelay int      `json:"days_left_after_delay"`
	HoursPerDay        *float64 `json:"hours_per_day"`
	Zone               Zone     `json:"zone"`
}

// UrgencyZone buckets a required hours-per-day pace.
func UrgencyZone(hoursPerDay float64) Zone {
	switch {
	case hoursPerDay <= 1:
		return ZoneSafe
	case hoursPerDay <= 2.5:
		return ZoneSteady
	case hoursPerDay <= 4:
		return ZoneCrunch
	default:
		return ZonePanic
	}
}

// pace spreads the estimate over the remaining days; due today counts as one day.
func pace(estimatedHours float64, daysLeft int) float64 {
	return estimatedHours / float64(max(1, daysLeft))
}

// CalcUrgency computes the pace needed when starting startDelayDays from today.
func CalcUrgency(a Assignment, today time.Time, startDelayDays int) UrgencyResult {
	left := DaysUntil(a.DueDate, today) - startDelayDays
	res := UrgencyResult{
		Name:               a.Name,
		StartDelayDays:     startDelayDays,
		DaysLeftAfterDelay: left,
	}
	if left < 0 {
		res.Zone = ZoneOverdue
		return res
	}

	hours := pace(a.EstimatedHours, left)
	rounded := round2(hours)
	res.HoursPerDay = &rounded
	res.Zone = UrgencyZone(hours)
	return res
}

// UrgencyCurve projects the pace for every start delay from 0 to maxDelayDays inclusive.
func UrgencyCurve(a Assignment, today time.Time, maxDelayDays int) []UrgencyResult {
	curve := make([]UrgencyResult, 0, max(0, maxDelayDays+1))
	for delay := 0; delay <= maxDelayDays; delay++ {
		curve = append(curve, CalcUrgency(a, today, delay))
	}
	return curve
}
