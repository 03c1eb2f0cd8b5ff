package engine

import (
	"fmt"
	"time"
)

// StartByResult is the latest day work can start while staying at or under a pace threshold.
type StartByResult struct {
	Name        string `json:"name"`
	StartByDays int    `json:"start_by_days"`
	StartByDate string `json:"start_by_date"`
	Message     string `json:"message"`
}

// StartBy finds the last start delay that keeps the required pace at or under
// crunchThreshold hours per day.
func StartBy(a Assignment, today time.Time, crunchThreshold float64) StartByResult {
	daysLeft := DaysUntil(a.DueDate, today)
	if daysLeft <= 0 {
		return StartByResult{
			Name:        a.Name,
			StartByDays: 0,
			StartByDate: FormatDate(today),
			Message:     "Start immediately — already at deadline.",
		}
	}

	for delay := 0; delay <= daysLeft; delay++ {
		hours := pace(a.EstimatedHours, daysLeft-delay)
		if hours <= crunchThreshold {
			continue
		}
		safeDelay := max(0, delay-1)
		start := FormatDate(addDays(today, safeDelay))
		return StartByResult{
			Name:        a.Name,
			StartByDays: safeDelay,
			StartByDate: start,
			Message:     fmt.Sprintf("Start by %s to avoid %s.", start, UrgencyZone(hours)),
		}
	}

	return StartByResult{
		Name:        a.Name,
		StartByDays: daysLeft,
		StartByDate: FormatDate(a.DueDate),
		Message:     "You can pace this — no Crunch Zone risk.",
	}
}
