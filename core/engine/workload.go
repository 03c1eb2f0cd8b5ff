package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const barBlock = "█"

// WorkloadEntry is one assignment's share of a projected day.
type WorkloadEntry struct {
	Name       string  `json:"name"`
	DailyHours float64 `json:"daily_hours"`
	DueDate    string  `json:"due_date"`
}

// WorkloadDay is the projected load of one calendar day.
type WorkloadDay struct {
	Date       string          `json:"date"`
	TotalHours float64         `json:"total_hours"`
	Breakdown  []WorkloadEntry `json:"breakdown"`
}

// HoursWindow aggregates a workload projection over a short window.
type HoursWindow struct {
	WindowDays int           `json:"window_days"`
	TotalHours float64       `json:"total_hours"`
	Days       []WorkloadDay `json:"days"`
}

// WorkloadProjection estimates the hours needed on each of the next days days.
// Each day is independent: every assignment not yet overdue on that day spreads its
// whole estimate evenly over its own remaining days as of that day.
func WorkloadProjection(assignments []Assignment, today time.Time, days int) []WorkloadDay {
	projection := make([]WorkloadDay, 0, max(0, days))
	for i := 0; i < days; i++ {
		day := addDays(today, i)
		var total float64
		breakdown := make([]WorkloadEntry, 0, len(assignments))
		for _, a := range assignments {
			left := DaysUntil(a.DueDate, day)
			if left < 0 {
				continue
			}
			hours := pace(a.EstimatedHours, left)
			total += hours
			breakdown = append(breakdown, WorkloadEntry{
				Name:       a.Name,
				DailyHours: round2(hours),
				DueDate:    FormatDate(a.DueDate),
			})
		}
		projection = append(projection, WorkloadDay{
			Date:       FormatDate(day),
			TotalHours: round2(total),
			Breakdown:  breakdown,
		})
	}
	return projection
}

// HoursNextDays sums the projected daily totals over the next windowDays days.
func HoursNextDays(assignments []Assignment, today time.Time, windowDays int) HoursWindow {
	days := WorkloadProjection(assignments, today, windowDays)
	var total float64
	for _, d := range days {
		total += d.TotalHours
	}
	return HoursWindow{
		WindowDays: windowDays,
		TotalHours: round2(total),
		Days:       days,
	}
}

// WorkloadTextBars renders the projection as "date | hours | bar" lines.
// The bar is lossy and meant for humans only.
func WorkloadTextBars(assignments []Assignment, today time.Time, days, blocksPerHour int) []string {
	projection := WorkloadProjection(assignments, today, days)
	lines := make([]string, 0, len(projection))
	for _, d := range projection {
		blocks := int(math.RoundToEven(d.TotalHours * float64(blocksPerHour)))
		lines = append(lines, fmt.Sprintf("%s | %sh | %s", d.Date, formatNumber(d.TotalHours), strings.Repeat(barBlock, max(0, blocks))))
	}
	return lines
}
