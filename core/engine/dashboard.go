package engine

import (
	"fmt"
	"time"
)

var (
	zoneEmoji = map[Zone]string{
		ZoneSafe:   "🌿",
		ZoneSteady: "🚶‍♂️",
		ZoneCrunch: "⏳",
		ZonePanic:  "🚨",
	}
	riskEmoji = map[RiskLabel]string{
		RiskLow:    "✅",
		RiskMedium: "⚠️",
		RiskHigh:   "🔥",
	}
)

// DashboardItem is a ranked assignment enriched with its start-by date and headline.
type DashboardItem struct {
	DangerResult
	StartByDate    string `json:"start_by_date"`
	StartByMessage string `json:"start_by_message"`
	Headline       string `json:"headline"`
}

// Dashboard is the UI-ready summary: the most dangerous assignments plus the stress forecast.
type Dashboard struct {
	Top            []DashboardItem      `json:"top"`
	Headlines      []string             `json:"headlines"`
	StressForecast StressForecastResult `json:"stress_forecast"`
}

// Headline renders the one-line dashboard summary of a ranked assignment.
func Headline(d DangerResult, startByDate string) string {
	hp := "N/A"
	if d.HoursPerDay != nil {
		hp = formatNumber(*d.HoursPerDay) + " hrs/day"
	}
	return fmt.Sprintf("%s %s %s | Danger %s | %s (%s) | %s (%s) | Start-by: %s",
		zoneEmoji[d.Zone], riskEmoji[d.RiskLabel], d.Name,
		formatNumber(d.DangerScore),
		d.RiskLabel, formatNumber(d.RiskScore),
		d.Zone, hp,
		startByDate,
	)
}

// DashboardSummary takes the top three assignments by danger score, joins each to its
// start-by date and headline, and bundles the five-day stress forecast.
func DashboardSummary(assignments []Assignment, today time.Time) Dashboard {
	ranked := rankByDanger(assignments, today)
	if len(ranked) > DefaultDashboardTopSize {
		ranked = ranked[:DefaultDashboardTopSize]
	}

	top := make([]DashboardItem, 0, len(ranked))
	headlines := make([]string, 0, len(ranked))
	for _, r := range ranked {
		sb := StartBy(assignments[r.index], today, DefaultCrunchThreshold)
		headline := Headline(r.DangerResult, sb.StartByDate)
		top = append(top, DashboardItem{
			DangerResult:   r.DangerResult,
			StartByDate:    sb.StartByDate,
			StartByMessage: sb.Message,
			Headline:       headline,
		})
		headlines = append(headlines, headline)
	}

	return Dashboard{
		Top:            top,
		Headlines:      headlines,
		StressForecast: StressForecast(assignments, today, DefaultStressWindow),
	}
}

// DaysLeftText describes days left in words: "3 days left", "Due today", "1 day overdue".
func DaysLeftText(daysLeft int) string {
	plural := func(n int) string {
		if n == 1 {
			return "day"
		}
		return "days"
	}
	switch {
	case daysLeft > 0:
		return fmt.Sprintf("%d %s left", daysLeft, plural(daysLeft))
	case daysLeft == 0:
		return "Due today"
	default:
		return fmt.Sprintf("%d %s overdue", -daysLeft, plural(-daysLeft))
	}
}

// ListLine renders one row of the danger-sorted assignment listing.
func ListLine(d DangerResult) string {
	hp := "None"
	if d.HoursPerDay != nil {
		hp = formatNumber(*d.HoursPerDay)
	}
	return fmt.Sprintf("%s %s %s | %s | Danger %s | %s (%s) | %s (%s hrs/day)",
		zoneEmoji[d.Zone], riskEmoji[d.RiskLabel], d.Name,
		DaysLeftText(d.DaysLeft),
		formatNumber(d.DangerScore),
		d.RiskLabel, formatNumber(d.RiskScore),
		d.Zone, hp,
	)
}
