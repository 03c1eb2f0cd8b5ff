// Package engine implements the StudentOS workload scoring engine.
// Every function is a pure computation over a snapshot of assignments and a
// reference date: no I/O, no shared state, identical inputs give identical outputs.
package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format of every calendar date crossing the engine boundary.
const DateLayout = "2006-01-02"

// Defaults used by callers that do not pass explicit parameters.
const (
	DefaultCurveMaxDelay    = 3
	DefaultStressWindow     = 5
	DefaultCrunchThreshold  = 2.5
	DefaultProjectionDays   = 7
	DefaultHoursWindow      = 3
	DefaultBlocksPerHour    = 2
	DefaultDashboardTopSize = 3
)

// ParseDate parses a YYYY-MM-DD string into a calendar date (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// Day drops the time-of-day part of t, keeping its calendar date as seen in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of calendar days from today to due.
// Zero means due today, negative means overdue.
func DaysUntil(due, today time.Time) int {
	return int(Day(due).Sub(Day(today)) / (24 * time.Hour))
}

func addDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// round2 rounds to 2 decimals, halves to even.
func round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// formatNumber prints a float the way the dashboard strings expect: shortest
// representation, always with a fractional part ("6.0", "2.25").
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
