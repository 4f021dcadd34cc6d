package domain

import (
	"math"
	"strings"
	"time"
)

type ProgressLevel string

const (
	ProgressSuccess ProgressLevel = "success"
	ProgressWarning ProgressLevel = "warning"
	ProgressDanger  ProgressLevel = "danger"
)

type ProgressThresholds struct {
	Warning float64
	Danger  float64
}

var (
	PortalThresholds     = ProgressThresholds{Warning: 60, Danger: 85}
	StatusPageThresholds = ProgressThresholds{Warning: 50, Danger: 80}
)

var sheetDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseSheetDate parses the date formats the sheet emits. Dates without a
// zone are read as UTC.
func ParseSheetDate(raw string) (time.Time, bool) {
	return ParseSheetDateIn(raw, time.UTC)
}

// ParseSheetDateIn reads zone-less dates as local wall time in loc.
func ParseSheetDateIn(raw string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range sheetDateLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, loc)
		if err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// Progress returns how far now is between start and end, in percent. Sheet
// dates are read in now's location.
func Progress(start, end string, now time.Time) float64 {
	startAt, okStart := ParseSheetDateIn(start, now.Location())
	endAt, okEnd := ParseSheetDateIn(end, now.Location())
	if !okStart || !okEnd || !endAt.After(startAt) {
		return 0
	}

	total := endAt.Sub(startAt).Hours()
	elapsed := now.Sub(startAt).Hours()

	return clampPercent(elapsed / total * 100)
}

func LevelFor(percent float64, thresholds ProgressThresholds) ProgressLevel {
	switch {
	case percent > thresholds.Danger:
		return ProgressDanger
	case percent > thresholds.Warning:
		return ProgressWarning
	default:
		return ProgressSuccess
	}
}

// DaysRemaining is zero when dates are unusable or the period is over.
func DaysRemaining(start, end string, now time.Time) int {
	startAt, okStart := ParseSheetDateIn(start, now.Location())
	endAt, okEnd := ParseSheetDateIn(end, now.Location())
	if !okStart || !okEnd {
		return 0
	}

	total := endAt.Sub(startAt).Hours() / 24
	elapsed := now.Sub(startAt).Hours() / 24
	remaining := int(math.Round(total - elapsed))
	if remaining < 0 {
		return 0
	}

	return remaining
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
