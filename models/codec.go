package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day-first layout every stored date is written in.
const DateLayout = "02/01/2006"

// dayFirstLayouts are accepted when reading dates back from a table. Cells
// edited by hand in a spreadsheet tend to drift between these.
var dayFirstLayouts = []string{
	DateLayout,
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDayFirst parses a stored date. The result is midnight UTC of that
// calendar day.
func ParseDayFirst(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOnly(t), true
		}
	}
	return time.Time{}, false
}

// FormatDate writes a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly drops the clock and zone, keeping the calendar day as seen in t's
// own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseID coerces a stored identifier to an integer. Text and float-looking
// values ("5", "3.0", " 7 ") are accepted; anything else is reported absent.
func ParseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// FormatID writes an identifier as plain decimal text.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseAmount reads a stored amount.
func ParseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatAmount writes the shortest decimal text that reads back exactly.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseFlag reads a stored boolean. Unrecognised text reads as false.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "1.0", "yes", "y", "sim", "verdadeiro":
		return true
	default:
		return false
	}
}

// FormatFlag writes a boolean the way spreadsheets display it.
func FormatFlag(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
