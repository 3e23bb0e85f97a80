package services

import (
	"fmt"
	"strings"
	"time"

	"juris_control_go/models"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
// It enforces strict checks but centralizes the logic for future format additions
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format: expected YYYY-MM-DD", ErrParseFailure)
	}

	return parsedTime, nil
}

// ParseFormDate accepts either an HTML5 date input (YYYY-MM-DD) or a stored
// day-first date (DD/MM/YYYY).
func ParseFormDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if t, err := ParseDate(dateStr); err == nil {
		return t, nil
	}
	if t, ok := models.ParseDayFirst(dateStr); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q: expected YYYY-MM-DD or DD/MM/YYYY", ErrParseFailure, dateStr)
}

// DaysBetween counts whole calendar days from earlier to later. Only the
// calendar dates matter, so any span of years is counted exactly.
func DaysBetween(earlier, later time.Time) int {
	return int(dayNumber(later) - dayNumber(earlier))
}

// dayNumber is the count of days since 1970-01-01 for t's calendar date.
func dayNumber(t time.Time) int64 {
	return models.DateOnly(t).Unix() / 86400
}
