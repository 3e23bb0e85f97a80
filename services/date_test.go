package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Valid date",
			input:    "2026-01-27",
			expected: time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:    "Invalid format",
			input:   "27-01-2026",
			wantErr: true,
		},
		{
			name:    "Invalid day",
			input:   "2026-01-32",
			wantErr: true,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrParseFailure))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseFormDate(t *testing.T) {
	want := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	got, err := ParseFormDate("2024-02-10")
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseFormDate("10/02/2024")
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseFormDate("next week")
	assert.True(t, errors.Is(err, ErrParseFailure))
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, 1, 20, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, 15, DaysBetween(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, 0, DaysBetween(today, today))
	// crosses a month boundary
	assert.Equal(t, 30, DaysBetween(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	// spans longer than time.Duration can hold
	assert.Equal(t, 118353, DaysBetween(time.Date(1700, 1, 5, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, -118353, DaysBetween(today, time.Date(1700, 1, 5, 0, 0, 0, 0, time.UTC)))
}
