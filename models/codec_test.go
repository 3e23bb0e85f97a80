package models

import (
	"testing"
	"time"

	"juris_control_go/services/tablestore"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{name: "Integer text", input: "5", want: 5, wantOK: true},
		{name: "Float artifact", input: "3.0", want: 3, wantOK: true},
		{name: "Padded", input: " 12 ", want: 12, wantOK: true},
		{name: "Non-numeric", input: "x", wantOK: false},
		{name: "Blank", input: "", wantOK: false},
		{name: "NaN", input: "NaN", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{name: "Day first", input: "05/01/2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "Unpadded", input: "5/1/2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "With clock", input: "10/02/2024 00:00:00", want: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "ISO", input: "2024-01-15", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "Invalid day", input: "32/01/2024", wantOK: false},
		{name: "Garbage", input: "soon", wantOK: false},
		{name: "Blank", input: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDayFirst(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseFlag(t *testing.T) {
	for _, v := range []string{"TRUE", "true", "1", "Sim"} {
		assert.True(t, ParseFlag(v), v)
	}
	for _, v := range []string{"FALSE", "", "0", "maybe"} {
		assert.False(t, ParseFlag(v), v)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100", FormatAmount(100))
	assert.Equal(t, "33.333333333333336", FormatAmount(100.0/3))

	back, ok := ParseAmount(FormatAmount(100.0 / 3))
	assert.True(t, ok)
	assert.Equal(t, 100.0/3, back)
}

func TestCaseRow(t *testing.T) {
	row := tablestore.Row{
		CaseColID:         "4.0",
		CaseColNumber:     "0801234-56.2024.8.26.0100",
		CaseColClient:     "Maria Lima",
		CaseColClientID:   "",
		CaseColStatus:     CaseStatusActive,
		CaseColLastUpdate: "05/01/2024",
	}

	c := CaseFromRow(row)
	assert.Equal(t, int64(4), c.ID)
	assert.Equal(t, int64(0), c.ClientID)
	assert.True(t, c.IsActive())

	last, ok := c.LastUpdated()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), last)

	out := c.ToRow()
	assert.Equal(t, "4", out[CaseColID])
	assert.Equal(t, "", out[CaseColClientID])
}

func TestInstallmentRow(t *testing.T) {
	inst, ok := InstallmentFromRow(tablestore.Row{
		InstallmentColID:     "7",
		InstallmentColAmount: "250.5",
		InstallmentColPaid:   "FALSE",
	})
	assert.True(t, ok)
	assert.Equal(t, 250.5, inst.Amount)
	assert.False(t, inst.Paid)

	_, ok = InstallmentFromRow(tablestore.Row{InstallmentColAmount: "R$ 10"})
	assert.False(t, ok)
}

func TestIsValidCaseStatus(t *testing.T) {
	assert.True(t, IsValidCaseStatus(CaseStatusOnAppeal))
	assert.False(t, IsValidCaseStatus("Closed"))
	assert.Equal(t, "On Appeal", GetCaseStatusDisplayName(CaseStatusOnAppeal))
}
