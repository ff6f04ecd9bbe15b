package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"date only", "2026-03-15", "2026-03-15"},
		{"iso timestamp", "2026-03-15T08:30:00Z", "2026-03-15"},
		{"timestamp with offset", "2026-03-15T08:30:00+02:00", "2026-03-15"},
		{"short string", "2026-03", "2026-03"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateOnly(tt.input))
		})
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2026-02-14", AddDays("2026-01-15", 30))
	assert.Equal(t, "2026-01-01", AddDays("2025-12-31", 1))
	assert.Equal(t, "2026-01-10", AddDays("2026-01-17", -7))
	// Invalid input passes through unchanged
	assert.Equal(t, "not-a-date", AddDays("not-a-date", 30))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 30, DaysBetween("2026-01-15", "2026-02-14"))
	assert.Equal(t, -1, DaysBetween("2026-01-02", "2026-01-01"))
	assert.Equal(t, 0, DaysBetween("2026-01-01", "2026-01-01"))
	assert.Equal(t, 0, DaysBetween("bad", "2026-01-01"))
}

func TestDateBefore(t *testing.T) {
	assert.True(t, DateBefore("2026-01-01", "2026-01-02"))
	assert.False(t, DateBefore("2026-01-02", "2026-01-02"))
	// Timestamps compare on date part only
	assert.False(t, DateBefore("2026-01-02T23:59:00Z", "2026-01-02"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-02-28"))
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate("28-02-2026"))
	assert.False(t, ValidDate(""))
}
