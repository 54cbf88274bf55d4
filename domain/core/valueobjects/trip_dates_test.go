package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripDates_DayTrip(t *testing.T) {
	dates, err := NewTripDates(true, "2026-06-01", "")
	require.NoError(t, err)

	assert.True(t, dates.IsDayTrip())
	assert.Equal(t, "2026-06-01", dates.StartDateString())
	assert.Empty(t, dates.EndDateString())

	_, ok := dates.EndDate()
	assert.False(t, ok)
	assert.Equal(t, 0, dates.Nights())
}

func TestNewTripDates_DayTripRejectsEndDate(t *testing.T) {
	_, err := NewTripDates(true, "2026-06-01", "2026-06-03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endDate must be absent")
}

func TestNewTripDates_RangedTrip(t *testing.T) {
	dates, err := NewTripDates(false, "2026-06-01", "2026-06-04")
	require.NoError(t, err)

	assert.False(t, dates.IsDayTrip())
	assert.Equal(t, "2026-06-01", dates.StartDateString())
	assert.Equal(t, "2026-06-04", dates.EndDateString())
	assert.Equal(t, 3, dates.Nights())

	_, ok := dates.EndDate()
	assert.True(t, ok)
}

func TestNewTripDates_RangedTripRequiresEndDate(t *testing.T) {
	_, err := NewTripDates(false, "2026-06-01", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endDate is required")
}

func TestNewTripDates_EndBeforeStart(t *testing.T) {
	_, err := NewTripDates(false, "2026-06-04", "2026-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be before")
}

func TestNewTripDates_SameDayRange(t *testing.T) {
	dates, err := NewTripDates(false, "2026-06-01", "2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, 0, dates.Nights())
}

func TestNewTripDates_InvalidDateFormats(t *testing.T) {
	tests := []struct {
		name      string
		isDayTrip bool
		start     string
		end       string
	}{
		{"empty start", true, "", ""},
		{"not a date", true, "next tuesday", ""},
		{"wrong format", true, "06/01/2026", ""},
		{"bad end date", false, "2026-06-01", "June 4th"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTripDates(tt.isDayTrip, tt.start, tt.end)
			assert.Error(t, err)
		})
	}
}
