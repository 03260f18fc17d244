package renewal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeForward_FutureDateUnchanged(t *testing.T) {
	d := date(2026, 6, 1)
	got := NormalizeForward(d, date(2025, 9, 1), DefaultMaxYearsAhead)
	assert.Equal(t, d, got)
}

func TestNormalizeForward_SameDayUnchanged(t *testing.T) {
	d := date(2025, 9, 1)
	got := NormalizeForward(d, date(2025, 9, 1), DefaultMaxYearsAhead)
	assert.Equal(t, d, got)
}

func TestNormalizeForward_AdvancesWholeYears(t *testing.T) {
	got := NormalizeForward(date(2022, 3, 15), date(2025, 1, 10), DefaultMaxYearsAhead)
	assert.Equal(t, date(2025, 3, 15), got)
}

func TestNormalizeForward_LeapDaySafe(t *testing.T) {
	// Advancing Feb 29 into a non-leap year must not blow up and must land on
	// a valid date.
	got := NormalizeForward(date(2024, 2, 29), date(2025, 3, 1), DefaultMaxYearsAhead)
	require.False(t, got.IsZero())
	assert.Equal(t, date(2026, 2, 28), got)
}

func TestNormalizeForward_LeapDayToLeapYear(t *testing.T) {
	// Four whole years later lands back on Feb 29.
	got := NormalizeForward(date(2024, 2, 29), date(2028, 2, 1), DefaultMaxYearsAhead)
	assert.Equal(t, date(2028, 2, 29), got)
}

func TestNormalizeForward_CapReturnsBestEffortPastDate(t *testing.T) {
	// A date decades in the past stays past after the capped advance; callers
	// must not assume the result caught up to today.
	d := date(2000, 5, 1)
	today := date(2025, 9, 1)
	got := NormalizeForward(d, today, DefaultMaxYearsAhead)
	assert.Equal(t, date(2005, 5, 1), got)
	assert.True(t, got.Before(today))
}

func TestNormalizeForward_ForwardOnlyInvariant(t *testing.T) {
	cases := []struct {
		d, today time.Time
	}{
		{date(2020, 1, 1), date(2025, 6, 1)},
		{date(2024, 12, 31), date(2025, 1, 1)},
		{date(2024, 2, 29), date(2025, 3, 1)},
		{date(1990, 7, 4), date(2025, 1, 1)},
	}
	for _, tc := range cases {
		got := NormalizeForward(tc.d, tc.today, DefaultMaxYearsAhead)
		// Never moves backwards, and only by whole-year steps: the month never
		// changes and the day only shifts for the leap-day clamp.
		assert.False(t, got.Before(tc.d), "result before input for %v", tc.d)
		assert.Equal(t, tc.d.Month(), got.Month())
	}
}

func TestAddYearClamped(t *testing.T) {
	assert.Equal(t, date(2025, 3, 15), AddYearClamped(date(2024, 3, 15)))
	assert.Equal(t, date(2025, 2, 28), AddYearClamped(date(2024, 2, 29)))
	assert.Equal(t, date(2028, 2, 28), AddYearClamped(date(2027, 2, 28)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2025, 9, 1), date(2025, 9, 1)))
	assert.Equal(t, 30, DaysBetween(date(2025, 9, 1), date(2025, 10, 1)))
	assert.Equal(t, -1, DaysBetween(date(2025, 9, 1), date(2025, 8, 31)))
	// Clock components are ignored.
	noon := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(noon, date(2025, 9, 2)))
}
