package renewal

import "time"

// DefaultMaxYearsAhead caps the year-advance loop in NormalizeForward. This is
// a safety bound against data-entry errors (a renewal date decades in the
// past), not a business rule.
const DefaultMaxYearsAhead = 5

// DateOnly strips the clock and location from t, keeping the calendar day in UTC.
// All expiry arithmetic works on these truncated values so day differences are
// exact regardless of the zone the row was stored in.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddYearClamped adds one calendar year to d. A Feb 29 date whose target year
// is not a leap year lands on Feb 28 instead of overflowing into March.
func AddYearClamped(d time.Time) time.Time {
	year := d.Year() + 1
	day := d.Day()
	if d.Month() == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, d.Month(), day, 0, 0, 0, 0, d.Location())
}

// NormalizeForward advances d by whole years until it reaches today or the
// iteration cap, whichever comes first. The result may still be in the past
// when the cap is hit; callers must not assume it is >= today.
func NormalizeForward(d, today time.Time, maxYears int) time.Time {
	if maxYears <= 0 {
		maxYears = DefaultMaxYearsAhead
	}
	d = DateOnly(d)
	today = DateOnly(today)
	for i := 0; i < maxYears && d.Before(today); i++ {
		d = AddYearClamped(d)
	}
	return d
}

// DaysBetween returns the whole-day difference to - from. Both arguments are
// truncated to calendar days first, so the result is negative exactly when
// `to` is an earlier day than `from`.
func DaysBetween(from, to time.Time) int {
	from = DateOnly(from)
	to = DateOnly(to)
	return int(to.Sub(from).Hours() / 24)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
