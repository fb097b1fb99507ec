package marketdata

import "time"

// Window converts a selected end date and a lookback into a [from, to) range in loc.
// from is midnight lookbackDays before the end date's calendar day and to is midnight of the
// day after, so the selected day is fully included.
func Window(endDate time.Time, lookbackDays int, loc *time.Location) (time.Time, time.Time) {
	year, month, day := endDate.In(loc).Date()

	from := time.Date(year, month, day-lookbackDays, 0, 0, 0, 0, loc)
	to := time.Date(year, month, day+1, 0, 0, 0, 0, loc)

	return from, to
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
