package utils

import "time"

// Calendar days are handled as plain YYYY-MM-DD strings anchored to one
// application timezone. The string form survives the database round-trip
// byte for byte, and its lexicographic order matches chronological order.

const dayLayout = "2006-01-02"

// DayString returns the calendar day of t in loc as YYYY-MM-DD.
func DayString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// NextDay returns the day after a YYYY-MM-DD day. Malformed input yields an
// empty string, which never equals a real day.
func NextDay(day string) string {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(dayLayout)
}
