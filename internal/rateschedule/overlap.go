package rateschedule

import "time"

// overlaps reports whether [aFrom, aTo] and [bFrom, bTo] intersect.
// A nil end is treated as +infinity (an ongoing rate).
// Two intervals overlap iff aFrom <= bTo AND bFrom <= aTo.
func overlaps(aFrom time.Time, aTo *time.Time, bFrom time.Time, bTo *time.Time) bool {
	if aTo != nil && aTo.Before(bFrom) {
		return false
	}
	if bTo != nil && bTo.Before(aFrom) {
		return false
	}
	return true
}

// containsDate reports whether onDate falls inside [from, to], both ends
// inclusive. A nil end means the rate is still ongoing.
func containsDate(from time.Time, to *time.Time, onDate time.Time) bool {
	if onDate.Before(from) {
		return false
	}
	if to != nil && onDate.After(*to) {
		return false
	}
	return true
}

// closeOfDayBefore returns the auto-close boundary for a superseded ongoing
// rate: one day before t, at 23:59:59.999 UTC.
func closeOfDayBefore(t time.Time) time.Time {
	d := t.UTC().AddDate(0, 0, -1)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, time.UTC)
}
