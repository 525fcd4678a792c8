package entity

import "time"

// DateRange is an optional inclusive date filter. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsAllTime reports whether neither bound is set
func (r DateRange) IsAllTime() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains checks t against the range. The end date covers its whole day.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.endOfDay()) {
		return false
	}
	return true
}

func (r DateRange) endOfDay() time.Time {
	y, m, d := r.End.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), r.End.Location())
}
