package availability

import (
	"time"

	"gymcore/internal/apperr"
	"gymcore/internal/timewindow"
)

// ValidateBounds checks a time-of-day range before it is stored: start must
// precede end and both must sit on the hour.
func ValidateBounds(start, end timewindow.Clock) error {
	if !start.Valid() || !end.Valid() {
		return apperr.InvalidWindow("availability times must lie within the day")
	}
	if start >= end {
		return apperr.InvalidWindow("availability start time must be before end time")
	}
	if !start.HourAligned() || !end.HourAligned() {
		return apperr.InvalidWindow("availability times must start and end on the hour")
	}
	return nil
}

func validateDay(dayOfWeek int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return apperr.InvalidWindow("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	}
	return nil
}

// firstTouching returns the first window in existing that shares any instant
// or an endpoint with [start, end), skipping excludeID.
func firstTouching(existing []Window, start, end timewindow.Clock, excludeID int) *Window {
	for i := range existing {
		w := &existing[i]
		if w.ID == excludeID {
			continue
		}
		if timewindow.Touches(start, end, w.StartTime, w.EndTime) {
			return w
		}
	}
	return nil
}

// localRange maps [start, end) onto the weekday and time-of-day range it
// occupies in loc. ok is false for empty windows and windows running past
// midnight.
func localRange(start, end time.Time, loc *time.Location) (day int, from, to timewindow.Clock, ok bool) {
	span := end.Sub(start)
	if span <= 0 {
		return 0, 0, 0, false
	}

	local := start.In(loc)
	from = timewindow.ClockOf(local)
	to = from + timewindow.Clock(span/time.Second)
	if !to.Valid() {
		return 0, 0, 0, false
	}
	return timewindow.DayOfWeek(local), from, to, true
}

// Supports reports whether some window on start's weekday fully contains
// [start, end). No window on that day means no support.
func Supports(windows []Window, start, end time.Time, loc *time.Location) bool {
	day, from, to, ok := localRange(start, end, loc)
	if !ok {
		return false
	}

	for _, w := range windows {
		if w.DayOfWeek == day && w.StartTime <= from && to <= w.EndTime {
			return true
		}
	}
	return false
}

// VisibleForListing is the class-listing variant of Supports: a trainer with
// no window at all on that weekday does not hide their existing classes.
func VisibleForListing(windows []Window, start, end time.Time, loc *time.Location) bool {
	day := timewindow.DayOfWeek(start.In(loc))
	for _, w := range windows {
		if w.DayOfWeek == day {
			return Supports(windows, start, end, loc)
		}
	}
	return true
}
