// Package timewindow provides the half-open interval math shared by the
// availability store, the conflict checker and the booking engine.
package timewindow

import (
	"time"

	"gymcore/internal/apperr"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, apperr.InvalidWindow("start_time must be before end_time")
	}
	return Window{Start: start, End: end}, nil
}

// Bound is an interval endpoint: an instant (time.Time) or a time of day (Clock).
type Bound[T any] interface {
	Before(T) bool
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any point.
// Back-to-back windows do not overlap.
func Overlaps[T Bound[T]](aStart, aEnd, bStart, bEnd T) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Touches is Overlaps with inclusive bounds: windows sharing an endpoint
// count. Availability segments use it so that no two share an edge.
func Touches[T Bound[T]](aStart, aEnd, bStart, bEnd T) bool {
	return Overlaps(aStart, aEnd, bStart, bEnd) || same(aEnd, bStart) || same(bEnd, aStart)
}

func same[T Bound[T]](a, b T) bool {
	return !a.Before(b) && !b.Before(a)
}

// TopOfHour truncates t to the start of its wall-clock hour in t's location.
func TopOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// DayOfWeek maps t to 0 = Monday ... 6 = Sunday.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
