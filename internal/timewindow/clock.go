package timewindow

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Clock is a time of day, stored as seconds since midnight.
type Clock int

const day = Clock(24 * 60 * 60)

func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

// ClockOf returns the wall-clock time of day of t in its own location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

// ParseClock accepts "15:04" or "15:04:05". "24:00" is the end of day.
func ParseClock(s string) (Clock, error) {
	if s == "24:00:00" || s == "24:00" {
		return day, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (c Clock) Hour() int   { return int(c) / 3600 }
func (c Clock) Minute() int { return int(c) % 3600 / 60 }
func (c Clock) Second() int { return int(c) % 60 }

func (c Clock) Before(o Clock) bool { return c < o }

// HourAligned reports whether minutes and seconds are zero.
func (c Clock) HourAligned() bool {
	return c%3600 == 0
}

// Valid reports whether c lies within [00:00:00, 24:00:00]. 24:00 is accepted
// as the end of day.
func (c Clock) Valid() bool {
	return c >= 0 && c <= day
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		// lib/pq decodes TIME '24:00:00' as midnight of the following day.
		if v.Year() == 0 && v.YearDay() == 2 && ClockOf(v) == 0 {
			*c = day
			return nil
		}
		*c = ClockOf(v)
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	case int64:
		*c = Clock(v)
		return nil
	case nil:
		*c = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
}

func (c *Clock) parse(s string) error {
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return c.parse(s)
}
