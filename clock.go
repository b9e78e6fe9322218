package timetable

import (
	"encoding"
	"fmt"
	"time"
)

// Clock is a wall-clock time of day stored as the offset from midnight.
// Offsets of 24h or more belong to the following calendar day; they occur
// for overnight sleep times and for days that run past midnight.
type Clock time.Duration

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Clock(0)
	_ encoding.TextMarshaler   = Clock(0)
	_ encoding.TextUnmarshaler = (*Clock)(nil)
)

const day = 24 * time.Hour

// At returns the Clock for hour:minute.
func At(hour, minute int) Clock {
	return Clock(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ParseClock parses "HH:MM" (24-hour) into a Clock.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: clock %q: want HH:MM", ErrInvalidConfig, s)
	}
	return At(t.Hour(), t.Minute()), nil
}

// String formats the clock as "HH:MM", wrapping at midnight.
func (c Clock) String() string {
	d := time.Duration(c) % day
	if d < 0 {
		d += day
	}
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// Add returns c shifted by d.
func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d)
}

// Sub returns the duration c - u.
func (c Clock) Sub(u Clock) time.Duration {
	return time.Duration(c - u)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(text []byte) error {
	v, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
