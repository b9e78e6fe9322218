package timetable

import (
	"encoding"
	"encoding/json"
	"fmt"
	"time"
)

// WarningKind identifies the soft constraint a degenerate schedule violates.
type WarningKind int

const (
	SleepOverrun   WarningKind = iota + 1 // The day's last block ends after sleep time.
	RepeatOverflow                        // A subject was scheduled more than twice in a day.
	MealDisplaced                         // A meal could not start at its configured time.
)

var (
	warningKindNames = [...]string{
		SleepOverrun:   "SleepOverrun",
		RepeatOverflow: "RepeatOverflow",
		MealDisplaced:  "MealDisplaced",
	}
	warningKindByName = map[string]WarningKind{
		"SleepOverrun":   SleepOverrun,
		"RepeatOverflow": RepeatOverflow,
		"MealDisplaced":  MealDisplaced,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = WarningKind(0)
	_ encoding.TextMarshaler   = WarningKind(0)
	_ encoding.TextUnmarshaler = (*WarningKind)(nil)
	_ error                    = Warning{}
)

func (k WarningKind) isValid() bool {
	return k >= SleepOverrun && k <= MealDisplaced
}

// String returns the name of the kind. For invalid values it returns "WarningKind(n)".
func (k WarningKind) String() string {
	if k.isValid() {
		return warningKindNames[k]
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k WarningKind) MarshalText() ([]byte, error) {
	if !k.isValid() {
		return nil, fmt.Errorf("timetable: invalid warning kind: %d", int(k))
	}
	return []byte(warningKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *WarningKind) UnmarshalText(text []byte) error {
	v, ok := warningKindByName[string(text)]
	if !ok {
		return fmt.Errorf("timetable: invalid warning kind: %q", text)
	}
	*k = v
	return nil
}

// Warning reports a soft-constraint violation absorbed into a built schedule.
// Warnings are never returned as the error result of Build; they are listed
// on the WeekSchedule and unwrap to ErrSchedulingDegenerate.
type Warning struct {
	Day    time.Weekday `json:"-"`
	Kind   WarningKind  `json:"kind"`
	Detail string       `json:"detail"`
}

// Error implements error.
func (w Warning) Error() string {
	return fmt.Sprintf("timetable: %s: %s: %s", w.Day, w.Kind, w.Detail)
}

// Unwrap returns ErrSchedulingDegenerate.
func (w Warning) Unwrap() error {
	return ErrSchedulingDegenerate
}

// MarshalJSON implements json.Marshaler. The weekday serializes by name.
func (w Warning) MarshalJSON() ([]byte, error) {
	type alias Warning
	return json.Marshal(struct {
		Day string `json:"day"`
		alias
	}{Day: w.Day.String(), alias: alias(w)})
}
