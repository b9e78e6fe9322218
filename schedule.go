package timetable

import (
	"encoding/json"
	"time"
)

// TimeSlot is one contiguous block of a day's schedule.
type TimeSlot struct {
	Start    Clock    `json:"start"`
	End      Clock    `json:"end"`
	Label    string   `json:"label"`
	Subject  string   `json:"subject,omitempty"` // set for subject study and revision blocks
	Category Category `json:"category"`
}

// Duration returns End - Start.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether s and o share any time.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Start < o.End && o.Start < s.End
}

// DaySchedule is the ordered, non-overlapping list of blocks for one weekday.
type DaySchedule struct {
	Day   time.Weekday `json:"-"`
	Slots []TimeSlot   `json:"slots"`
}

// MarshalJSON implements json.Marshaler. The weekday serializes by name.
func (d DaySchedule) MarshalJSON() ([]byte, error) {
	type alias DaySchedule
	return json.Marshal(struct {
		Day string `json:"day"`
		alias
	}{Day: d.Day.String(), alias: alias(d)})
}

// Count returns the number of blocks in category c.
func (d DaySchedule) Count(c Category) int {
	n := 0
	for _, s := range d.Slots {
		if s.Category == c {
			n++
		}
	}
	return n
}

// Find returns the blocks in category c.
func (d DaySchedule) Find(c Category) []TimeSlot {
	var out []TimeSlot
	for _, s := range d.Slots {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// StudySubjects returns the subjects of the day's subject study blocks in order.
// The self-study filler has no subject and is not included.
func (d DaySchedule) StudySubjects() []string {
	var out []string
	for _, s := range d.Slots {
		if s.Category == Study && s.Subject != "" {
			out = append(out, s.Subject)
		}
	}
	return out
}

// Start returns the start of the first block, or 0 for an empty day.
func (d DaySchedule) Start() Clock {
	if len(d.Slots) == 0 {
		return 0
	}
	return d.Slots[0].Start
}

// End returns the end of the last block, or 0 for an empty day.
func (d DaySchedule) End() Clock {
	if len(d.Slots) == 0 {
		return 0
	}
	return d.Slots[len(d.Slots)-1].End
}

// Total returns the summed duration of the blocks in the given categories.
func (d DaySchedule) Total(categories ...Category) time.Duration {
	var sum time.Duration
	for _, s := range d.Slots {
		for _, c := range categories {
			if s.Category == c {
				sum += s.Duration()
				break
			}
		}
	}
	return sum
}

// Week lists the weekdays in schedule order, Monday first.
var Week = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekSchedule is a full week of day schedules, Monday to Sunday.
type WeekSchedule struct {
	Days     [7]DaySchedule `json:"days"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// Day returns the schedule for weekday wd.
func (w WeekSchedule) Day(wd time.Weekday) DaySchedule {
	// Monday is index 0, Sunday index 6.
	return w.Days[(int(wd)+6)%7]
}

// Degenerate reports whether building the week raised any warning.
func (w WeekSchedule) Degenerate() bool {
	return len(w.Warnings) > 0
}
