package timetable

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleDay() DaySchedule {
	return DaySchedule{
		Day: time.Tuesday,
		Slots: []TimeSlot{
			{Start: At(8, 0), End: At(9, 0), Label: "Math", Subject: "Math", Category: Study},
			{Start: At(9, 0), End: At(9, 30), Label: LabelBreak, Category: Break},
			{Start: At(9, 30), End: At(10, 30), Label: "Physics", Subject: "Physics", Category: Study},
			{Start: At(10, 30), End: At(11, 30), Label: LabelSelfStudy, Category: Study},
			{Start: At(11, 30), End: At(12, 30), Label: LabelLunch, Category: Meal},
		},
	}
}

func TestTimeSlotOverlaps(t *testing.T) {
	a := TimeSlot{Start: At(8, 0), End: At(9, 0)}
	tests := []struct {
		b    TimeSlot
		want bool
	}{
		{TimeSlot{Start: At(9, 0), End: At(10, 0)}, false}, // touching
		{TimeSlot{Start: At(7, 0), End: At(8, 0)}, false},
		{TimeSlot{Start: At(8, 30), End: At(9, 30)}, true},
		{TimeSlot{Start: At(7, 0), End: At(10, 0)}, true},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Errorf("Overlaps(%v-%v) = %v, want %v", tt.b.Start, tt.b.End, got, tt.want)
		}
		if got := tt.b.Overlaps(a); got != tt.want {
			t.Errorf("Overlaps is not symmetric for %v-%v", tt.b.Start, tt.b.End)
		}
	}
	if d := a.Duration(); d != time.Hour {
		t.Errorf("Duration = %v, want 1h", d)
	}
}

func TestDayScheduleQueries(t *testing.T) {
	d := sampleDay()

	if n := d.Count(Study); n != 3 {
		t.Errorf("Count(Study) = %d, want 3", n)
	}
	if got := d.StudySubjects(); strings.Join(got, ",") != "Math,Physics" {
		t.Errorf("StudySubjects = %v, want [Math Physics]", got)
	}
	if got := d.Total(Study); got != 3*time.Hour {
		t.Errorf("Total(Study) = %v, want 3h", got)
	}
	if got := d.Total(Break, Meal); got != 90*time.Minute {
		t.Errorf("Total(Break, Meal) = %v, want 1h30m", got)
	}
	if d.Start() != At(8, 0) || d.End() != At(12, 30) {
		t.Errorf("span = %v-%v, want 08:00-12:30", d.Start(), d.End())
	}
	if got := d.Find(Meal); len(got) != 1 || got[0].Label != LabelLunch {
		t.Errorf("Find(Meal) = %+v", got)
	}

	var empty DaySchedule
	if empty.Start() != 0 || empty.End() != 0 {
		t.Error("empty day should span 0-0")
	}
}

func TestDayScheduleJSON(t *testing.T) {
	data, err := json.Marshal(sampleDay())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got struct {
		Day   string `json:"day"`
		Slots []struct {
			Start    string `json:"start"`
			End      string `json:"end"`
			Subject  string `json:"subject"`
			Category string `json:"category"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Day != "Tuesday" {
		t.Errorf("day = %q, want Tuesday", got.Day)
	}
	if len(got.Slots) != 5 {
		t.Fatalf("%d slots, want 5", len(got.Slots))
	}
	first := got.Slots[0]
	if first.Start != "08:00" || first.End != "09:00" || first.Subject != "Math" || first.Category != "Study" {
		t.Errorf("first slot = %+v", first)
	}
	if strings.Contains(string(data), `"subject":""`) {
		t.Errorf("empty subject should be omitted: %s", data)
	}
}

func TestWeekScheduleDay(t *testing.T) {
	var w WeekSchedule
	for i, wd := range Week {
		w.Days[i].Day = wd
	}
	for _, wd := range []time.Weekday{time.Sunday, time.Monday, time.Wednesday, time.Saturday} {
		if got := w.Day(wd).Day; got != wd {
			t.Errorf("Day(%v) returned %v", wd, got)
		}
	}
	if w.Degenerate() {
		t.Error("week without warnings reported degenerate")
	}
	w.Warnings = append(w.Warnings, Warning{Day: time.Monday, Kind: SleepOverrun})
	if !w.Degenerate() {
		t.Error("week with warnings not degenerate")
	}
}
