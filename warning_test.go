package timetable

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWarningKindString(t *testing.T) {
	tests := []struct {
		k    WarningKind
		want string
	}{
		{SleepOverrun, "SleepOverrun"},
		{RepeatOverflow, "RepeatOverflow"},
		{MealDisplaced, "MealDisplaced"},
		{WarningKind(0), "WarningKind(0)"},
		{WarningKind(4), "WarningKind(4)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("WarningKind(%d).String() = %q, want %q", int(tt.k), got, tt.want)
		}
	}
}

func TestWarningKindTextRoundTrip(t *testing.T) {
	for _, k := range []WarningKind{SleepOverrun, RepeatOverflow, MealDisplaced} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got WarningKind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if got != k {
			t.Errorf("round trip = %v, want %v", got, k)
		}
	}
	if _, err := WarningKind(0).MarshalText(); err == nil {
		t.Error("MarshalText(WarningKind(0)) should fail")
	}
	var k WarningKind
	if err := k.UnmarshalText([]byte("Overtime")); err == nil {
		t.Error("UnmarshalText(Overtime) should fail")
	}
}

func TestWarningIsSchedulingDegenerate(t *testing.T) {
	w := Warning{Day: time.Tuesday, Kind: SleepOverrun, Detail: "day ends 23:30, sleep 23:00"}
	if !errors.Is(w, ErrSchedulingDegenerate) {
		t.Error("errors.Is(warning, ErrSchedulingDegenerate) = false, want true")
	}
	if errors.Is(w, ErrInvalidInput) {
		t.Error("errors.Is(warning, ErrInvalidInput) = true, want false")
	}
	msg := w.Error()
	for _, part := range []string{"Tuesday", "SleepOverrun", "23:30"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}
}

func TestWarningMarshalJSON(t *testing.T) {
	w := Warning{Day: time.Friday, Kind: RepeatOverflow, Detail: "Math x3"}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", data, err)
	}
	if got["day"] != "Friday" || got["kind"] != "RepeatOverflow" || got["detail"] != "Math x3" {
		t.Errorf("json = %s", data)
	}
}
