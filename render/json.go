package render

import (
	"encoding/json"
	"io"

	"github.com/sky-flux/timetable"
)

// JSON writes the week as indented JSON. Times are "HH:MM" strings,
// categories and warning kinds are names, days are weekday names.
func JSON(w io.Writer, week timetable.WeekSchedule) error {
	return writeJSON(w, week)
}

// JSONWithSummary writes {"week": ..., "summary": ...} with the summary of
// week computed by Summarize.
func JSONWithSummary(w io.Writer, week timetable.WeekSchedule) error {
	return writeJSON(w, struct {
		Week    timetable.WeekSchedule `json:"week"`
		Summary Summary                `json:"summary"`
	}{week, Summarize(week)})
}

// RecordStatsJSON writes st as indented JSON.
func RecordStatsJSON(w io.Writer, st timetable.RecordStats) error {
	return writeJSON(w, st)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
