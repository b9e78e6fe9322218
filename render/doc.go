// Package render formats a timetable.WeekSchedule for people and programs:
// [Text] writes the printable weekly timetable, [JSON] writes indented JSON
// and [Summarize] computes the weekly study statistics.
package render
