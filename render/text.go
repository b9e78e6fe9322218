package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sky-flux/timetable"
)

const ruleWidth = 50

// Text writes the week as a plain-text timetable: a title, then for each day
// an upper-case header followed by one "HH:MM - HH:MM  (dur)  label" line per
// block. Warnings, if any, are listed at the end.
func Text(w io.Writer, week timetable.WeekSchedule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "WEEKLY STUDY TIMETABLE")
	fmt.Fprintln(tw, strings.Repeat("=", ruleWidth))
	for _, day := range week.Days {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, strings.ToUpper(day.Day.String()))
		fmt.Fprintln(tw, strings.Repeat("-", ruleWidth))
		if len(day.Slots) == 0 {
			fmt.Fprintln(tw, "No sessions scheduled")
			continue
		}
		for _, s := range day.Slots {
			fmt.Fprintf(tw, "%v - %v\t(%s)\t%s\n", s.Start, s.End, FormatDuration(s.Duration()), s.Label)
		}
		// Flush per day so column widths do not leak across days.
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(week.Warnings) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "WARNINGS")
		fmt.Fprintln(tw, strings.Repeat("-", ruleWidth))
		for _, warn := range week.Warnings {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", warn.Day, warn.Kind, warn.Detail)
		}
	}
	return tw.Flush()
}

// FormatDuration renders d as hours with one decimal ("1.5h") from one hour
// up, and as whole minutes ("45min") below.
func FormatDuration(d time.Duration) string {
	if d >= time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	}
	return fmt.Sprintf("%dmin", int(d.Minutes()))
}
