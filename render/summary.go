package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sky-flux/timetable"
)

// AssessmentKey is the Summary.Hours key for Sunday mock tests.
const AssessmentKey = "Assessment"

// SubjectTime is the weekly study time of one subject or activity.
type SubjectTime struct {
	Subject string
	Time    time.Duration
}

// Summary holds weekly study statistics.
type Summary struct {
	// TotalStudy sums every Study, Revision and Assessment block,
	// self-study filler included.
	TotalStudy time.Duration
	// Hours is ordered by descending time, ties by name. Subject blocks
	// are keyed by subject, the self-study filler by its label and mock
	// tests by AssessmentKey.
	Hours []SubjectTime
	// SubjectsCovered counts distinct subjects with at least one study or
	// revision block.
	SubjectsCovered int
	StudyDays       int
}

type subjectHours struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

// MarshalJSON implements json.Marshaler. Durations are written as hours.
func (s Summary) MarshalJSON() ([]byte, error) {
	hours := make([]subjectHours, len(s.Hours))
	for i, h := range s.Hours {
		hours[i] = subjectHours{Subject: h.Subject, Hours: h.Time.Hours()}
	}
	return json.Marshal(struct {
		TotalStudyHours float64        `json:"total_study_hours"`
		Hours           []subjectHours `json:"hours"`
		SubjectsCovered int            `json:"subjects_covered"`
		StudyDays       int            `json:"study_days"`
	}{s.TotalStudy.Hours(), hours, s.SubjectsCovered, s.StudyDays})
}

// Summarize computes the study statistics of week.
func Summarize(week timetable.WeekSchedule) Summary {
	var (
		sum      Summary
		byKey    = make(map[string]time.Duration)
		subjects = make(map[string]bool)
	)
	for _, day := range week.Days {
		studied := false
		for _, s := range day.Slots {
			if !s.Category.IsStudy() {
				continue
			}
			d := s.Duration()
			sum.TotalStudy += d
			switch {
			case s.Category == timetable.Assessment:
				byKey[AssessmentKey] += d
			case s.Subject != "":
				byKey[s.Subject] += d
				subjects[s.Subject] = true
			default:
				byKey[s.Label] += d
			}
			studied = true
		}
		if studied {
			sum.StudyDays++
		}
	}

	for k, d := range byKey {
		sum.Hours = append(sum.Hours, SubjectTime{Subject: k, Time: d})
	}
	sort.Slice(sum.Hours, func(i, j int) bool {
		if sum.Hours[i].Time != sum.Hours[j].Time {
			return sum.Hours[i].Time > sum.Hours[j].Time
		}
		return sum.Hours[i].Subject < sum.Hours[j].Subject
	})
	sum.SubjectsCovered = len(subjects)
	return sum
}

// WriteSummary writes s as a short plain-text report.
func WriteSummary(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total study hours\t%.1f\n", s.TotalStudy.Hours())
	fmt.Fprintf(tw, "Study days\t%d\n", s.StudyDays)
	fmt.Fprintf(tw, "Subjects covered\t%d\n", s.SubjectsCovered)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Subject\tHours")
	fmt.Fprintln(tw, strings.Repeat("-", 7)+"\t"+strings.Repeat("-", 5))
	for _, h := range s.Hours {
		fmt.Fprintf(tw, "%s\t%.1f\n", h.Subject, h.Time.Hours())
	}
	return tw.Flush()
}

// WriteRecordStats writes the record overview followed by one row per
// subject. Averages over no completed exams print as N/A.
func WriteRecordStats(w io.Writer, st timetable.RecordStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total records\t%d\n", st.Records)
	fmt.Fprintf(tw, "Unique subjects\t%d\n", st.Subjects)
	fmt.Fprintf(tw, "Completed exams\t%d\n", st.Completed)
	fmt.Fprintf(tw, "Average score\t%s\n", percent(st.AverageScore, st.Completed))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(st.BySubject) == 0 {
		return nil
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Subject\tRecords\tCompleted\tAvg score\tStudy hours\tAvg difficulty")
	for _, s := range st.BySubject {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.1f\t%.1f\n",
			s.Subject, s.Records, s.Completed, percent(s.AverageScore, s.Completed), s.StudyHours, s.AverageDifficulty)
	}
	return tw.Flush()
}

func percent(v float64, n int) string {
	if n == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v)
}
