package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sky-flux/timetable"
)

// setup writes a config pointing at a fresh store in a temp dir and returns
// its path.
func setup(t *testing.T, driver string) string {
	t.Helper()
	dir := t.TempDir()
	ext := map[string]string{"csv": "csv", "sqlite": "db"}[driver]
	cfg := fmt.Sprintf("log_mode: prod\nstore:\n  driver: %s\n  path: %s\ntrainer:\n  epochs: 50\n",
		driver, filepath.Join(dir, "records."+ext))
	p := filepath.Join(dir, "studyplan.yaml")
	if err := os.WriteFile(p, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCmd(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"-config", cfgPath}, args...), &out)
	return out.String(), err
}

var seedRecords = [][]string{
	{"-subject", "Math", "-hours", "3", "-previous", "45", "-days", "10", "-difficulty", "8", "-final", "50"},
	{"-subject", "History", "-hours", "2", "-previous", "80", "-days", "5", "-difficulty", "3", "-final", "84"},
	{"-subject", "Physics", "-hours", "4", "-previous", "60", "-days", "12", "-difficulty", "7", "-final", "64"},
	{"-subject", "Math", "-hours", "5", "-previous", "50", "-days", "4", "-difficulty", "8", "-final", "56"},
	{"-subject", "History", "-hours", "1", "-previous", "85", "-days", "3", "-difficulty", "3"},
	{"-subject", "Physics", "-hours", "3", "-previous", "62", "-days", "6", "-difficulty", "7"},
}

func TestAddListClear(t *testing.T) {
	for _, driver := range []string{"csv", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := setup(t, driver)
			for _, args := range seedRecords[:2] {
				if _, err := runCmd(t, cfg, append([]string{"add"}, args...)...); err != nil {
					t.Fatalf("add: %v", err)
				}
			}

			out, err := runCmd(t, cfg, "list")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !strings.Contains(out, "2 records, 2 completed exams") || !strings.Contains(out, "History") {
				t.Errorf("list output:\n%s", out)
			}

			if _, err := runCmd(t, cfg, "clear"); err != nil {
				t.Fatalf("clear: %v", err)
			}
			out, err = runCmd(t, cfg, "list")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !strings.Contains(out, "0 records") {
				t.Errorf("list after clear:\n%s", out)
			}
		})
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	cfg := setup(t, "csv")
	_, err := runCmd(t, cfg, "add", "-subject", "Math", "-hours", "2", "-previous", "50", "-days", "0")
	if !errors.Is(err, timetable.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestPlan(t *testing.T) {
	cfg := setup(t, "csv")

	if _, err := runCmd(t, cfg, "plan"); !errors.Is(err, timetable.ErrInsufficientData) {
		t.Fatalf("plan with no data: err = %v, want ErrInsufficientData", err)
	}

	for _, args := range seedRecords {
		if _, err := runCmd(t, cfg, append([]string{"add"}, args...)...); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	out, err := runCmd(t, cfg, "plan", "-summary")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{"MONDAY", "SUNDAY", "Mock Test / Practice Problems", "Total study hours"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}

	again, err := runCmd(t, cfg, "plan", "-summary")
	if err != nil {
		t.Fatal(err)
	}
	if again != out {
		t.Error("plan is not reproducible for a fixed seed")
	}

	js, err := runCmd(t, cfg, "plan", "-format", "json")
	if err != nil {
		t.Fatalf("plan json: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(js), "{") || !strings.Contains(js, `"day": "Monday"`) {
		t.Errorf("json output:\n%s", js)
	}
}

func TestUsageErrors(t *testing.T) {
	cfg := setup(t, "csv")
	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"plan", "-format", "xml"},
	} {
		if _, err := runCmd(t, cfg, args...); err == nil {
			t.Errorf("run(%v) should fail", args)
		}
	}
	if _, err := runCmd(t, cfg); !errors.Is(err, errUsage) {
		t.Errorf("no command: err = %v, want errUsage", err)
	}
}

func TestStats(t *testing.T) {
	cfg := setup(t, "csv")
	for _, args := range seedRecords {
		if _, err := runCmd(t, cfg, append([]string{"add"}, args...)...); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	out, err := runCmd(t, cfg, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Total records    6\n", "Unique subjects  3\n", "Completed exams  4\n", "Average score    63.5%\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	js, err := runCmd(t, cfg, "stats", "-format", "json")
	if err != nil {
		t.Fatalf("stats json: %v", err)
	}
	var st timetable.RecordStats
	if err := json.Unmarshal([]byte(js), &st); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, js)
	}
	if st.Records != 6 || len(st.BySubject) != 3 || st.BySubject[0].Subject != "History" {
		t.Errorf("stats = %+v", st)
	}
}

func TestPlanJSONWithSummary(t *testing.T) {
	cfg := setup(t, "csv")
	for _, args := range seedRecords {
		if _, err := runCmd(t, cfg, append([]string{"add"}, args...)...); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	js, err := runCmd(t, cfg, "plan", "-format", "json", "-summary")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var got struct {
		Week    json.RawMessage `json:"week"`
		Summary struct {
			TotalStudyHours float64 `json:"total_study_hours"`
			StudyDays       int     `json:"study_days"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, js)
	}
	if len(got.Week) == 0 || got.Summary.TotalStudyHours <= 0 || got.Summary.StudyDays != 7 {
		t.Errorf("json summary = %+v", got.Summary)
	}
}
