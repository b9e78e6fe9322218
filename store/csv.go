package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/sky-flux/timetable"
	"github.com/sky-flux/timetable/internal/logger"
)

// Columns is the CSV header, in file order.
var Columns = []string{"subject", "study_hours", "previous_score", "days_before_exam", "difficulty", "final_score"}

// ErrMalformedCSV is returned when the file header or a row cannot be parsed.
var ErrMalformedCSV = errors.New("store: malformed csv")

// CSVStore keeps records in a single CSV file. A missing file reads as empty
// and is created with a header on the first Add.
type CSVStore struct {
	path string
	log  *logger.Logger
	mu   sync.Mutex
}

// NewCSVStore returns a store backed by the file at path.
func NewCSVStore(path string, baseLog *logger.Logger) *CSVStore {
	return &CSVStore{path: path, log: baseLog.With("store", "csv", "path", path)}
}

// LoadAll reads every record in file order.
func (s *CSVStore) LoadAll(ctx context.Context) ([]timetable.StudyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no record file yet")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.log.Debug("loaded records", "count", len(records))
	return records, nil
}

// Add appends records to the file, writing the header first if the file is
// new or empty.
func (s *CSVStore) Add(ctx context.Context, records ...timetable.StudyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateAll(records); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("store: open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("store: stat %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("store: write header: %w", err)
		}
	}
	for _, r := range records {
		if err := w.Write(formatRecord(r)); err != nil {
			return fmt.Errorf("store: write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store: flush %s: %w", s.path, err)
	}
	s.log.Info("added records", "count", len(records))
	return nil
}

// Clear truncates the file to just the header.
func (s *CSVStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("store: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store: flush %s: %w", s.path, err)
	}
	s.log.Info("cleared records")
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *CSVStore) Close() error { return nil }

// readRecords parses a CSV stream whose first row names the columns. Columns
// may appear in any order; unknown columns are ignored.
func readRecords(r io.Reader) ([]timetable.StudyRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedCSV, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range Columns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedCSV, name)
		}
	}
	cr.FieldsPerRecord = len(header)

	var out []timetable.StudyRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		rec, err := parseRecord(row, col)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		out = append(out, rec)
	}
}

func parseRecord(row []string, col map[string]int) (timetable.StudyRecord, error) {
	field := func(name string) string { return strings.TrimSpace(row[col[name]]) }

	var (
		r   timetable.StudyRecord
		err error
	)
	r.Subject = field("subject")
	if r.StudyHours, err = strconv.ParseFloat(field("study_hours"), 64); err != nil {
		return r, fmt.Errorf("study_hours: %w", err)
	}
	if r.PreviousScore, err = strconv.ParseFloat(field("previous_score"), 64); err != nil {
		return r, fmt.Errorf("previous_score: %w", err)
	}
	if r.DaysBeforeExam, err = strconv.Atoi(field("days_before_exam")); err != nil {
		return r, fmt.Errorf("days_before_exam: %w", err)
	}
	if r.Difficulty, err = strconv.Atoi(field("difficulty")); err != nil {
		return r, fmt.Errorf("difficulty: %w", err)
	}
	// An empty final score means the exam has not been taken.
	if v := field("final_score"); v != "" {
		if r.FinalScore, err = strconv.ParseFloat(v, 64); err != nil {
			return r, fmt.Errorf("final_score: %w", err)
		}
	}
	return r, nil
}

func formatRecord(r timetable.StudyRecord) []string {
	return []string{
		r.Subject,
		strconv.FormatFloat(r.StudyHours, 'f', -1, 64),
		strconv.FormatFloat(r.PreviousScore, 'f', -1, 64),
		strconv.Itoa(r.DaysBeforeExam),
		strconv.Itoa(r.Difficulty),
		strconv.FormatFloat(r.FinalScore, 'f', -1, 64),
	}
}
