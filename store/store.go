// Package store persists study records.
//
// Two backends are provided: [CSVStore] keeps records in a CSV file with the
// columns subject, study_hours, previous_score, days_before_exam, difficulty
// and final_score; [SQLStore] keeps them in a SQLite database through GORM.
// Both return records oldest first and implement timetable.RecordStore.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sky-flux/timetable"
	"github.com/sky-flux/timetable/internal/logger"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Store is a persistent, append-only list of study records.
type Store interface {
	timetable.RecordStore
	// Add validates and appends records in order.
	Add(ctx context.Context, records ...timetable.StudyRecord) error
	// Clear removes every record.
	Clear(ctx context.Context) error
	Close() error
}

// Compile-time interface checks.
var (
	_ Store = (*CSVStore)(nil)
	_ Store = (*SQLStore)(nil)
)

// Drivers accepted by Open.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Open opens the store for driver at path.
func Open(driver, path string, log *logger.Logger) (Store, error) {
	switch strings.ToLower(driver) {
	case DriverCSV, "":
		return NewCSVStore(path, log), nil
	case DriverSQLite:
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLStore(db, log)
		if err != nil {
			_ = closeDB(db)
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

func validateAll(records []timetable.StudyRecord) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
