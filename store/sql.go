package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sky-flux/timetable"
	"github.com/sky-flux/timetable/internal/logger"
)

// recordRow is the study_records table.
type recordRow struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey"`
	Seq            int64     `gorm:"not null;uniqueIndex"`
	Subject        string    `gorm:"not null;index"`
	StudyHours     float64   `gorm:"not null"`
	PreviousScore  float64   `gorm:"not null"`
	DaysBeforeExam int       `gorm:"not null"`
	Difficulty     int       `gorm:"not null"`
	FinalScore     float64   `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime"`
}

func (recordRow) TableName() string { return "study_records" }

func (r recordRow) record() timetable.StudyRecord {
	return timetable.StudyRecord{
		Subject:        r.Subject,
		StudyHours:     r.StudyHours,
		PreviousScore:  r.PreviousScore,
		DaysBeforeExam: r.DaysBeforeExam,
		Difficulty:     r.Difficulty,
		FinalScore:     r.FinalScore,
	}
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
// Use ":memory:" for a private in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", path, err)
	}
	return db, nil
}

// SQLStore keeps records in a GORM database. Insertion order is kept in a
// monotonically increasing sequence column.
type SQLStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSQLStore migrates the record table and returns a store on db.
func NewSQLStore(db *gorm.DB, baseLog *logger.Logger) (*SQLStore, error) {
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &SQLStore{db: db, log: baseLog.With("store", "sqlite")}, nil
}

// LoadAll returns every record in insertion order.
func (s *SQLStore) LoadAll(ctx context.Context) ([]timetable.StudyRecord, error) {
	var rows []recordRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load records: %w", err)
	}
	out := make([]timetable.StudyRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	s.log.Debug("loaded records", "count", len(out))
	return out, nil
}

// Add inserts records in a single transaction.
func (s *SQLStore) Add(ctx context.Context, records ...timetable.StudyRecord) error {
	if err := validateAll(records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&recordRow{}).Select("COALESCE(MAX(seq), 0)").Scan(&last).Error; err != nil {
			return err
		}
		rows := make([]recordRow, len(records))
		for i, r := range records {
			rows[i] = recordRow{
				ID:             uuid.New(),
				Seq:            last + int64(i) + 1,
				Subject:        r.Subject,
				StudyHours:     r.StudyHours,
				PreviousScore:  r.PreviousScore,
				DaysBeforeExam: r.DaysBeforeExam,
				Difficulty:     r.Difficulty,
				FinalScore:     r.FinalScore,
			}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("store: add records: %w", err)
	}
	s.log.Info("added records", "count", len(records))
	return nil
}

// Clear deletes every record.
func (s *SQLStore) Clear(ctx context.Context) error {
	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&recordRow{})
	if res.Error != nil {
		return fmt.Errorf("store: clear records: %w", res.Error)
	}
	s.log.Info("cleared records", "count", res.RowsAffected)
	return nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return closeDB(s.db)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
