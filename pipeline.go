package timetable

import (
	"context"
	"fmt"
)

// Minimum data needed before scores can be predicted.
const (
	MinRecords        = 5
	MinCompletedExams = 3
)

// RecordStore is the source of study records, oldest first.
type RecordStore interface {
	LoadAll(ctx context.Context) ([]StudyRecord, error)
}

// ScorePredictor predicts the final exam score for a record, in [0, 100].
type ScorePredictor interface {
	Predict(r StudyRecord) float64
}

// Trainer fits a ScorePredictor on completed records.
type Trainer interface {
	Train(ctx context.Context, records []StudyRecord) (ScorePredictor, error)
}

// CheckTrainingData returns an error wrapping ErrInsufficientData when there
// are fewer than MinRecords records or fewer than MinCompletedExams of them
// carry a final score.
func CheckTrainingData(records []StudyRecord) error {
	if len(records) < MinRecords {
		return fmt.Errorf("%w: need at least %d records, have %d",
			ErrInsufficientData, MinRecords, len(records))
	}
	completed := len(CompletedRecords(records))
	if completed < MinCompletedExams {
		return fmt.Errorf("%w: need at least %d completed exams, have %d",
			ErrInsufficientData, MinCompletedExams, completed)
	}
	return nil
}

// CompletedRecords returns the records with a final score, in order.
func CompletedRecords(records []StudyRecord) []StudyRecord {
	var out []StudyRecord
	for _, r := range records {
		if r.Completed() {
			out = append(out, r)
		}
	}
	return out
}

// LatestBySubject returns the most recent record of each subject, ordered by
// the subject's first appearance.
func LatestBySubject(records []StudyRecord) []StudyRecord {
	index := make(map[string]int)
	var out []StudyRecord
	for _, r := range records {
		if i, ok := index[r.Subject]; ok {
			out[i] = r
			continue
		}
		index[r.Subject] = len(out)
		out = append(out, r)
	}
	return out
}

// PredictSubjects predicts one score per distinct subject from the subject's
// most recent record and derives its weakness.
func PredictSubjects(records []StudyRecord, p ScorePredictor) ([]SubjectPrediction, error) {
	latest := LatestBySubject(records)
	if len(latest) == 0 {
		return nil, fmt.Errorf("%w: no records to predict from", ErrInsufficientData)
	}
	out := make([]SubjectPrediction, 0, len(latest))
	for _, r := range latest {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		out = append(out, NewSubjectPrediction(r.Subject, p.Predict(r), r.Difficulty))
	}
	return out, nil
}

// PlanOptions configures Plan.
type PlanOptions struct {
	Schedule ScheduleConfig
	Seed     int64
}

// PlanResult carries every intermediate product of a planning run.
type PlanResult struct {
	Predictions []SubjectPrediction
	Allocation  Allocation
	Week        WeekSchedule
}

// Plan runs the whole pipeline: load records, check there is enough data,
// train a predictor, predict each subject, rank and build the week.
func Plan(ctx context.Context, store RecordStore, trainer Trainer, opts PlanOptions) (PlanResult, error) {
	records, err := store.LoadAll(ctx)
	if err != nil {
		return PlanResult{}, fmt.Errorf("timetable: load records: %w", err)
	}
	if err := CheckTrainingData(records); err != nil {
		return PlanResult{}, err
	}

	predictor, err := trainer.Train(ctx, CompletedRecords(records))
	if err != nil {
		return PlanResult{}, fmt.Errorf("timetable: train predictor: %w", err)
	}

	preds, err := PredictSubjects(records, predictor)
	if err != nil {
		return PlanResult{}, err
	}
	alloc, err := Rank(preds, opts.Seed)
	if err != nil {
		return PlanResult{}, err
	}
	week, err := Build(alloc, opts.Schedule)
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{Predictions: preds, Allocation: alloc, Week: week}, nil
}
