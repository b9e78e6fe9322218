package timetable

import (
	"fmt"
	"math"
)

// StudyRecord is one submitted observation about a subject.
// FinalScore is 0 until the exam has been taken.
type StudyRecord struct {
	Subject        string  `json:"subject"`
	StudyHours     float64 `json:"study_hours"`
	PreviousScore  float64 `json:"previous_score"`
	DaysBeforeExam int     `json:"days_before_exam"`
	Difficulty     int     `json:"difficulty"`
	FinalScore     float64 `json:"final_score"`
}

// Completed reports whether the record carries a final exam score.
func (r StudyRecord) Completed() bool {
	return r.FinalScore > 0
}

// Validate checks field ranges. Errors wrap ErrInvalidInput.
func (r StudyRecord) Validate() error {
	switch {
	case r.Subject == "":
		return fmt.Errorf("%w: record subject is empty", ErrInvalidInput)
	case r.StudyHours < 0 || math.IsNaN(r.StudyHours):
		return fmt.Errorf("%w: %s: study hours %v must be >= 0", ErrInvalidInput, r.Subject, r.StudyHours)
	case !inScoreRange(r.PreviousScore):
		return fmt.Errorf("%w: %s: previous score %v out of [0, 100]", ErrInvalidInput, r.Subject, r.PreviousScore)
	case r.DaysBeforeExam <= 0:
		return fmt.Errorf("%w: %s: days before exam %d must be positive", ErrInvalidInput, r.Subject, r.DaysBeforeExam)
	case r.Difficulty < MinDifficulty || r.Difficulty > MaxDifficulty:
		return fmt.Errorf("%w: %s: difficulty %d out of [%d, %d]",
			ErrInvalidInput, r.Subject, r.Difficulty, MinDifficulty, MaxDifficulty)
	case !inScoreRange(r.FinalScore):
		return fmt.Errorf("%w: %s: final score %v out of [0, 100]", ErrInvalidInput, r.Subject, r.FinalScore)
	}
	return nil
}

func inScoreRange(v float64) bool {
	return v >= 0 && v <= 100
}

// clipScore clamps a predicted score to [0, 100].
func clipScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 100)
}

// SubjectPrediction is a subject's predicted exam score and the weakness
// derived from it. It exists only for the duration of a scheduling run.
type SubjectPrediction struct {
	Subject        string  `json:"subject"`
	PredictedScore float64 `json:"predicted_score"`
	Difficulty     int     `json:"difficulty"`
	WeaknessScore  float64 `json:"weakness_score"`
}

// NewSubjectPrediction clips predicted to [0, 100] and derives the weakness
// score max(0, PassMark - predicted) * difficulty.
func NewSubjectPrediction(subject string, predicted float64, difficulty int) SubjectPrediction {
	p := clipScore(predicted)
	return SubjectPrediction{
		Subject:        subject,
		PredictedScore: p,
		Difficulty:     difficulty,
		WeaknessScore:  weakness(p, difficulty),
	}
}

func weakness(predicted float64, difficulty int) float64 {
	return math.Max(0, PassMark-predicted) * float64(difficulty)
}
