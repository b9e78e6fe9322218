package timetable

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Allocation is the result of ranking: how many weekly study slots each
// subject gets and the shuffled pool of subject tokens Build draws from.
type Allocation struct {
	// Subjects in input order.
	Subjects []string `json:"subjects"`
	// Slots maps each subject to its weekly slot count in [1, 6].
	Slots map[string]int `json:"slots"`
	// Pool holds each subject repeated Slots[subject] times, shuffled.
	Pool []string `json:"pool"`
	// Ranked holds the predictions ordered weakest first; ties keep input order.
	Ranked []SubjectPrediction `json:"ranked"`
	// TotalWeakness is the sum of all weakness scores.
	TotalWeakness float64 `json:"total_weakness"`
}

// Days returns the number of slots allocated to subject, 0 if unknown.
func (a Allocation) Days(subject string) int {
	return a.Slots[subject]
}

// Weakest returns up to n subjects ordered by descending weakness.
func (a Allocation) Weakest(n int) []string {
	n = min(n, len(a.Ranked))
	out := make([]string, 0, n)
	for _, p := range a.Ranked[:n] {
		out = append(out, p.Subject)
	}
	return out
}

// Empty reports whether the allocation has no subjects to schedule.
func (a Allocation) Empty() bool {
	return len(a.Subjects) == 0 || len(a.Pool) == 0
}

// Rank converts predictions into a weekly slot allocation.
//
// With total weakness W, a subject with weakness w gets
// clamp(round(w/W * StudyDays * WeightMultiplier), 1, 6) slots; when W is 0
// every subject gets EqualSubjectDays. The pool order is a permutation drawn
// from a source seeded with seed, so equal inputs give equal pools.
//
// Returns ErrInvalidInput if predictions is empty, a subject is empty or
// repeated, a difficulty is outside [1, 10], or a weakness score is negative.
func Rank(predictions []SubjectPrediction, seed int64) (Allocation, error) {
	if err := validatePredictions(predictions); err != nil {
		return Allocation{}, err
	}

	var total float64
	for _, p := range predictions {
		total += p.WeaknessScore
	}

	a := Allocation{
		Subjects:      make([]string, 0, len(predictions)),
		Slots:         make(map[string]int, len(predictions)),
		TotalWeakness: total,
	}
	for _, p := range predictions {
		a.Subjects = append(a.Subjects, p.Subject)
		a.Slots[p.Subject] = allocateDays(p.WeaknessScore, total)
	}

	for _, s := range a.Subjects {
		for i := 0; i < a.Slots[s]; i++ {
			a.Pool = append(a.Pool, s)
		}
	}
	shufflePool(a.Pool, rand.New(rand.NewSource(seed)))

	a.Ranked = make([]SubjectPrediction, len(predictions))
	copy(a.Ranked, predictions)
	sort.SliceStable(a.Ranked, func(i, j int) bool {
		return a.Ranked[i].WeaknessScore > a.Ranked[j].WeaknessScore
	})

	return a, nil
}

// allocateDays maps a subject's share of the total weakness to a slot count.
func allocateDays(w, total float64) int {
	if total == 0 {
		return EqualSubjectDays
	}
	proportion := w / total
	days := int(math.Round(proportion * StudyDays * WeightMultiplier))
	return min(max(days, MinSubjectDays), MaxSubjectDays)
}

func validatePredictions(predictions []SubjectPrediction) error {
	if len(predictions) == 0 {
		return fmt.Errorf("%w: no predictions", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(predictions))
	for i, p := range predictions {
		if p.Subject == "" {
			return fmt.Errorf("%w: prediction %d has no subject", ErrInvalidInput, i)
		}
		if seen[p.Subject] {
			return fmt.Errorf("%w: duplicate subject %q", ErrInvalidInput, p.Subject)
		}
		seen[p.Subject] = true
		if p.Difficulty < MinDifficulty || p.Difficulty > MaxDifficulty {
			return fmt.Errorf("%w: %s: difficulty %d out of [%d, %d]",
				ErrInvalidInput, p.Subject, p.Difficulty, MinDifficulty, MaxDifficulty)
		}
		if p.WeaknessScore < 0 || math.IsNaN(p.WeaknessScore) || math.IsInf(p.WeaknessScore, 0) {
			return fmt.Errorf("%w: %s: weakness score %v must be a non-negative number",
				ErrInvalidInput, p.Subject, p.WeaknessScore)
		}
	}
	return nil
}
