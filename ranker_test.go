package timetable

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

const epsilon = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f (diff %.6f)", name, got, want, math.Abs(got-want))
	}
}

func mustRank(t *testing.T, preds []SubjectPrediction, seed int64) Allocation {
	t.Helper()
	a, err := Rank(preds, seed)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	return a
}

// --- weakness ---

func TestNewSubjectPredictionWeakness(t *testing.T) {
	tests := []struct {
		predicted  float64
		difficulty int
		wantScore  float64
		wantWeak   float64
	}{
		{40, 8, 40, 240}, // (70-40)*8
		{85, 3, 85, 0},   // above pass mark
		{70, 10, 70, 0},  // exactly at pass mark
		{-15, 2, 0, 140}, // clipped to 0
		{130, 5, 100, 0}, // clipped to 100
		{69.5, 1, 69.5, 0.5},
	}
	for _, tt := range tests {
		p := NewSubjectPrediction("X", tt.predicted, tt.difficulty)
		assertFloat(t, "PredictedScore", p.PredictedScore, tt.wantScore)
		assertFloat(t, "WeaknessScore", p.WeaknessScore, tt.wantWeak)
		if p.WeaknessScore < 0 {
			t.Errorf("weakness(%v, %d) = %v < 0", tt.predicted, tt.difficulty, p.WeaknessScore)
		}
	}
}

// --- allocateDays ---

func TestAllocateDays(t *testing.T) {
	tests := []struct {
		w, total float64
		want     int
	}{
		{0, 0, 3},      // nothing weak → equal treatment
		{240, 240, 6},  // full share → round(12) clamped to 6
		{0, 240, 1},    // zero share → floor of 1
		{10, 100, 1},   // round(1.2) = 1
		{20, 100, 2},   // round(2.4) = 2
		{25, 100, 3},   // round(3.0) = 3
		{30, 100, 4},   // round(3.6) = 4
		{50, 100, 6},   // round(6.0) = 6
		{1, 1000, 1},   // round(0.012) = 0 → floor of 1
		{375, 1000, 5}, // round(4.5) = 5 (half away from zero)
	}
	for _, tt := range tests {
		if got := allocateDays(tt.w, tt.total); got != tt.want {
			t.Errorf("allocateDays(%v, %v) = %d, want %d", tt.w, tt.total, got, tt.want)
		}
	}
}

// --- Rank ---

func TestRankMathHistoryBoundary(t *testing.T) {
	preds := []SubjectPrediction{
		NewSubjectPrediction("Math", 40, 8),
		NewSubjectPrediction("History", 85, 3),
	}
	a := mustRank(t, preds, 42)

	assertFloat(t, "weakness(Math)", preds[0].WeaknessScore, 240)
	assertFloat(t, "weakness(History)", preds[1].WeaknessScore, 0)
	if got := a.Days("Math"); got != 6 {
		t.Errorf("Days(Math) = %d, want 6", got)
	}
	// History's proportional share is zero; the floor still gives it one slot.
	if got := a.Days("History"); got != 1 {
		t.Errorf("Days(History) = %d, want 1", got)
	}
	if len(a.Pool) != 7 {
		t.Errorf("len(Pool) = %d, want 7", len(a.Pool))
	}
	if got := a.Weakest(2); !reflect.DeepEqual(got, []string{"Math", "History"}) {
		t.Errorf("Weakest(2) = %v, want [Math History]", got)
	}
}

func TestRankAllStrongEqualDays(t *testing.T) {
	preds := []SubjectPrediction{
		NewSubjectPrediction("Physics", 75, 5),
		NewSubjectPrediction("Biology", 90, 9),
		NewSubjectPrediction("English", 70, 2),
	}
	a := mustRank(t, preds, 1)
	for _, s := range a.Subjects {
		if got := a.Days(s); got != EqualSubjectDays {
			t.Errorf("Days(%s) = %d, want %d", s, got, EqualSubjectDays)
		}
	}
	if len(a.Pool) != 9 {
		t.Errorf("len(Pool) = %d, want 9", len(a.Pool))
	}
	if a.TotalWeakness != 0 {
		t.Errorf("TotalWeakness = %v, want 0", a.TotalWeakness)
	}
}

func TestRankBoundsAndMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(8)
		preds := make([]SubjectPrediction, n)
		for i := range preds {
			preds[i] = NewSubjectPrediction(
				string(rune('A'+i)),
				rng.Float64()*100,
				1+rng.Intn(10),
			)
		}
		a := mustRank(t, preds, int64(trial))

		for _, p := range preds {
			d := a.Days(p.Subject)
			if d < MinSubjectDays || d > MaxSubjectDays {
				t.Fatalf("trial %d: Days(%s) = %d out of [1, 6]", trial, p.Subject, d)
			}
		}
		for _, p := range preds {
			for _, q := range preds {
				if p.WeaknessScore > q.WeaknessScore && a.Days(p.Subject) < a.Days(q.Subject) {
					t.Fatalf("trial %d: %s (w=%.2f, %d days) < %s (w=%.2f, %d days)",
						trial, p.Subject, p.WeaknessScore, a.Days(p.Subject),
						q.Subject, q.WeaknessScore, a.Days(q.Subject))
				}
			}
		}

		total := 0
		for _, s := range a.Subjects {
			total += a.Days(s)
		}
		if len(a.Pool) != total {
			t.Fatalf("trial %d: len(Pool) = %d, want %d", trial, len(a.Pool), total)
		}
	}
}

func TestRankPoolReproducible(t *testing.T) {
	preds := []SubjectPrediction{
		NewSubjectPrediction("Math", 30, 9),
		NewSubjectPrediction("Chemistry", 50, 6),
		NewSubjectPrediction("Physics", 60, 7),
		NewSubjectPrediction("English", 65, 2),
	}
	a1 := mustRank(t, preds, 42)
	a2 := mustRank(t, preds, 42)
	if !reflect.DeepEqual(a1.Pool, a2.Pool) {
		t.Errorf("same seed gave different pools:\n%v\n%v", a1.Pool, a2.Pool)
	}

	differs := false
	for seed := int64(0); seed < 10 && !differs; seed++ {
		b := mustRank(t, preds, seed)
		differs = !reflect.DeepEqual(a1.Pool, b.Pool)
	}
	if !differs {
		t.Error("pool order never changed across seeds")
	}
}

func TestRankRankedTiesKeepInputOrder(t *testing.T) {
	preds := []SubjectPrediction{
		NewSubjectPrediction("A", 60, 2), // 20
		NewSubjectPrediction("B", 50, 1), // 20
		NewSubjectPrediction("C", 10, 1), // 60
	}
	a := mustRank(t, preds, 0)
	if got := a.Weakest(3); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Errorf("Weakest(3) = %v, want [C A B]", got)
	}
	// Input slice is not reordered.
	if preds[0].Subject != "A" {
		t.Errorf("Rank mutated its input: %v", preds)
	}
}

func TestRankInvalidInput(t *testing.T) {
	tests := map[string][]SubjectPrediction{
		"empty":             nil,
		"no subject":        {{Subject: "", Difficulty: 5}},
		"duplicate":         {NewSubjectPrediction("Math", 40, 5), NewSubjectPrediction("Math", 60, 5)},
		"difficulty low":    {{Subject: "Math", Difficulty: 0}},
		"difficulty high":   {{Subject: "Math", Difficulty: 11}},
		"negative weakness": {{Subject: "Math", Difficulty: 5, WeaknessScore: -1}},
		"NaN weakness":      {{Subject: "Math", Difficulty: 5, WeaknessScore: math.NaN()}},
		"infinite weakness": {{Subject: "Math", Difficulty: 5, WeaknessScore: math.Inf(1)}},
	}
	for name, preds := range tests {
		_, err := Rank(preds, 42)
		if err == nil {
			t.Errorf("%s: Rank should fail", name)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: error should wrap ErrInvalidInput, got %v", name, err)
		}
	}
}
