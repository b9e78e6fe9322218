package predictor

import (
	"math"
	"math/rand"

	"github.com/sky-flux/timetable"
)

// numericFeatures is the number of standardized numeric columns:
// study hours, previous score, days before exam and difficulty.
const numericFeatures = 4

// sample is one encoded training row.
type sample struct {
	x []float64
	y float64
}

// encoder maps a record to a feature vector: one-hot subject columns
// followed by the standardized numeric columns. Subjects unseen during
// fitting encode as all zeros.
type encoder struct {
	subjects []string
	index    map[string]int
	mean     [numericFeatures]float64
	std      [numericFeatures]float64
}

func numeric(r timetable.StudyRecord) [numericFeatures]float64 {
	return [numericFeatures]float64{
		r.StudyHours,
		r.PreviousScore,
		float64(r.DaysBeforeExam),
		float64(r.Difficulty),
	}
}

// fitEncoder learns the subject vocabulary and per-column mean and standard
// deviation from records. A constant column gets std 1 so it encodes as 0.
func fitEncoder(records []timetable.StudyRecord) *encoder {
	e := &encoder{index: make(map[string]int)}
	for _, r := range records {
		if _, ok := e.index[r.Subject]; !ok {
			e.index[r.Subject] = len(e.subjects)
			e.subjects = append(e.subjects, r.Subject)
		}
	}

	n := float64(len(records))
	for _, r := range records {
		f := numeric(r)
		for j := range f {
			e.mean[j] += f[j] / n
		}
	}
	for _, r := range records {
		f := numeric(r)
		for j := range f {
			d := f[j] - e.mean[j]
			e.std[j] += d * d / n
		}
	}
	for j := range e.std {
		e.std[j] = math.Sqrt(e.std[j])
		if e.std[j] < 1e-12 {
			e.std[j] = 1
		}
	}
	return e
}

// dim returns the length of an encoded feature vector.
func (e *encoder) dim() int {
	return len(e.subjects) + numericFeatures
}

func (e *encoder) encode(r timetable.StudyRecord) []float64 {
	x := make([]float64, e.dim())
	if i, ok := e.index[r.Subject]; ok {
		x[i] = 1
	}
	f := numeric(r)
	off := len(e.subjects)
	for j := range f {
		x[off+j] = (f[j] - e.mean[j]) / e.std[j]
	}
	return x
}

func (e *encoder) encodeAll(records []timetable.StudyRecord) []sample {
	out := make([]sample, len(records))
	for i, r := range records {
		out[i] = sample{x: e.encode(r), y: r.FinalScore}
	}
	return out
}

// splitRecords shuffles a copy of records with rng and holds out
// ceil(n·testFraction) of them, at least one, for evaluation. The training
// part always keeps at least one record.
func splitRecords(records []timetable.StudyRecord, testFraction float64, rng *rand.Rand) (train, test []timetable.StudyRecord) {
	shuffled := make([]timetable.StudyRecord, len(records))
	copy(shuffled, records)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(math.Ceil(float64(len(shuffled)) * testFraction))
	nTest = min(max(nTest, 1), len(shuffled)-1)
	return shuffled[nTest:], shuffled[:nTest]
}
