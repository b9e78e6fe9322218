package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/sky-flux/timetable"
)

var (
	// ErrEmptyRecords is returned when no completed records are provided.
	ErrEmptyRecords = errors.New("predictor: no completed records provided")

	// ErrInsufficientData is returned when there are too few completed
	// records to hold out a test split.
	ErrInsufficientData = errors.New("predictor: insufficient completed records for training")
)

// MinTrainingRecords is the smallest number of completed records Fit accepts:
// one to train on and one to evaluate.
const MinTrainingRecords = 2

// Compile-time interface checks.
var (
	_ timetable.Trainer        = (*Trainer)(nil)
	_ timetable.ScorePredictor = (*Model)(nil)
)

// Kind identifies a candidate regression model.
type Kind int

const (
	Linear    Kind = iota + 1 // Linear regression trained with Adam.
	Forest                    // Random forest of regression trees.
	Neighbors                 // k-nearest-neighbours average.
)

// String returns "linear", "forest", "knn" or "Kind(n)".
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Forest:
		return "forest"
	case Neighbors:
		return "knn"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < Linear || k > Neighbors {
		return nil, fmt.Errorf("predictor: invalid kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

// TrainerConfig configures model training.
// Zero values are replaced with sensible defaults.
type TrainerConfig struct {
	Epochs       int     `json:"epochs" yaml:"epochs"`               // default 300
	BatchSize    int     `json:"batch_size" yaml:"batch_size"`       // default 32
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"` // default 0.1
	TestFraction float64 `json:"test_fraction" yaml:"test_fraction"` // default 0.2, must be < 1
	Trees        int     `json:"trees" yaml:"trees"`                 // default 100
	MaxDepth     int     `json:"max_depth" yaml:"max_depth"`         // default 10
	Neighbors    int     `json:"neighbors" yaml:"neighbors"`         // default 5
	Seed         int64   `json:"seed" yaml:"seed"`                   // default 42
}

func (c TrainerConfig) withDefaults() TrainerConfig {
	if c.Epochs <= 0 {
		c.Epochs = 300
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 32
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.1
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		c.TestFraction = 0.2
	}
	if c.Trees <= 0 {
		c.Trees = 100
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 10
	}
	if c.Neighbors <= 0 {
		c.Neighbors = 5
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// Trainer fits score predictors on completed study records.
type Trainer struct {
	cfg TrainerConfig
}

// NewTrainer creates a Trainer with the given config.
// Zero-valued fields receive defaults: Epochs=300, BatchSize=32,
// LearningRate=0.1, TestFraction=0.2, Trees=100, MaxDepth=10, Neighbors=5,
// Seed=42.
func NewTrainer(cfg TrainerConfig) *Trainer {
	return &Trainer{cfg: cfg.withDefaults()}
}

// Config returns the effective config.
func (t *Trainer) Config() TrainerConfig {
	return t.cfg
}

// Report describes how the chosen model was selected.
type Report struct {
	Chosen        Kind    `json:"chosen"`
	RMSE          float64 `json:"rmse"`
	LinearRMSE    float64 `json:"linear_rmse"`
	ForestRMSE    float64 `json:"forest_rmse"`
	NeighborsRMSE float64 `json:"neighbors_rmse"`
	TrainSize     int     `json:"train_size"`
	TestSize      int     `json:"test_size"`
}

// Model is a trained score predictor.
type Model struct {
	enc    *encoder
	reg    regressor
	report Report
}

// Predict returns the predicted final score for r, clipped to [0, 100].
func (m *Model) Predict(r timetable.StudyRecord) float64 {
	y := m.reg.predict(m.enc.encode(r))
	if math.IsNaN(y) {
		return 0
	}
	return math.Max(0, math.Min(100, y))
}

// Report returns the evaluation that selected this model.
func (m *Model) Report() Report {
	return m.report
}

// Train implements timetable.Trainer.
func (t *Trainer) Train(ctx context.Context, records []timetable.StudyRecord) (timetable.ScorePredictor, error) {
	m, err := t.Fit(ctx, records)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Fit trains a linear regressor, a random forest and a k-nearest-neighbours
// regressor on a seeded split of the completed records, concurrently, and
// returns the one with the lowest RMSE on the held-out part. Ties go to the
// linear model, then the forest.
//
// Records without a final score are ignored. Returns ErrEmptyRecords if no
// completed record remains, ErrInsufficientData if fewer than
// MinTrainingRecords remain, or an error wrapping timetable.ErrInvalidInput
// for an out-of-range record. The context can be used to cancel training.
func (t *Trainer) Fit(ctx context.Context, records []timetable.StudyRecord) (*Model, error) {
	var completed []timetable.StudyRecord
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.Completed() {
			completed = append(completed, r)
		}
	}
	if len(completed) == 0 {
		return nil, ErrEmptyRecords
	}
	if len(completed) < MinTrainingRecords {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(completed), MinTrainingRecords)
	}

	trainRecs, testRecs := splitRecords(completed, t.cfg.TestFraction, rand.New(rand.NewSource(t.cfg.Seed)))
	enc := fitEncoder(trainRecs)
	train := enc.encodeAll(trainRecs)
	test := enc.encodeAll(testRecs)

	var (
		lin    *linearModel
		forest *forestModel
		knn    *knnModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := trainLinear(gctx, train, enc.dim(), t.cfg)
		if err != nil {
			return fmt.Errorf("predictor: train linear: %w", err)
		}
		lin = m
		return nil
	})
	g.Go(func() error {
		m, err := trainForest(gctx, train, t.cfg)
		if err != nil {
			return fmt.Errorf("predictor: train forest: %w", err)
		}
		forest = m
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		knn = newKNN(train, t.cfg.Neighbors)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := Report{
		LinearRMSE:    rmse(lin, test),
		ForestRMSE:    rmse(forest, test),
		NeighborsRMSE: rmse(knn, test),
		TrainSize:     len(train),
		TestSize:      len(test),
	}
	candidates := []struct {
		kind Kind
		reg  regressor
		rmse float64
	}{
		{Linear, lin, report.LinearRMSE},
		{Forest, forest, report.ForestRMSE},
		{Neighbors, knn, report.NeighborsRMSE},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.rmse < best.rmse {
			best = c
		}
	}
	report.Chosen, report.RMSE = best.kind, best.rmse
	return &Model{enc: enc, reg: best.reg, report: report}, nil
}
