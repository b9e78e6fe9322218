package predictor

import (
	"context"
	"math"
	"math/rand"
)

// linearModel is y = w·x + b, with the bias stored as the last weight.
type linearModel struct {
	w []float64
}

func (m *linearModel) predict(x []float64) float64 {
	y := m.w[len(x)]
	for i, v := range x {
		y += m.w[i] * v
	}
	return y
}

// gradient returns the gradient of the batch MSE with respect to every
// weight, the bias last.
func (m *linearModel) gradient(batch []sample) []float64 {
	g := make([]float64, len(m.w))
	if len(batch) == 0 {
		return g
	}
	scale := 2 / float64(len(batch))
	bias := len(m.w) - 1
	for _, s := range batch {
		d := (m.predict(s.x) - s.y) * scale
		for i, v := range s.x {
			g[i] += d * v
		}
		g[bias] += d
	}
	return g
}

// trainLinear fits a linear model with mini-batch Adam and a cosine annealing
// learning rate. The bias starts at the mean target so the optimizer only has
// to learn the feature weights. The weights with the lowest training loss
// seen at the end of any epoch are returned.
func trainLinear(ctx context.Context, train []sample, dim int, cfg TrainerConfig) (*linearModel, error) {
	m := &linearModel{w: make([]float64, dim+1)}
	for _, s := range train {
		m.w[dim] += s.y / float64(len(train))
	}

	batches := int(math.Ceil(float64(len(train)) / float64(cfg.BatchSize)))
	adam := NewAdam(cfg.LearningRate, len(m.w))
	ca := NewCosineAnnealing(cfg.LearningRate, batches*cfg.Epochs)
	rng := rand.New(rand.NewSource(cfg.Seed))

	order := make([]sample, len(train))
	copy(order, train)

	best := append([]float64(nil), m.w...)
	bestLoss := meanSquaredError(m, train)

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for start := 0; start < len(order); start += cfg.BatchSize {
			batch := order[start:min(start+cfg.BatchSize, len(order))]
			adam.SetLR(ca.LR())
			adam.Update(m.w, m.gradient(batch))
			ca.Step()
		}

		if loss := meanSquaredError(m, train); loss < bestLoss {
			bestLoss = loss
			copy(best, m.w)
		}
	}

	m.w = best
	return m, nil
}
