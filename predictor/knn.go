package predictor

import "sort"

// knnModel predicts the mean target of the k nearest training samples by
// Euclidean distance. Equal distances keep training order.
type knnModel struct {
	train []sample
	k     int
}

func newKNN(train []sample, k int) *knnModel {
	return &knnModel{train: train, k: min(max(k, 1), len(train))}
}

func (m *knnModel) predict(x []float64) float64 {
	type neighbor struct {
		dist float64
		y    float64
	}
	ns := make([]neighbor, len(m.train))
	for i, s := range m.train {
		ns[i] = neighbor{dist: squaredDistance(x, s.x), y: s.y}
	}
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].dist < ns[j].dist })

	var sum float64
	for _, n := range ns[:m.k] {
		sum += n.y
	}
	return sum / float64(m.k)
}

func squaredDistance(a, b []float64) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}
