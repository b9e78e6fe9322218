package predictor

import "math"

// regressor predicts a raw (unclipped) score from an encoded feature vector.
type regressor interface {
	predict(x []float64) float64
}

// squaredError is (pred - y)².
func squaredError(pred, y float64) float64 {
	d := pred - y
	return d * d
}

// meanSquaredError computes the average squared error of m over samples.
// Returns 0 if there are no samples.
func meanSquaredError(m regressor, samples []sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, s := range samples {
		total += squaredError(m.predict(s.x), s.y)
	}
	return total / float64(len(samples))
}

// rmse is the root of meanSquaredError.
func rmse(m regressor, samples []sample) float64 {
	return math.Sqrt(meanSquaredError(m, samples))
}
