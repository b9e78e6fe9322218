package predictor

import (
	"context"
	"testing"
)

// BenchmarkFit200 measures training both candidates on 200 records.
func BenchmarkFit200(b *testing.B) {
	records := syntheticRecords(200, 42)
	tr := NewTrainer(TrainerConfig{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.Fit(context.Background(), records); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPredict measures a single prediction from a trained model.
func BenchmarkPredict(b *testing.B) {
	records := syntheticRecords(200, 42)
	m, err := NewTrainer(TrainerConfig{}).Fit(context.Background(), records)
	if err != nil {
		b.Fatal(err)
	}
	r := records[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Predict(r)
	}
}
