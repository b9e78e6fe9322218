// Package predictor trains final-exam score predictors from study records.
//
// [Trainer.Fit] splits the completed records 80/20 with a fixed seed and
// fits three candidates concurrently:
//
//   - a linear regression over one-hot subject columns and standardized
//     numeric columns, trained by mini-batch gradient descent with the
//     [Adam] optimizer and a [CosineAnnealing] learning rate schedule;
//   - a random forest of regression trees grown on bootstrap resamples;
//   - a k-nearest-neighbours regressor over the same features.
//
// The candidate with the lowest RMSE on the held-out records is returned as a
// [Model], which implements timetable.ScorePredictor and clips its output
// to [0, 100].
//
// # Usage
//
//	tr := predictor.NewTrainer(predictor.TrainerConfig{})
//	model, err := tr.Fit(ctx, records)
//	score := model.Predict(latest)
//
// # Data Requirements
//
// At least MinTrainingRecords completed records (final score > 0). The
// timetable pipeline additionally requires timetable.MinCompletedExams.
package predictor
