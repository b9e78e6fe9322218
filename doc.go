// Package timetable builds weekly study timetables that favour weak subjects.
//
// A scheduling run has two steps. [Rank] turns predicted exam scores into
// weakness scores and a per-subject slot allocation, and [Build] places the
// allocated study sessions across Monday to Saturday around fixed meals and
// a morning routine. Sunday follows a fixed revision and assessment template.
//
// Basic usage:
//
//	preds := []timetable.SubjectPrediction{
//	    timetable.NewSubjectPrediction("Math", 40, 8),
//	    timetable.NewSubjectPrediction("History", 85, 3),
//	}
//	alloc, err := timetable.Rank(preds, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	week, err := timetable.Build(alloc, timetable.DefaultScheduleConfig())
//
// Score prediction lives in the timetable/predictor subpackage and record
// persistence in timetable/store.
package timetable
