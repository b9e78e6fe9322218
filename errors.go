package timetable

import "errors"

// Sentinel errors for the timetable package.
// Use errors.Is to check: errors.Is(err, timetable.ErrInvalidInput)
var (
	ErrInvalidInput         = errors.New("timetable: invalid input")
	ErrInvalidConfig        = errors.New("timetable: invalid schedule config")
	ErrInsufficientData     = errors.New("timetable: insufficient data")
	ErrSchedulingDegenerate = errors.New("timetable: degenerate schedule")
)
