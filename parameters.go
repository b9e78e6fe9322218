package timetable

import (
	"fmt"
	"time"
)

// Ranking constants.
const (
	// PassMark is the predicted score at or above which a subject has no weakness.
	PassMark = 70.0

	// StudyDays is the number of generated days, Monday to Saturday.
	StudyDays = 6

	// WeightMultiplier over-weights weak subjects in the allocation.
	WeightMultiplier = 2

	MinSubjectDays   = 1
	MaxSubjectDays   = 6
	EqualSubjectDays = 3
	MinDifficulty    = 1
	MaxDifficulty    = 10
)

// Placement constants.
const (
	// SessionCap is the hard ceiling on study sessions per weekday.
	SessionCap = 4

	// SameDayRepeatCap is the soft ceiling on one subject's sessions per weekday.
	SameDayRepeatCap = 2

	// DrawRetryBudget bounds the pool draws per weekday.
	DrawRetryBudget = 20

	// MealLookahead is how close to a meal a session may start before the
	// meal is pulled forward.
	MealLookahead = 30 * time.Minute

	// MinSelfStudyGap is the shortest gap before dinner that gets a
	// self-study block instead of free time.
	MinSelfStudyGap = time.Hour

	SundayRevision   = 90 * time.Minute
	SundayBreak      = 30 * time.Minute
	SundayAssessment = 2 * time.Hour
)

// MealTime is a fixed-time meal anchor.
type MealTime struct {
	At       Clock         `json:"at" yaml:"at"`
	Duration time.Duration `json:"duration" yaml:"duration"` // zero → default for the meal
}

// End returns the time the meal finishes.
func (m MealTime) End() Clock {
	return m.At.Add(m.Duration)
}

func (m MealTime) slot() TimeSlot {
	return TimeSlot{Start: m.At, End: m.End()}
}

// ScheduleConfig holds the daily constraints for Build.
// Clock fields are used as given; start from DefaultScheduleConfig.
// Zero durations and a zero MaxSessionsPerDay are replaced with defaults.
type ScheduleConfig struct {
	Wake              Clock         `json:"wake" yaml:"wake"`
	Sleep             Clock         `json:"sleep" yaml:"sleep"` // <= Wake → following day
	Break             time.Duration `json:"break" yaml:"break"`
	MaxSessionsPerDay int           `json:"max_sessions_per_day" yaml:"max_sessions_per_day"` // capped at SessionCap
	SessionDuration   time.Duration `json:"session_duration" yaml:"session_duration"`
	Breakfast         MealTime      `json:"breakfast" yaml:"breakfast"`
	Lunch             MealTime      `json:"lunch" yaml:"lunch"`
	Dinner            MealTime      `json:"dinner" yaml:"dinner"`
	MorningRoutine    time.Duration `json:"morning_routine" yaml:"morning_routine"`
}

// DefaultScheduleConfig returns a 06:00 to 23:00 day with three meals,
// one-hour sessions and half-hour breaks.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Wake:              At(6, 0),
		Sleep:             At(23, 0),
		Break:             30 * time.Minute,
		MaxSessionsPerDay: 6,
		SessionDuration:   time.Hour,
		Breakfast:         MealTime{At: At(7, 30), Duration: 30 * time.Minute},
		Lunch:             MealTime{At: At(13, 0), Duration: 60 * time.Minute},
		Dinner:            MealTime{At: At(20, 0), Duration: 45 * time.Minute},
		MorningRoutine:    45 * time.Minute,
	}
}

// normalize fills zero values with defaults, rejects negative values and
// moves an overnight sleep time, and any meal before wake, to the following
// day.
func (c ScheduleConfig) normalize() (ScheduleConfig, error) {
	def := DefaultScheduleConfig()

	durations := []struct {
		name string
		v    *time.Duration
		def  time.Duration
	}{
		{"break", &c.Break, def.Break},
		{"session_duration", &c.SessionDuration, def.SessionDuration},
		{"breakfast.duration", &c.Breakfast.Duration, def.Breakfast.Duration},
		{"lunch.duration", &c.Lunch.Duration, def.Lunch.Duration},
		{"dinner.duration", &c.Dinner.Duration, def.Dinner.Duration},
		{"morning_routine", &c.MorningRoutine, def.MorningRoutine},
	}
	for _, d := range durations {
		if *d.v < 0 {
			return c, fmt.Errorf("%w: %s %v must not be negative", ErrInvalidConfig, d.name, *d.v)
		}
		if *d.v == 0 {
			*d.v = d.def
		}
	}

	if c.MaxSessionsPerDay < 0 {
		return c, fmt.Errorf("%w: max_sessions_per_day %d must not be negative", ErrInvalidConfig, c.MaxSessionsPerDay)
	}
	if c.MaxSessionsPerDay == 0 {
		c.MaxSessionsPerDay = def.MaxSessionsPerDay
	}

	clocks := []struct {
		name string
		v    Clock
	}{
		{"wake", c.Wake},
		{"sleep", c.Sleep},
		{"breakfast.at", c.Breakfast.At},
		{"lunch.at", c.Lunch.At},
		{"dinner.at", c.Dinner.At},
	}
	for _, k := range clocks {
		if k.v < 0 || k.v >= Clock(day) {
			return c, fmt.Errorf("%w: %s %v outside a single day", ErrInvalidConfig, k.name, time.Duration(k.v))
		}
	}

	if c.Sleep <= c.Wake {
		c.Sleep = c.Sleep.Add(day)
		// Meals before wake fall after midnight.
		for _, m := range []*MealTime{&c.Breakfast, &c.Lunch, &c.Dinner} {
			if m.At < c.Wake {
				m.At = m.At.Add(day)
			}
		}
	}
	return c, nil
}

// sessionsPerDay returns the effective number of study sessions per weekday.
func (c ScheduleConfig) sessionsPerDay() int {
	return min(c.MaxSessionsPerDay, SessionCap)
}
