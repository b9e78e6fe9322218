package timetable

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Block labels.
const (
	LabelMorningRoutine = "Morning Routine"
	LabelBreakfast      = "Breakfast"
	LabelLunch          = "Lunch"
	LabelDinner         = "Dinner"
	LabelBreak          = "Break"
	LabelSelfStudy      = "Self-Study / Review"
	LabelRevision       = "Revision: "
	LabelAssessment     = "Mock Test / Practice Problems"
	LabelLeisure        = "Leisure / Relaxation"
	LabelFree           = "Free Time"
)

// Builder places allocated study sessions into a weekly schedule.
type Builder struct {
	cfg ScheduleConfig
}

// NewBuilder creates a Builder from the given config.
// Zero-value durations are filled with defaults; invalid values return an
// error wrapping ErrInvalidConfig.
func NewBuilder(cfg ScheduleConfig) (*Builder, error) {
	norm, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: norm}, nil
}

// Config returns the effective config after defaults and the overnight
// sleep adjustment.
func (b *Builder) Config() ScheduleConfig {
	return b.cfg
}

// Build is shorthand for NewBuilder(cfg) followed by Builder.Build.
func Build(a Allocation, cfg ScheduleConfig) (WeekSchedule, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return WeekSchedule{}, err
	}
	return b.Build(a)
}

// Build produces the week for allocation a. Monday to Saturday are generated
// from the allocation pool; Sunday follows the revision template.
//
// Returns ErrInsufficientData if the allocation is empty. Soft-constraint
// violations do not fail the build; they are listed in WeekSchedule.Warnings.
func (b *Builder) Build(a Allocation) (WeekSchedule, error) {
	if a.Empty() {
		return WeekSchedule{}, fmt.Errorf("%w: allocation has no subjects", ErrInsufficientData)
	}

	var week WeekSchedule
	d := &drawer{pool: a.Pool}
	for i, wd := range Week[:StudyDays] {
		subjects, overflow := d.draw(b.cfg.sessionsPerDay())
		p := b.weekday(wd, subjects)
		if overflow {
			p.warn(RepeatOverflow, "subjects %s exceed %d sessions", strings.Join(subjects, ", "), SameDayRepeatCap)
		}
		week.Days[i] = p.schedule()
		week.Warnings = append(week.Warnings, p.warnings...)
	}

	weak := a.Weakest(2)
	if len(weak) == 0 {
		weak = a.Subjects[:min(2, len(a.Subjects))]
	}
	p := b.sunday(weak)
	week.Days[6] = p.schedule()
	week.Warnings = append(week.Warnings, p.warnings...)

	return week, nil
}

// pendingMeal tracks whether a meal has been placed on the current day.
type pendingMeal struct {
	label  string
	meal   MealTime
	placed bool
}

// weekday lays out one generated day.
func (b *Builder) weekday(wd time.Weekday, subjects []string) *dayPlan {
	cfg := b.cfg
	p := &dayPlan{day: wd, sleep: cfg.Sleep}

	cursor := p.add(cfg.Wake, cfg.MorningRoutine, LabelMorningRoutine, "", Routine)
	cursor = p.placeMeal(&pendingMeal{label: LabelBreakfast, meal: cfg.Breakfast}, cursor)

	lunch := &pendingMeal{label: LabelLunch, meal: cfg.Lunch}
	dinner := &pendingMeal{label: LabelDinner, meal: cfg.Dinner}
	pending := []*pendingMeal{lunch, dinner}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].meal.At < pending[j].meal.At
	})

	for i, subject := range subjects {
		for _, m := range pending {
			if !m.placed && b.mealDue(m.meal, cursor) {
				cursor = p.placeMeal(m, cursor)
			}
		}

		cursor = p.add(cursor, cfg.SessionDuration, subject, subject, Study)

		if i < len(subjects)-1 {
			end := cursor.Add(cfg.Break)
			for _, m := range pending {
				if !m.placed && cursor < m.meal.At && m.meal.At < end {
					end = m.meal.At
				}
			}
			cursor = p.add(cursor, end.Sub(cursor), LabelBreak, "", Break)
		}
	}

	for _, m := range pending {
		if m.placed {
			continue
		}
		if m == dinner && cursor < m.meal.At && m.meal.At.Sub(cursor) >= MinSelfStudyGap {
			cursor = p.add(cursor, m.meal.At.Sub(cursor), LabelSelfStudy, "", Study)
		}
		cursor = p.placeMeal(m, cursor)
	}

	return p
}

// mealDue reports whether meal must be placed before a session starting at
// cursor: the session would span the meal start, the cursor is within
// MealLookahead of it, or the cursor has already passed it.
func (b *Builder) mealDue(meal MealTime, cursor Clock) bool {
	if cursor > meal.At {
		return true
	}
	session := TimeSlot{Start: cursor, End: cursor.Add(b.cfg.SessionDuration)}
	return session.Overlaps(meal.slot()) || meal.At.Sub(cursor) < MealLookahead
}

// sunday lays out the fixed revision and assessment template.
func (b *Builder) sunday(weak []string) *dayPlan {
	cfg := b.cfg
	p := &dayPlan{day: time.Sunday, sleep: cfg.Sleep}

	first := weak[0]
	second := first
	if len(weak) > 1 {
		second = weak[1]
	}

	cursor := p.add(cfg.Wake, cfg.MorningRoutine, LabelMorningRoutine, "", Routine)
	cursor = p.placeMeal(&pendingMeal{label: LabelBreakfast, meal: cfg.Breakfast}, cursor)
	cursor = p.add(cursor, SundayRevision, LabelRevision+first, first, Revision)
	cursor = p.add(cursor, SundayBreak, LabelBreak, "", Break)
	cursor = p.add(cursor, SundayRevision, LabelRevision+second, second, Revision)
	cursor = p.placeMeal(&pendingMeal{label: LabelLunch, meal: cfg.Lunch}, cursor)
	cursor = p.add(cursor, SundayAssessment, LabelAssessment, "", Assessment)
	cursor = p.placeMeal(&pendingMeal{label: LabelDinner, meal: cfg.Dinner}, cursor)
	if cursor < cfg.Sleep {
		p.add(cursor, cfg.Sleep.Sub(cursor), LabelLeisure, "", Free)
	}

	return p
}

// dayPlan accumulates the blocks of one day in chronological order.
type dayPlan struct {
	day      time.Weekday
	sleep    Clock
	slots    []TimeSlot
	warnings []Warning
}

// add appends a block and returns its end.
func (p *dayPlan) add(start Clock, d time.Duration, label, subject string, c Category) Clock {
	end := start.Add(d)
	if d > 0 {
		p.slots = append(p.slots, TimeSlot{
			Start:    start,
			End:      end,
			Label:    label,
			Subject:  subject,
			Category: c,
		})
	}
	return end
}

// placeMeal places m at its configured time, or at cursor when the day has
// already run past that time.
func (p *dayPlan) placeMeal(m *pendingMeal, cursor Clock) Clock {
	start := m.meal.At
	if cursor > start {
		p.warn(MealDisplaced, "%s moved from %v to %v", m.label, m.meal.At, cursor)
		start = cursor
	}
	m.placed = true
	return p.add(start, m.meal.Duration, m.label, "", Meal)
}

func (p *dayPlan) warn(kind WarningKind, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{
		Day:    p.day,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	})
}

// schedule fills gaps between blocks with free time, records a sleep
// overrun, and returns the finished day.
func (p *dayPlan) schedule() DaySchedule {
	filled := make([]TimeSlot, 0, len(p.slots)*2)
	for i, s := range p.slots {
		if i > 0 {
			prev := filled[len(filled)-1].End
			if s.Start > prev {
				filled = append(filled, TimeSlot{Start: prev, End: s.Start, Label: LabelFree, Category: Free})
			}
		}
		filled = append(filled, s)
	}

	ds := DaySchedule{Day: p.day, Slots: filled}
	if end := ds.End(); end > p.sleep {
		p.warn(SleepOverrun, "day ends %v, after sleep at %v", end, p.sleep)
	}
	return ds
}
