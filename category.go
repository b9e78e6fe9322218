package timetable

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Category classifies a block of time in a day's schedule.
type Category int

const (
	Routine    Category = iota + 1 // Morning routine after waking.
	Meal                           // Breakfast, lunch or dinner.
	Study                          // Subject study session or self-study filler.
	Break                          // Short rest between sessions.
	Revision                       // Sunday revision of a weak subject.
	Assessment                     // Sunday mock test.
	Free                           // Unscheduled or leisure time.
)

var (
	categoryNames = [...]string{
		Routine:    "Routine",
		Meal:       "Meal",
		Study:      "Study",
		Break:      "Break",
		Revision:   "Revision",
		Assessment: "Assessment",
		Free:       "Free",
	}
	categoryByName = map[string]Category{
		"Routine":    Routine,
		"Meal":       Meal,
		"Study":      Study,
		"Break":      Break,
		"Revision":   Revision,
		"Assessment": Assessment,
		"Free":       Free,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Category(0)
	_ json.Marshaler           = Category(0)
	_ json.Unmarshaler         = (*Category)(nil)
	_ encoding.TextMarshaler   = Category(0)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

// String returns the name of the category ("Routine", "Meal", ...).
// For invalid values it returns "Category(n)".
func (c Category) String() string {
	if c.IsValid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// IsValid reports whether c is one of the defined categories.
func (c Category) IsValid() bool {
	return c >= Routine && c <= Free
}

// IsStudy reports whether time in this category counts as study time.
func (c Category) IsStudy() bool {
	return c == Study || c == Revision || c == Assessment
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("timetable: invalid category: %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	v, ok := categoryByName[string(text)]
	if !ok {
		return fmt.Errorf("timetable: invalid category: %q", text)
	}
	*c = v
	return nil
}

// MarshalJSON implements json.Marshaler. Category serializes as a JSON string.
func (c Category) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timetable: invalid category: %s", data)
	}
	return c.UnmarshalText([]byte(s))
}
