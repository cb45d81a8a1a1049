package triage

import (
	"fmt"
	"time"
)

// Category is the outcome of a triage classification.
type Category int

const (
	// CategoryRoutine means stable vitals, standard procedure
	CategoryRoutine Category = iota

	// CategoryPriority means fever, nurse evaluation before doctor
	CategoryPriority

	// CategoryUrgent means severe pain, fast-tracked to a doctor
	CategoryUrgent

	// CategoryEmergency means cardiopulmonary distress, immediate attention
	CategoryEmergency
)

var categoryNames = [...]string{
	CategoryRoutine:   "routine",
	CategoryPriority:  "priority",
	CategoryUrgent:    "urgent",
	CategoryEmergency: "emergency",
}

// Categories returns every category in evaluation order, most severe first.
func Categories() []Category {
	return []Category{CategoryEmergency, CategoryUrgent, CategoryPriority, CategoryRoutine}
}

// String returns the wire name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Severity ranks categories, higher is more severe. Routine is 0.
func (c Category) Severity() int {
	return int(c)
}

// ParseCategory maps a wire name back to its Category.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return CategoryRoutine, fmt.Errorf("unknown triage category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("invalid triage category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// VitalSigns are the measurements a classification is made from.
// Temperature is in degrees Fahrenheit.
type VitalSigns struct {
	HeartRate   int     `json:"heart_rate"`
	Oxygen      int     `json:"oxygen"`
	PainLevel   int     `json:"pain_level"`
	Temperature float64 `json:"temperature"`
}

// Result is the outcome of classifying one set of vitals.
type Result struct {
	Category   Category `json:"category"`
	Treatment  string   `json:"treatment"`
	Medication string   `json:"medication"`
	Summary    string   `json:"summary"`
}

// Assessment wraps a Result with the request it answered.
type Assessment struct {
	ID         string     `json:"id"`
	Vitals     VitalSigns `json:"vitals"`
	Result     Result     `json:"result"`
	AssessedAt time.Time  `json:"assessed_at"`
}
