package triage

import "fmt"

// Medication is reported for every category. Medication decisions happen
// after treatment, outside of triage.
const Medication = "After treatment"

// Clinical thresholds. Comparisons are strict except for pain.
const (
	MaxHeartRate   = 120
	MinOxygen      = 92
	UrgentPain     = 8
	MaxTemperature = 101.0
)

// rule pairs a category with the predicate that selects it.
type rule struct {
	category Category
	match    func(v VitalSigns) bool
}

// rules are evaluated in order, first match wins. Routine is the fallback
// and has no entry.
var rules = []rule{
	{CategoryEmergency, func(v VitalSigns) bool { return v.HeartRate > MaxHeartRate || v.Oxygen < MinOxygen }},
	{CategoryUrgent, func(v VitalSigns) bool { return v.PainLevel >= UrgentPain }},
	{CategoryPriority, func(v VitalSigns) bool { return v.Temperature > MaxTemperature }},
}

// outcome describes what a category reports.
type outcome struct {
	treatment string
	summary   func(v VitalSigns) string
}

var outcomes = map[Category]outcome{
	CategoryEmergency: {
		treatment: "Immediate ICU/Senior Doctor attention",
		summary: func(v VitalSigns) string {
			return fmt.Sprintf("EMERGENCY case: Heart Rate is %d & Oxygen level is %d %%", v.HeartRate, v.Oxygen)
		},
	},
	CategoryUrgent: {
		treatment: "Fast-track doctor assessment",
		summary: func(v VitalSigns) string {
			return fmt.Sprintf("URGENT case: Pain Level is %d /10", v.PainLevel)
		},
	},
	CategoryPriority: {
		treatment: "Nurse evaluation then doctor",
		summary: func(v VitalSigns) string {
			return fmt.Sprintf("PRIORITY case: Fever is %.1f°F", v.Temperature)
		},
	},
	CategoryRoutine: {
		treatment: "Standard procedure",
		summary:   func(VitalSigns) string { return "ROUTINE case: Stable vitals" },
	},
}

// Categorize returns the category for v without building a Result.
func Categorize(v VitalSigns) Category {
	for _, r := range rules {
		if r.match(v) {
			return r.category
		}
	}
	return CategoryRoutine
}

// Classify maps vitals to a triage result. It never fails: values are not
// range checked and anything matching no rule is routine.
func Classify(v VitalSigns) Result {
	c := Categorize(v)
	o := outcomes[c]
	return Result{
		Category:   c,
		Treatment:  o.treatment,
		Medication: Medication,
		Summary:    o.summary(v),
	}
}

// Treatment returns the recommendation reported for c.
func Treatment(c Category) string {
	return outcomes[c].treatment
}
