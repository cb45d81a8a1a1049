// Package intake checks caller supplied vitals before they reach the
// classifier. The classifier itself accepts any value.
package intake

import (
	"errors"
	"fmt"
	"math"

	"github.com/linnemanlabs/pulse/internal/triage"
)

// ErrOutOfRange is wrapped by every validation failure.
var ErrOutOfRange = errors.New("out of range")

// Accepted input ranges, inclusive.
const (
	MinHeartRate   = 0
	MaxHeartRate   = 300
	MinOxygen      = 0
	MaxOxygen      = 100
	MinPainLevel   = 0
	MaxPainLevel   = 10
	MinTemperature = 80.0
	MaxTemperature = 115.0
)

// Validate returns nil if every field of v is in range, otherwise one
// joined error per offending field.
func Validate(v triage.VitalSigns) error {
	var errs []error

	if v.HeartRate < MinHeartRate || v.HeartRate > MaxHeartRate {
		errs = append(errs, fmt.Errorf("heart_rate %d %w (must be %d..%d)", v.HeartRate, ErrOutOfRange, MinHeartRate, MaxHeartRate))
	}
	if v.Oxygen < MinOxygen || v.Oxygen > MaxOxygen {
		errs = append(errs, fmt.Errorf("oxygen %d %w (must be %d..%d)", v.Oxygen, ErrOutOfRange, MinOxygen, MaxOxygen))
	}
	if v.PainLevel < MinPainLevel || v.PainLevel > MaxPainLevel {
		errs = append(errs, fmt.Errorf("pain_level %d %w (must be %d..%d)", v.PainLevel, ErrOutOfRange, MinPainLevel, MaxPainLevel))
	}
	// NaN fails both comparisons, so check finiteness explicitly
	if math.IsNaN(v.Temperature) || v.Temperature < MinTemperature || v.Temperature > MaxTemperature {
		errs = append(errs, fmt.Errorf("temperature %.1f %w (must be %.1f..%.1f)", v.Temperature, ErrOutOfRange, MinTemperature, MaxTemperature))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
