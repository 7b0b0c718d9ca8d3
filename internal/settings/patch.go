package settings

import (
	"fmt"
	"maps"

	"go.uber.org/multierr"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/units"
)

// Patch is a partial update. Nil fields are left alone; plate counts merge
// into the existing inventory and a count of 0 removes the plate.
type Patch struct {
	Unit                 *units.Unit
	BarWeight            *float64
	DumbbellHandleWeight *float64
	Plates               map[float64]int
	RestTimers           *RestTimers
	ExerciseLibrary      []exercises.Definition
	LiftSubstitutions    []exercises.Substitution
	AdditionalT3         []T3Assignment
}

// Apply merges p into s and validates the result. s is not modified.
func Apply(s Settings, p Patch) (Settings, error) {
	out := s.Clone()
	if p.Unit != nil {
		out.Unit = *p.Unit
	}
	if p.BarWeight != nil {
		out.BarWeight = *p.BarWeight
	}
	if p.DumbbellHandleWeight != nil {
		out.DumbbellHandleWeight = *p.DumbbellHandleWeight
	}
	if len(p.Plates) > 0 {
		if out.PlateInventory == nil {
			out.PlateInventory = make(map[float64]int, len(p.Plates))
		}
		maps.Copy(out.PlateInventory, p.Plates)
		maps.DeleteFunc(out.PlateInventory, func(_ float64, n int) bool { return n == 0 })
	}
	if p.RestTimers != nil {
		out.RestTimers = *p.RestTimers
	}
	if p.ExerciseLibrary != nil {
		out.ExerciseLibrary = p.ExerciseLibrary
	}
	if p.LiftSubstitutions != nil {
		out.LiftSubstitutions = p.LiftSubstitutions
	}
	if p.AdditionalT3 != nil {
		out.AdditionalT3 = p.AdditionalT3
	}
	if err := Validate(out); err != nil {
		return s, err
	}
	return out, nil
}

// Validate checks s and reports every problem found.
func Validate(s Settings) error {
	var err error
	if !s.Unit.Valid() {
		err = multierr.Append(err, fmt.Errorf("unit: %w: %q", units.ErrUnknownUnit, s.Unit))
	}
	if s.BarWeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("bar weight must be positive, got %v", s.BarWeight))
	}
	if s.DumbbellHandleWeight < 0 {
		err = multierr.Append(err, fmt.Errorf("dumbbell handle weight must not be negative, got %v", s.DumbbellHandleWeight))
	}
	for size, n := range s.PlateInventory {
		if size <= 0 {
			err = multierr.Append(err, fmt.Errorf("plate size must be positive, got %v", size))
		}
		if n < 0 {
			err = multierr.Append(err, fmt.Errorf("plate %v: count must not be negative, got %d", size, n))
		}
	}
	for _, t := range []struct {
		name string
		secs int
	}{{"T1", s.RestTimers.T1}, {"T2", s.RestTimers.T2}, {"T3", s.RestTimers.T3}} {
		if t.secs < 0 {
			err = multierr.Append(err, fmt.Errorf("rest timer %s must not be negative, got %d", t.name, t.secs))
		}
	}
	for _, sub := range s.LiftSubstitutions {
		if sub.Original == "" || sub.Substitute == "" {
			err = multierr.Append(err, fmt.Errorf("substitution %q -> %q is incomplete", sub.Original, sub.Substitute))
		}
	}
	for _, a := range s.AdditionalT3 {
		if !a.WorkoutType.Valid() {
			err = multierr.Append(err, fmt.Errorf("additional T3 %q: unknown workout type %q", a.ExerciseID, a.WorkoutType))
		}
	}
	return err
}
