// Package settings holds the lifter's long-lived configuration: unit, bar,
// plate inventory, rest timers and the exercise customisations.
package settings

import (
	"slices"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/units"
)

// CurrentVersion is the document version written by this package.
const CurrentVersion = 2

// RestTimers holds the rest duration per tier, in seconds.
type RestTimers struct {
	T1 int `json:"t1"`
	T2 int `json:"t2"`
	T3 int `json:"t3"`
}

// For returns the rest duration of a tier.
func (r RestTimers) For(tier program.Tier) int {
	switch tier {
	case program.T1:
		return r.T1
	case program.T2:
		return r.T2
	default:
		return r.T3
	}
}

// T3Assignment adds an accessory to every workout of a type.
type T3Assignment struct {
	WorkoutType program.WorkoutType `json:"workoutType"`
	ExerciseID  program.LiftID      `json:"exerciseId"`
}

// Settings is the user's configuration document.
type Settings struct {
	Version              int                      `json:"version"`
	Unit                 units.Unit               `json:"unit"`
	BarWeight            float64                  `json:"barWeight"`
	DumbbellHandleWeight float64                  `json:"dumbbellHandleWeight"`
	PlateInventory       plates.Inventory         `json:"plateInventory"`
	RestTimers           RestTimers               `json:"restTimers"`
	ExerciseLibrary      []exercises.Definition   `json:"exerciseLibrary"`
	LiftSubstitutions    []exercises.Substitution `json:"liftSubstitutions"`
	AdditionalT3         []T3Assignment           `json:"additionalT3s"`
}

// Default returns the settings of a fresh install for unit.
func Default(unit units.Unit) Settings {
	cfg := units.Table(unit)
	return Settings{
		Version:              CurrentVersion,
		Unit:                 cfg.Unit,
		BarWeight:            cfg.BarWeight,
		DumbbellHandleWeight: cfg.DumbbellHandle,
		PlateInventory:       plates.DefaultInventory(cfg.Unit),
		RestTimers:           RestTimers{T1: 180, T2: 120, T3: 60},
	}
}

// Catalog returns the exercise resolution view of s.
func (s Settings) Catalog() exercises.Catalog {
	return exercises.Catalog{Library: s.ExerciseLibrary, Substitutions: s.LiftSubstitutions}
}

// Rules returns what the progression engine needs from s.
func (s Settings) Rules() progression.Rules {
	return progression.Rules{Unit: s.Unit, Inventory: s.PlateInventory, Catalog: s.Catalog()}
}

// AdditionalT3For lists the extra accessories assigned to a workout type.
func (s Settings) AdditionalT3For(wt program.WorkoutType) []program.LiftID {
	var out []program.LiftID
	for _, a := range s.AdditionalT3 {
		if a.WorkoutType == wt && !slices.Contains(out, a.ExerciseID) {
			out = append(out, a.ExerciseID)
		}
	}
	return out
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	out.PlateInventory = s.PlateInventory.Clone()
	out.ExerciseLibrary = slices.Clone(s.ExerciseLibrary)
	out.LiftSubstitutions = slices.Clone(s.LiftSubstitutions)
	out.AdditionalT3 = slices.Clone(s.AdditionalT3)
	return out
}
