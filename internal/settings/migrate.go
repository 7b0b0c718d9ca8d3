package settings

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/units"
)

// legacyExercise is a custom exercise as stored before version 2. A custom
// exercise could stand in for a main lift through ReplacesLift.
type legacyExercise struct {
	ID                 program.LiftID `json:"id"`
	Name               string         `json:"name"`
	IsDumbbell         bool           `json:"isDumbbell,omitempty"`
	ReplacesLift       program.LiftID `json:"replacesLift,omitempty"`
	ForceT3Progression bool           `json:"forceT3Progression,omitempty"`
}

// document is the union of the legacy and current settings shapes.
type document struct {
	Settings
	CustomExercises []legacyExercise       `json:"customExercises,omitempty"`
	T3Library       []exercises.Definition `json:"t3Library,omitempty"`
	WorkoutT3s      []T3Assignment         `json:"workoutT3s,omitempty"`
}

// Migrate decodes a settings document and upgrades legacy shapes to the
// current one. It reports whether the document changed; documents already at
// CurrentVersion come back untouched with false.
//
// Missing fields are filled from the defaults of the document's unit.
func Migrate(raw []byte) (Settings, bool, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Settings{}, false, fmt.Errorf("decode settings: %w", err)
	}
	if doc.Version >= CurrentVersion {
		return doc.Settings, false, nil
	}

	s := doc.Settings
	if s.Unit == "" {
		s.Unit = units.Kilograms
	}
	if !s.Unit.Valid() {
		return Settings{}, false, fmt.Errorf("migrate settings: %w: %q", units.ErrUnknownUnit, s.Unit)
	}
	fillDefaults(&s)

	for _, ce := range doc.CustomExercises {
		s.ExerciseLibrary = addDefinition(s.ExerciseLibrary, exercises.Definition{ID: ce.ID, Name: ce.Name, IsDumbbell: ce.IsDumbbell})
		if ce.ReplacesLift != "" && !hasSubstitution(s.LiftSubstitutions, ce.ReplacesLift) {
			s.LiftSubstitutions = append(s.LiftSubstitutions, exercises.Substitution{
				Original:           ce.ReplacesLift,
				Substitute:         ce.ID,
				ForceT3Progression: ce.ForceT3Progression,
			})
		}
	}
	for _, d := range doc.T3Library {
		s.ExerciseLibrary = addDefinition(s.ExerciseLibrary, d)
	}
	for _, a := range doc.WorkoutT3s {
		if !slices.Contains(s.AdditionalT3, a) {
			s.AdditionalT3 = append(s.AdditionalT3, a)
		}
	}

	s.Version = CurrentVersion
	return s, true, nil
}

func fillDefaults(s *Settings) {
	d := Default(s.Unit)
	if s.BarWeight <= 0 {
		s.BarWeight = d.BarWeight
	}
	if s.DumbbellHandleWeight <= 0 {
		s.DumbbellHandleWeight = d.DumbbellHandleWeight
	}
	if len(s.PlateInventory) == 0 {
		s.PlateInventory = d.PlateInventory
	}
	if s.RestTimers == (RestTimers{}) {
		s.RestTimers = d.RestTimers
	}
}

func addDefinition(lib []exercises.Definition, d exercises.Definition) []exercises.Definition {
	if d.ID == "" {
		return lib
	}
	if slices.ContainsFunc(lib, func(e exercises.Definition) bool { return e.ID == d.ID }) {
		return lib
	}
	return append(lib, d)
}

func hasSubstitution(subs []exercises.Substitution, original program.LiftID) bool {
	return slices.ContainsFunc(subs, func(s exercises.Substitution) bool { return s.Original == original })
}
