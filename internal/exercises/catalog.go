// Package exercises resolves lift identifiers to display metadata, taking
// user substitutions and the custom exercise library into account.
package exercises

import "github.com/liftmate/liftmate/internal/program"

// Definition is a user-defined exercise in the library.
type Definition struct {
	ID         program.LiftID `json:"id"`
	Name       string         `json:"name"`
	IsDumbbell bool           `json:"isDumbbell,omitempty"`
}

// Substitution replaces a programmed lift with another exercise.
type Substitution struct {
	Original   program.LiftID `json:"originalLiftId"`
	Substitute program.LiftID `json:"substituteId"`
	// ForceT3Progression progresses the substitute like an accessory.
	ForceT3Progression bool `json:"forceT3Progression,omitempty"`
}

// Catalog is the user's view over the built-in exercise tables.
type Catalog struct {
	Library       []Definition
	Substitutions []Substitution
}

var builtinLifts = map[program.LiftID]string{
	program.Squat:    "Squat",
	program.Bench:    "Bench Press",
	program.Deadlift: "Deadlift",
	program.OHP:      "Overhead Press",
}

var builtinT3 = map[program.LiftID]string{
	program.LatPulldown: "Lat Pulldown",
	program.DumbbellRow: "Dumbbell Row",
	"face-pull":         "Face Pull",
	"leg-curl":          "Leg Curl",
	"dumbbell-curl":     "Dumbbell Curl",
	"lateral-raise":     "Lateral Raise",
	"tricep-pushdown":   "Tricep Pushdown",
}

var builtinDumbbell = map[program.LiftID]bool{
	program.DumbbellRow: true,
	"dumbbell-curl":     true,
	"lateral-raise":     true,
	"dumbbell-press":    true,
}

// BuiltinT3 returns the ids of the built-in accessory exercises.
func BuiltinT3() map[program.LiftID]string {
	out := make(map[program.LiftID]string, len(builtinT3))
	for k, v := range builtinT3 {
		out[k] = v
	}
	return out
}

// Substitution returns the substitution registered for id, if any.
func (c Catalog) Substitution(id program.LiftID) (Substitution, bool) {
	for _, s := range c.Substitutions {
		if s.Original == id {
			return s, true
		}
	}
	return Substitution{}, false
}

// Definition looks id up in the exercise library.
func (c Catalog) Definition(id program.LiftID) (Definition, bool) {
	for _, d := range c.Library {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Resolve returns the exercise actually performed for id: the substitute if
// one is registered, otherwise id itself.
func (c Catalog) Resolve(id program.LiftID) program.LiftID {
	if s, ok := c.Substitution(id); ok && s.Substitute != "" {
		return s.Substitute
	}
	return id
}

// Name returns the display name for id at the given tier.
// Unknown ids fall back to the raw identifier.
func (c Catalog) Name(id program.LiftID, tier program.Tier) string {
	if s, ok := c.Substitution(id); ok {
		if d, ok := c.Definition(s.Substitute); ok {
			return d.Name
		}
		return string(s.Substitute)
	}
	if tier == program.T3 {
		if d, ok := c.Definition(id); ok {
			return d.Name
		}
		if name, ok := builtinT3[id]; ok {
			return name
		}
		return string(id)
	}
	if name, ok := builtinLifts[id]; ok {
		return name
	}
	return string(id)
}

// IsDumbbell reports whether id, after substitution, is a dumbbell exercise.
func (c Catalog) IsDumbbell(id program.LiftID) bool {
	target := c.Resolve(id)
	if d, ok := c.Definition(target); ok {
		return d.IsDumbbell
	}
	return builtinDumbbell[target]
}

// IsForcedT3 reports whether id is substituted with accessory-style progression.
func (c Catalog) IsForcedT3(id program.LiftID) bool {
	s, ok := c.Substitution(id)
	return ok && s.ForceT3Progression
}

// ProgressesAsT3 reports whether an exercise logged at tier uses the
// weight-only AMRAP progression.
func (c Catalog) ProgressesAsT3(id program.LiftID, tier program.Tier) bool {
	return tier == program.T3 || c.IsForcedT3(id)
}
