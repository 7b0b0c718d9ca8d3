package progression

import (
	"fmt"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/units"
)

// Rules carries the settings the engine needs to pick increments.
type Rules struct {
	Unit      units.Unit
	Inventory plates.Inventory
	Catalog   exercises.Catalog
}

// Change describes what one exercise did to the program.
type Change struct {
	LiftID  program.LiftID
	Tier    program.Tier
	Before  float64
	After   float64
	Stage   int
	Outcome Outcome
	Message string
}

// ExerciseIncrement is the weight step that applies to ex under rules: the
// smallest owned plate for accessory-style progression, the tier table
// otherwise.
func ExerciseIncrement(ex program.ExerciseLog, rules Rules) float64 {
	if rules.Catalog.ProgressesAsT3(ex.LiftID, ex.Tier) {
		return T3Increment(rules.Inventory, rules.Unit)
	}
	return Increment(ex.Tier, ex.LiftID, rules.Unit)
}

// Apply runs the matching progression for ex and returns the updated program.
// The input state is not modified. An accessory with neither a stored nor a
// logged weight is left untracked.
func Apply(state program.State, ex program.ExerciseLog, rules Rules) (program.State, Change) {
	next := state.Clone()
	inc := ExerciseIncrement(ex, rules)

	if ex.Tier == program.T3 {
		before := next.T3Weight(ex.LiftID)
		if before <= 0 {
			before = ex.Weight
		}
		if before <= 0 {
			return next, Change{
				LiftID:  ex.LiftID,
				Tier:    ex.Tier,
				Outcome: OutcomeHold,
				Message: fmt.Sprintf("%s has no working weight yet; set one before it can progress", ex.LiftID),
			}
		}
		r := CalculateT3Progression(before, ex, inc, rules.Unit)
		next.PutT3(ex.LiftID, r.Weight)
		return next, Change{
			LiftID:  ex.LiftID,
			Tier:    ex.Tier,
			Before:  before,
			After:   r.Weight,
			Outcome: r.Outcome,
			Message: r.Message,
		}
	}

	ls, ok := next.Lift(ex.Tier, ex.LiftID)
	if !ok {
		ls = program.LiftState{Lift: ex.LiftID, Tier: ex.Tier, Weight: ex.Weight, Stage: 1}
	}

	var r Result
	switch {
	case rules.Catalog.IsForcedT3(ex.LiftID):
		r = CalculateForcedT3Progression(ls, ex, inc, rules.Unit)
	case ex.Tier == program.T1:
		r = CalculateT1Progression(ls, ex, inc, rules.Unit)
	default:
		r = CalculateT2Progression(ls, ex, inc, rules.Unit)
	}
	next.PutLift(r.State)

	return next, Change{
		LiftID:  ex.LiftID,
		Tier:    ex.Tier,
		Before:  ls.Weight,
		After:   r.State.Weight,
		Stage:   r.State.Stage,
		Outcome: r.Outcome,
		Message: r.Message,
	}
}
