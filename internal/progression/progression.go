// Package progression implements the GZCLP stage machine for T1, T2 and T3
// lifts. Every function is pure: it takes the current state and a completed
// exercise log and returns the next state.
package progression

import (
	"fmt"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/units"
)

// Outcome names the transition a completed exercise caused.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeStageAdvance Outcome = "stage-advance"
	OutcomeRetest       Outcome = "retest-required"
	OutcomeReset        Outcome = "reset"
	OutcomeTrialFailed  Outcome = "trial-failed"
	OutcomeHold         Outcome = "hold"
)

// Result is the next state of a T1/T2 lift plus a message for the lifter.
type Result struct {
	State   program.LiftState
	Outcome Outcome
	Message string
}

// T3Result is the next weight of an accessory.
type T3Result struct {
	Weight  float64
	Outcome Outcome
	Message string
}

// CalculateT1Progression applies a completed T1 exercise to state.
//
// Hitting the rep target adds increment to the logged weight. A miss climbs
// the stage ladder at the same weight; a miss at stage 3 flags the lift for a
// new 5RM and keeps the best set for estimation. A missed trial weight leaves
// the state untouched.
func CalculateT1Progression(state program.LiftState, ex program.ExerciseLog, increment float64, unit units.Unit) Result {
	next := state.Clone()
	name := liftLabel(state)

	if RepTargetHit(ex) {
		next.Weight = NextWeight(ex.Weight, increment)
		return Result{
			State:   next,
			Outcome: OutcomeSuccess,
			Message: fmt.Sprintf("%s: target hit, next time %s", name, units.Format(next.Weight, unit)),
		}
	}

	if ex.IsTrial() {
		return trialFailed(next, ex, unit)
	}

	switch {
	case state.Stage <= 1:
		next.Stage = 2
	case state.Stage == 2:
		next.Stage = 3
	default:
		next.Pending5RMTest = true
		next.BestSetReps = ex.BestSetReps()
		next.BestSetWeight = ex.Weight
		return Result{
			State:   next,
			Outcome: OutcomeRetest,
			Message: fmt.Sprintf("%s: stage 3 missed, test a new 5 rep max", name),
		}
	}

	scheme := Scheme(program.T1, next.Stage)
	return Result{
		State:   next,
		Outcome: OutcomeStageAdvance,
		Message: fmt.Sprintf("%s: moving to stage %d (%d×%d) at %s",
			name, next.Stage, scheme.Sets, scheme.Reps, units.Format(next.Weight, unit)),
	}
}

// CalculateT2Progression applies a completed T2 exercise to state.
//
// Leaving stage 1 stores the current weight as the reset anchor. A miss at
// stage 3 returns to stage 1 at the anchor plus the unit's T2 reset step.
func CalculateT2Progression(state program.LiftState, ex program.ExerciseLog, increment float64, unit units.Unit) Result {
	next := state.Clone()
	name := liftLabel(state)

	if RepTargetHit(ex) {
		next.Weight = NextWeight(ex.Weight, increment)
		if next.Stage <= 1 {
			next.LastStage1Weight = nil
		}
		return Result{
			State:   next,
			Outcome: OutcomeSuccess,
			Message: fmt.Sprintf("%s: target hit, next time %s", name, units.Format(next.Weight, unit)),
		}
	}

	if ex.IsTrial() {
		return trialFailed(next, ex, unit)
	}

	switch {
	case state.Stage <= 1:
		anchor := state.Weight
		next.Stage = 2
		next.LastStage1Weight = &anchor
	case state.Stage == 2:
		next.Stage = 3
	default:
		base := state.Weight
		if state.LastStage1Weight != nil {
			base = *state.LastStage1Weight
		}
		next.Stage = 1
		next.Weight = NextWeight(base, units.Table(unit).Increments.T2Reset)
		next.LastStage1Weight = nil
		return Result{
			State:   next,
			Outcome: OutcomeReset,
			Message: fmt.Sprintf("%s: stage 3 missed, restarting stage 1 at %s", name, units.Format(next.Weight, unit)),
		}
	}

	scheme := Scheme(program.T2, next.Stage)
	return Result{
		State:   next,
		Outcome: OutcomeStageAdvance,
		Message: fmt.Sprintf("%s: moving to stage %d (%d×%d) at %s",
			name, next.Stage, scheme.Sets, scheme.Reps, units.Format(next.Weight, unit)),
	}
}

// CalculateT3Progression returns the next weight of an accessory. The weight
// only moves when the AMRAP set reaches T3AMRAPTarget.
func CalculateT3Progression(weight float64, ex program.ExerciseLog, increment float64, unit units.Unit) T3Result {
	if AMRAPTargetHit(ex) {
		base := ex.Weight
		if base <= 0 {
			base = weight
		}
		next := NextWeight(base, increment)
		return T3Result{
			Weight:  next,
			Outcome: OutcomeSuccess,
			Message: fmt.Sprintf("%s: %d reps on the last set, next time %s", ex.LiftID, ex.AMRAPReps(), units.Format(next, unit)),
		}
	}
	return T3Result{
		Weight:  weight,
		Outcome: OutcomeHold,
		Message: fmt.Sprintf("%s: %d/%d reps on the last set, staying at %s", ex.LiftID, ex.AMRAPReps(), T3AMRAPTarget, units.Format(weight, unit)),
	}
}

// CalculateForcedT3Progression progresses a substituted T1/T2 lift with the
// accessory rule. Stage and anchors are left as they are.
func CalculateForcedT3Progression(state program.LiftState, ex program.ExerciseLog, increment float64, unit units.Unit) Result {
	next := state.Clone()
	r := CalculateT3Progression(state.Weight, ex, increment, unit)
	next.Weight = r.Weight
	return Result{State: next, Outcome: r.Outcome, Message: r.Message}
}

// ApplyT1Reset resolves a pending 5RM test: stage 1 at 85% of the new 5RM,
// rounded to the unit's increment. A non-positive 5RM leaves state unchanged.
func ApplyT1Reset(state program.LiftState, new5RM float64, unit units.Unit) program.LiftState {
	next := state.Clone()
	weight := units.RoundTo(new5RM*0.85, units.Table(unit).Rounding)
	if weight <= 0 {
		return next
	}
	next.Weight = weight
	next.Stage = 1
	next.Pending5RMTest = false
	next.BestSetReps = 0
	next.BestSetWeight = 0
	return next
}

// Estimate5RM estimates a 5-rep max from a single set: Epley 1RM
// (weight × (1 + reps/30)) times 0.87, rounded to the unit's increment.
// It returns 0 for non-positive input.
func Estimate5RM(weight float64, reps int, unit units.Unit) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	oneRM := weight * (1 + float64(reps)/30)
	return units.RoundTo(oneRM*0.87, units.Table(unit).Rounding)
}

func trialFailed(state program.LiftState, ex program.ExerciseLog, unit units.Unit) Result {
	return Result{
		State:   state,
		Outcome: OutcomeTrialFailed,
		Message: fmt.Sprintf("%s: trial at %s missed, staying at %s",
			liftLabel(state), units.Format(ex.Weight, unit), units.Format(state.Weight, unit)),
	}
}

func liftLabel(s program.LiftState) string {
	return fmt.Sprintf("%s %s", s.Lift, s.Tier)
}
