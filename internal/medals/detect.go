// Package medals detects achievements in a completed workout: weight and
// volume PRs per (lift, tier), AMRAP records, stage clears and workout-count
// streaks. Detection is a pure scan; nothing here persists or logs.
package medals

import (
	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/units"
)

// Input is everything one detection pass looks at.
type Input struct {
	Workout program.Workout
	// History holds previously completed workouts, excluding Workout.
	History []program.Workout
	// PriorCount is the number of workouts completed before Workout.
	PriorCount int
	Catalog    exercises.Catalog
	Unit       units.Unit
	Inventory  plates.Inventory
}

// Detect runs every detector over in.Workout. Medals come back in exercise
// order (weight PR, volume PR, AMRAP record, stage clear), followed by a
// streak medal when the workout count hits a milestone.
func Detect(in Input) []program.Medal {
	history := BuildHistory(in.History)
	rules := progression.Rules{Unit: in.Unit, Inventory: in.Inventory, Catalog: in.Catalog}

	var out []program.Medal
	for _, ex := range in.Workout.Exercises {
		best := history.Lookup(ex.LiftID, ex.Tier)
		for _, m := range []*program.Medal{
			DetectWeightPR(ex, best),
			DetectVolumePR(ex, best),
			DetectAMRAPRecord(ex, in.Catalog),
			DetectStageClear(ex, rules),
		} {
			if m != nil {
				out = append(out, *m)
			}
		}
	}
	if m := DetectStreakMedal(in.PriorCount + 1); m != nil {
		out = append(out, *m)
	}
	return out
}

// DetectWeightPR reports a logged weight strictly above the best for the
// exercise's (lift, tier). A best of 0 means no history and carries no
// previous value.
func DetectWeightPR(ex program.ExerciseLog, best Best) *program.Medal {
	if ex.TotalReps() == 0 || ex.Weight <= best.MaxWeight {
		return nil
	}
	return &program.Medal{
		Type:          program.MedalWeightPR,
		LiftID:        ex.LiftID,
		Tier:          ex.Tier,
		Value:         ex.Weight,
		PreviousValue: previous(best.MaxWeight),
	}
}

// DetectVolumePR reports weight × total reps strictly above the best volume.
func DetectVolumePR(ex program.ExerciseLog, best Best) *program.Medal {
	volume := ex.Volume()
	if ex.TotalReps() == 0 || volume <= best.MaxVolume {
		return nil
	}
	return &program.Medal{
		Type:          program.MedalVolumePR,
		LiftID:        ex.LiftID,
		Tier:          ex.Tier,
		Value:         volume,
		PreviousValue: previous(best.MaxVolume),
	}
}

// DetectAMRAPRecord reports an accessory-style AMRAP set of at least
// progression.T3AMRAPTarget reps.
func DetectAMRAPRecord(ex program.ExerciseLog, catalog exercises.Catalog) *program.Medal {
	if !catalog.ProgressesAsT3(ex.LiftID, ex.Tier) || !progression.AMRAPTargetHit(ex) {
		return nil
	}
	return &program.Medal{
		Type:   program.MedalAMRAPRecord,
		LiftID: ex.LiftID,
		Tier:   ex.Tier,
		Value:  float64(ex.AMRAPReps()),
	}
}

// DetectStageClear reports an exercise that earned a weight increase. The
// next weight comes from the same increment the progression engine applies.
func DetectStageClear(ex program.ExerciseLog, rules progression.Rules) *program.Medal {
	if ex.TotalReps() == 0 {
		return nil
	}
	if rules.Catalog.ProgressesAsT3(ex.LiftID, ex.Tier) {
		if !progression.AMRAPTargetHit(ex) {
			return nil
		}
	} else if !progression.RepTargetHit(ex) {
		return nil
	}
	prev := ex.Weight
	return &program.Medal{
		Type:          program.MedalStageClear,
		LiftID:        ex.LiftID,
		Tier:          ex.Tier,
		Value:         progression.NextWeight(ex.Weight, progression.ExerciseIncrement(ex, rules)),
		PreviousValue: &prev,
	}
}

func previous(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}
