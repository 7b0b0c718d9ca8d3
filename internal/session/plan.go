package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/settings"
)

// Build creates the next workout from the program rotation. T1 and T2 sets
// follow the lift's stage; accessories and forced-T3 substitutes use the T3
// scheme. The AMRAP flag sits on the last set of every AMRAP scheme.
func Build(state program.State, cfg settings.Settings, now time.Time) program.Workout {
	wt := state.NextWorkoutType
	if !wt.Valid() {
		wt = program.WorkoutA1
	}
	day := program.Plan(wt)
	catalog := cfg.Catalog()

	w := program.Workout{
		ID:   uuid.NewString(),
		Date: now.UTC().Format(time.RFC3339),
		Type: wt,
	}

	for _, tl := range []struct {
		tier program.Tier
		lift program.LiftID
	}{{program.T1, day.T1}, {program.T2, day.T2}} {
		ls, ok := state.Lift(tl.tier, tl.lift)
		if !ok {
			continue
		}
		scheme := progression.Scheme(tl.tier, ls.Stage)
		if catalog.IsForcedT3(tl.lift) {
			scheme = progression.Scheme(program.T3, 0)
		}
		w.Exercises = append(w.Exercises, newExercise(tl.lift, tl.tier, ls.Weight, scheme))
	}

	accessories := append([]program.LiftID(nil), day.T3...)
	for _, id := range cfg.AdditionalT3For(wt) {
		if !containsLift(accessories, id) {
			accessories = append(accessories, id)
		}
	}
	for _, id := range accessories {
		w.Exercises = append(w.Exercises, newExercise(id, program.T3, state.T3Weight(id), progression.Scheme(program.T3, 0)))
	}
	return w
}

func newExercise(id program.LiftID, tier program.Tier, weight float64, scheme progression.RepScheme) program.ExerciseLog {
	ex := program.ExerciseLog{
		LiftID:     id,
		Tier:       tier,
		Weight:     weight,
		TargetSets: scheme.Sets,
		TargetReps: scheme.Reps,
		Sets:       make([]program.SetLog, scheme.Sets),
	}
	for i := range ex.Sets {
		ex.Sets[i] = program.SetLog{
			SetNumber: i + 1,
			IsAMRAP:   scheme.AMRAP && i == scheme.Sets-1,
		}
	}
	return ex
}

func containsLift(ids []program.LiftID, id program.LiftID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
