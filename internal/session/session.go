// Package session drives a workout from creation to completion: it builds
// the next workout from the program, records what was lifted and, on finish,
// runs medal detection and progression.
package session

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/liftmate/liftmate/internal/medals"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/settings"
)

var (
	// ErrAlreadyCompleted is returned when changing a finished workout.
	ErrAlreadyCompleted = errors.New("workout already completed")
	// ErrExerciseIndex is returned for an exercise index outside the workout.
	ErrExerciseIndex = errors.New("exercise index out of range")
)

// Outcome is the result of finishing a workout.
type Outcome struct {
	Workout program.Workout
	State   program.State
	Changes []progression.Change
	Medals  []program.Medal
}

// RecordReps logs the reps of an exercise, one entry per set in order. Sets
// beyond len(reps) stay unattempted; a 0 marks a failed set.
func RecordReps(w *program.Workout, index int, reps []int) error {
	ex, err := exerciseAt(w, index)
	if err != nil {
		return err
	}
	if len(reps) > len(ex.Sets) {
		return fmt.Errorf("record reps: %d sets logged for %s %s, %d prescribed", len(reps), ex.LiftID, ex.Tier, len(ex.Sets))
	}
	for i, r := range reps {
		if r < 0 {
			return fmt.Errorf("record reps: set %d: negative reps %d", i+1, r)
		}
		ex.Sets[i].Reps = r
		ex.Sets[i].Completed = true
	}
	return nil
}

// SetTrialWeight changes the weight of one exercise for this workout only.
// The programmed weight is kept in OriginalWeight; setting the weight back to
// it clears the trial.
func SetTrialWeight(w *program.Workout, index int, weight float64) error {
	ex, err := exerciseAt(w, index)
	if err != nil {
		return err
	}
	if weight <= 0 {
		return fmt.Errorf("set trial weight: weight must be positive, got %v", weight)
	}
	original := ex.Weight
	if ex.OriginalWeight != nil {
		original = *ex.OriginalWeight
	}
	ex.Weight = weight
	if weight == original {
		ex.OriginalWeight = nil
	} else {
		ex.OriginalWeight = &original
	}
	return nil
}

// Finish completes w. Medals are detected against old and history first;
// then every attempted exercise runs through progression and the rotation
// advances. Exercises with no completed set leave their lift untouched.
func Finish(w program.Workout, old program.State, history []program.Workout, cfg settings.Settings) (Outcome, error) {
	if w.Completed {
		return Outcome{}, ErrAlreadyCompleted
	}

	earned := medals.Detect(medals.Input{
		Workout:    w,
		History:    history,
		PriorCount: old.WorkoutCount,
		Catalog:    cfg.Catalog(),
		Unit:       cfg.Unit,
		Inventory:  cfg.PlateInventory,
	})

	rules := cfg.Rules()
	next := old.Clone()
	var changes []progression.Change
	for _, ex := range w.Exercises {
		if ex.CompletedSets() == 0 {
			continue
		}
		var c progression.Change
		next, c = progression.Apply(next, ex, rules)
		changes = append(changes, c)
	}
	next.NextWorkoutType = w.Type.Next()
	next.WorkoutCount = old.WorkoutCount + 1

	w.Completed = true
	w.Medals = earned

	logrus.WithFields(logrus.Fields{
		"workout": w.ID,
		"type":    w.Type,
		"count":   next.WorkoutCount,
		"medals":  len(earned),
		"changes": len(changes),
	}).Info("workout finished")

	return Outcome{Workout: w, State: next, Changes: changes, Medals: earned}, nil
}

func exerciseAt(w *program.Workout, index int) (*program.ExerciseLog, error) {
	if w.Completed {
		return nil, ErrAlreadyCompleted
	}
	if index < 0 || index >= len(w.Exercises) {
		return nil, fmt.Errorf("%w: %d of %d", ErrExerciseIndex, index, len(w.Exercises))
	}
	return &w.Exercises[index], nil
}
