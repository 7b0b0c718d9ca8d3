package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/units"
)

func testRules() Rules {
	return Rules{
		Unit:      units.Kilograms,
		Inventory: plates.Inventory{20: 2, 10: 2, 2.5: 2, 1.25: 2},
		Catalog: exercises.Catalog{
			Substitutions: []exercises.Substitution{
				{Original: program.OHP, Substitute: "db-press", ForceT3Progression: true},
			},
		},
	}
}

func TestApplyT1(t *testing.T) {
	state := program.NewState(map[program.LiftID]float64{program.Squat: 100}, nil, units.Kilograms)
	ex := exercise(program.Squat, program.T1, 100, 5, 3, []int{3, 3, 3, 3, 4}, true)

	next, change := Apply(state, ex, testRules())
	assert.Equal(t, 105.0, next.T1[program.Squat].Weight)
	assert.Equal(t, 100.0, state.T1[program.Squat].Weight, "input untouched")
	assert.Equal(t, Change{
		LiftID:  program.Squat,
		Tier:    program.T1,
		Before:  100,
		After:   105,
		Stage:   1,
		Outcome: OutcomeSuccess,
		Message: change.Message,
	}, change)
}

func TestApplyT3UsesSmallestPlate(t *testing.T) {
	state := program.NewState(nil, map[program.LiftID]float64{program.LatPulldown: 30}, units.Kilograms)
	ex := exercise(program.LatPulldown, program.T3, 30, 3, 15, []int{15, 15, 25}, true)

	next, change := Apply(state, ex, testRules())
	assert.Equal(t, 31.25, next.T3Weight(program.LatPulldown))
	assert.Equal(t, OutcomeSuccess, change.Outcome)
}

func TestApplyT3FirstTimeSeedsFromLog(t *testing.T) {
	state := program.NewState(nil, nil, units.Kilograms)
	ex := exercise("face-pull", program.T3, 15, 3, 15, []int{15, 15, 20}, true)

	next, change := Apply(state, ex, testRules())
	assert.Equal(t, 15.0, next.T3Weight("face-pull"))
	assert.Equal(t, OutcomeHold, change.Outcome)
}

func TestApplyT3WithoutWeightStaysUntracked(t *testing.T) {
	state := program.NewState(nil, nil, units.Kilograms)
	for _, reps := range [][]int{{15, 15, 30}, {10, 8, 6}} {
		ex := exercise("face-pull", program.T3, 0, 3, 15, reps, true)

		next, change := Apply(state, ex, testRules())
		_, tracked := next.T3["face-pull"]
		assert.False(t, tracked, "reps %v", reps)
		assert.Equal(t, OutcomeHold, change.Outcome)
		assert.Zero(t, change.After)
	}
}

func TestApplyForcedT3Substitution(t *testing.T) {
	state := program.NewState(map[program.LiftID]float64{program.OHP: 20}, nil, units.Kilograms)
	ex := exercise(program.OHP, program.T1, 20, 3, 15, []int{15, 15, 10}, true)

	next, change := Apply(state, ex, testRules())
	require.Equal(t, OutcomeHold, change.Outcome)
	assert.Equal(t, 1, next.T1[program.OHP].Stage, "a miss under forced T3 never climbs the ladder")
	assert.Equal(t, 20.0, next.T1[program.OHP].Weight)
}

func TestExerciseIncrement(t *testing.T) {
	rules := testRules()
	assert.Equal(t, 1.25, ExerciseIncrement(program.ExerciseLog{LiftID: program.OHP, Tier: program.T2}, rules))
	assert.Equal(t, 5.0, ExerciseIncrement(program.ExerciseLog{LiftID: program.Squat, Tier: program.T2}, rules))

	rules.Inventory = plates.Inventory{}
	assert.Equal(t, 2.5, ExerciseIncrement(program.ExerciseLog{LiftID: program.LatPulldown, Tier: program.T3}, rules))
}
