package progression

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/units"
)

func ptr(v float64) *float64 { return &v }

// exercise builds a log whose sets carry the given reps; the last set is AMRAP
// when amrap is set.
func exercise(lift program.LiftID, tier program.Tier, weight float64, sets, reps int, done []int, amrap bool) program.ExerciseLog {
	ex := program.ExerciseLog{LiftID: lift, Tier: tier, Weight: weight, TargetSets: sets, TargetReps: reps}
	for i, r := range done {
		ex.Sets = append(ex.Sets, program.SetLog{
			SetNumber: i + 1,
			Reps:      r,
			Completed: true,
			IsAMRAP:   amrap && i == len(done)-1,
		})
	}
	return ex
}

func TestT1Success(t *testing.T) {
	state := program.LiftState{Lift: program.Squat, Tier: program.T1, Weight: 100, Stage: 1}
	ex := exercise(program.Squat, program.T1, 100, 5, 3, []int{3, 3, 3, 3, 5}, true)

	r := CalculateT1Progression(state, ex, 5, units.Kilograms)
	assert.Equal(t, OutcomeSuccess, r.Outcome)
	assert.Equal(t, 105.0, r.State.Weight)
	assert.Equal(t, 1, r.State.Stage)
	assert.NotEmpty(t, r.Message)
}

func TestT1TrialSuccessUsesTrialWeight(t *testing.T) {
	state := program.LiftState{Lift: program.Squat, Tier: program.T1, Weight: 100, Stage: 1}
	ex := exercise(program.Squat, program.T1, 105, 5, 3, []int{3, 3, 3, 3, 3}, true)
	ex.OriginalWeight = ptr(100)

	r := CalculateT1Progression(state, ex, 5, units.Kilograms)
	assert.Equal(t, 110.0, r.State.Weight)
	assert.Equal(t, 1, r.State.Stage)
}

func TestT1TrialFailureLeavesStateUntouched(t *testing.T) {
	for _, stage := range []int{1, 2, 3} {
		state := program.LiftState{Lift: program.Bench, Tier: program.T1, Weight: 60, Stage: stage}
		ex := exercise(program.Bench, program.T1, 65, 5, 3, []int{3, 3, 2, 1, 1}, true)
		ex.OriginalWeight = ptr(60)

		r := CalculateT1Progression(state, ex, 2.5, units.Kilograms)
		if diff := cmp.Diff(state, r.State); diff != "" {
			t.Errorf("stage %d: trial failure changed state (-want +got):\n%s", stage, diff)
		}
		assert.Equal(t, OutcomeTrialFailed, r.Outcome)
	}
}

func TestT1StageCycle(t *testing.T) {
	state := program.LiftState{Lift: program.Deadlift, Tier: program.T1, Weight: 140, Stage: 1}

	fail1 := exercise(program.Deadlift, program.T1, 140, 5, 3, []int{3, 3, 3, 2, 1}, true)
	r := CalculateT1Progression(state, fail1, 5, units.Kilograms)
	require.Equal(t, OutcomeStageAdvance, r.Outcome)
	assert.Equal(t, 2, r.State.Stage)
	assert.Equal(t, 140.0, r.State.Weight)

	fail2 := exercise(program.Deadlift, program.T1, 140, 6, 2, []int{2, 2, 2, 2, 1, 1}, true)
	r = CalculateT1Progression(r.State, fail2, 5, units.Kilograms)
	require.Equal(t, OutcomeStageAdvance, r.Outcome)
	assert.Equal(t, 3, r.State.Stage)

	fail3 := exercise(program.Deadlift, program.T1, 140, 10, 1, []int{1, 1, 1, 1, 1, 1, 1, 0, 0, 0}, true)
	r = CalculateT1Progression(r.State, fail3, 5, units.Kilograms)
	require.Equal(t, OutcomeRetest, r.Outcome)
	assert.True(t, r.State.Pending5RMTest)
	assert.Equal(t, 1, r.State.BestSetReps)
	assert.Equal(t, 140.0, r.State.BestSetWeight)
	assert.Equal(t, 140.0, r.State.Weight)

	reset := ApplyT1Reset(r.State, 150, units.Kilograms)
	assert.False(t, reset.Pending5RMTest)
	assert.Equal(t, 1, reset.Stage)
	assert.Equal(t, 127.5, reset.Weight)
	assert.Zero(t, reset.BestSetReps)
	assert.Zero(t, reset.BestSetWeight)
}

func TestFailureDoesNotCompound(t *testing.T) {
	state := program.LiftState{Lift: program.Squat, Tier: program.T1, Weight: 100, Stage: 1}
	ex := exercise(program.Squat, program.T1, 100, 5, 3, []int{3, 3, 2, 2, 2}, true)

	first := CalculateT1Progression(state, ex, 5, units.Kilograms)
	second := CalculateT1Progression(state, ex, 5, units.Kilograms)
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, 2, second.State.Stage)
	assert.Equal(t, 1, state.Stage, "input state must not be mutated")
}

func TestT2Progression(t *testing.T) {
	tests := []struct {
		name    string
		state   program.LiftState
		done    []int
		sets    int
		reps    int
		want    program.LiftState
		outcome Outcome
	}{
		{
			name:    "success at stage 1",
			state:   program.LiftState{Lift: program.Bench, Tier: program.T2, Weight: 40, Stage: 1},
			sets:    3,
			reps:    10,
			done:    []int{10, 10, 10},
			want:    program.LiftState{Lift: program.Bench, Tier: program.T2, Weight: 42.5, Stage: 1},
			outcome: OutcomeSuccess,
		},
		{
			name:    "stage 1 failure stores anchor",
			state:   program.LiftState{Lift: program.Bench, Tier: program.T2, Weight: 50, Stage: 1},
			sets:    3,
			reps:    10,
			done:    []int{10, 8, 7},
			want:    program.LiftState{Lift: program.Bench, Tier: program.T2, Weight: 50, Stage: 2, LastStage1Weight: ptr(50)},
			outcome: OutcomeStageAdvance,
		},
		{
			name:    "stage 2 failure keeps anchor",
			state:   program.LiftState{Lift: program.Bench, Tier: program.T2, Weight: 52.5, Stage: 2, LastStage1Weight: ptr(50)},
			sets:    3,
			reps:    8,
			done:    []int{8, 6, 5},
			want:    program.LiftState{Lift: program.Bench, Tier: program.T2, Weight: 52.5, Stage: 3, LastStage1Weight: ptr(50)},
			outcome: OutcomeStageAdvance,
		},
		{
			name:    "stage 3 failure resets from anchor",
			state:   program.LiftState{Lift: program.Squat, Tier: program.T2, Weight: 60, Stage: 3, LastStage1Weight: ptr(50)},
			sets:    3,
			reps:    6,
			done:    []int{6, 5, 4},
			want:    program.LiftState{Lift: program.Squat, Tier: program.T2, Weight: 60, Stage: 1},
			outcome: OutcomeReset,
		},
		{
			name:    "stage 3 failure without anchor uses current weight",
			state:   program.LiftState{Lift: program.Squat, Tier: program.T2, Weight: 60, Stage: 3},
			sets:    3,
			reps:    6,
			done:    []int{6, 5, 4},
			want:    program.LiftState{Lift: program.Squat, Tier: program.T2, Weight: 70, Stage: 1},
			outcome: OutcomeReset,
		},
		{
			name:    "success at stage 2 keeps anchor",
			state:   program.LiftState{Lift: program.Squat, Tier: program.T2, Weight: 60, Stage: 2, LastStage1Weight: ptr(55)},
			sets:    3,
			reps:    8,
			done:    []int{8, 8, 8},
			want:    program.LiftState{Lift: program.Squat, Tier: program.T2, Weight: 65, Stage: 2, LastStage1Weight: ptr(55)},
			outcome: OutcomeSuccess,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := exercise(tt.state.Lift, program.T2, tt.state.Weight, tt.sets, tt.reps, tt.done, false)
			inc := Increment(program.T2, tt.state.Lift, units.Kilograms)
			r := CalculateT2Progression(tt.state, ex, inc, units.Kilograms)
			if diff := cmp.Diff(tt.want, r.State); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.outcome, r.Outcome)
		})
	}
}

func TestT2ResetInPounds(t *testing.T) {
	state := program.LiftState{Lift: program.OHP, Tier: program.T2, Weight: 85, Stage: 3, LastStage1Weight: ptr(75)}
	ex := exercise(program.OHP, program.T2, 85, 3, 6, []int{6, 4, 3}, false)
	r := CalculateT2Progression(state, ex, 5, units.Pounds)
	assert.Equal(t, 95.0, r.State.Weight)
	assert.Nil(t, r.State.LastStage1Weight)
}

func TestT3Progression(t *testing.T) {
	hit := exercise(program.LatPulldown, program.T3, 30, 3, 15, []int{15, 15, 25}, true)
	r := CalculateT3Progression(30, hit, 2.5, units.Kilograms)
	assert.Equal(t, 32.5, r.Weight)
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	miss := exercise(program.LatPulldown, program.T3, 30, 3, 15, []int{15, 15, 24}, true)
	r = CalculateT3Progression(30, miss, 2.5, units.Kilograms)
	assert.Equal(t, 30.0, r.Weight)
	assert.Equal(t, OutcomeHold, r.Outcome)
}

func TestForcedT3Progression(t *testing.T) {
	state := program.LiftState{Lift: program.Bench, Tier: program.T1, Weight: 20, Stage: 2}
	ex := exercise(program.Bench, program.T1, 20, 3, 15, []int{15, 15, 26}, true)
	r := CalculateForcedT3Progression(state, ex, 1.25, units.Kilograms)
	assert.Equal(t, 21.25, r.State.Weight)
	assert.Equal(t, 2, r.State.Stage, "forced T3 never touches the stage")
}

func TestEstimate5RM(t *testing.T) {
	assert.Equal(t, 102.5, Estimate5RM(100, 5, units.Kilograms))
	assert.Equal(t, 230.0, Estimate5RM(225, 5, units.Pounds))
	assert.Zero(t, Estimate5RM(100, 0, units.Kilograms))
	assert.Zero(t, Estimate5RM(0, 5, units.Kilograms))
}

func TestApplyT1ResetIgnoresInvalidMax(t *testing.T) {
	state := program.LiftState{Lift: program.Squat, Tier: program.T1, Weight: 100, Stage: 3, Pending5RMTest: true}
	got := ApplyT1Reset(state, 0, units.Kilograms)
	assert.Equal(t, state, got)
}

func TestIncrement(t *testing.T) {
	assert.Equal(t, 5.0, Increment(program.T1, program.Squat, units.Kilograms))
	assert.Equal(t, 2.5, Increment(program.T1, program.Bench, units.Kilograms))
	assert.Equal(t, 10.0, Increment(program.T2, program.Deadlift, units.Pounds))
	assert.Equal(t, 5.0, Increment(program.T2, program.OHP, units.Pounds))
	assert.Equal(t, 2.5, Increment(program.T3, program.LatPulldown, units.Kilograms))
}

func TestScheme(t *testing.T) {
	assert.Equal(t, RepScheme{Sets: 5, Reps: 3, AMRAP: true}, Scheme(program.T1, 1))
	assert.Equal(t, RepScheme{Sets: 10, Reps: 1, AMRAP: true}, Scheme(program.T1, 3))
	assert.Equal(t, RepScheme{Sets: 3, Reps: 8}, Scheme(program.T2, 2))
	assert.Equal(t, RepScheme{Sets: 3, Reps: 15, AMRAP: true}, Scheme(program.T3, 0))
	assert.Equal(t, Scheme(program.T2, 3), Scheme(program.T2, 7), "stages clamp to the ladder")
}
