package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/units"
)

func TestWorkoutRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.WorkoutRepo()
	ctx := context.Background()

	w1 := program.Workout{ID: "w1", Date: "2026-03-01T10:00:00Z", Type: program.WorkoutA1, Completed: true,
		Exercises: []program.ExerciseLog{{
			LiftID: program.Squat, Tier: program.T1, Weight: 100, TargetSets: 5, TargetReps: 3,
			Sets: []program.SetLog{{SetNumber: 1, Reps: 3, Completed: true}},
		}},
		Medals: []program.Medal{{Type: program.MedalStreak, Value: 5}},
	}
	w2 := program.Workout{ID: "w2", Date: "2026-03-03T10:00:00Z", Type: program.WorkoutB1, Completed: true}
	draft := program.Workout{ID: "w3", Date: "2026-03-05T10:00:00Z", Type: program.WorkoutA2}

	for _, w := range []program.Workout{w2, draft, w1} {
		require.NoError(t, repo.Save(ctx, w))
	}
	assert.Error(t, repo.Save(ctx, program.Workout{}), "id is required")

	got, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	if diff := cmp.Diff(w1, got); diff != "" {
		t.Errorf("workout round trip (-want +got):\n%s", diff)
	}

	completed, err := repo.Completed(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Equal(t, "w1", completed[0].ID)
	assert.Equal(t, "w2", completed[1].ID)

	latest, err := repo.List(ctx, QueryOpts{Desc: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "w3", latest[0].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, repo.Delete(ctx, "w2"))
	_, err = repo.Get(ctx, "w2")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProgramRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgramRepo()
	ctx := context.Background()

	_, err := repo.Load(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	state := program.NewState(map[program.LiftID]float64{
		program.Squat: 100, program.Bench: 60, program.Deadlift: 120, program.OHP: 40,
	}, map[program.LiftID]float64{program.LatPulldown: 30}, units.Kilograms)
	anchor := 50.0
	t2 := state.T2[program.Squat]
	t2.Stage = 2
	t2.LastStage1Weight = &anchor
	state.T2[program.Squat] = t2

	require.NoError(t, repo.Save(ctx, state))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("program round trip (-want +got):\n%s", diff)
	}

	require.NoError(t, s.WorkoutRepo().Save(ctx, program.Workout{ID: "w", Date: "2026-01-01", Completed: true}))
	require.NoError(t, repo.Reset(ctx))
	_, err = repo.Load(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))
	n, err := s.WorkoutRepo().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSettingsRepoMigratesOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	def, err := repo.Load(ctx, units.Pounds)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(units.Pounds), def, "missing document yields defaults")

	legacy := `{"unit":"kg","barWeight":20,"customExercises":[{"id":"front-squat","name":"Front Squat","replacesLift":"squat"}]}`
	require.NoError(t, s.Put(ctx, Document{Collection: CollectionSettings, Key: singletonKey, Body: []byte(legacy)}))

	first, err := repo.Load(ctx, units.Kilograms)
	require.NoError(t, err)
	assert.Equal(t, settings.CurrentVersion, first.Version)
	assert.Equal(t, []exercises.Substitution{{Original: program.Squat, Substitute: "front-squat"}}, first.LiftSubstitutions)

	raw, err := s.Get(ctx, CollectionSettings, singletonKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "customExercises", "migrated document is written back")

	second, err := repo.Load(ctx, units.Kilograms)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second load differs (-first +second):\n%s", diff)
	}
}

func TestSettingsRepoRejectsBadDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, Document{Collection: CollectionSettings, Key: singletonKey, Body: []byte(`{"unit":"stone"}`)}))

	_, err := s.SettingsRepo().Load(ctx, units.Kilograms)
	assert.True(t, errors.Is(err, units.ErrUnknownUnit))
}
