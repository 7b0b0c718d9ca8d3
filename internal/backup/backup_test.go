package backup

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/store"
	"github.com/liftmate/liftmate/internal/units"
)

var exportTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seed(t *testing.T, st *store.Store) {
	t.Helper()
	ctx := context.Background()
	cfg := settings.Default(units.Kilograms)
	cfg.BarWeight = 15
	require.NoError(t, st.SettingsRepo().Save(ctx, cfg))

	state := program.NewState(map[program.LiftID]float64{program.Squat: 100, program.Bench: 60}, nil, units.Kilograms)
	state.WorkoutCount = 2
	require.NoError(t, st.ProgramRepo().Save(ctx, state))

	for _, w := range []program.Workout{
		{ID: "a", Date: "2026-03-01T10:00:00Z", Type: program.WorkoutA1, Completed: true, Exercises: []program.ExerciseLog{{
			LiftID: program.Squat, Tier: program.T1, Weight: 100, TargetSets: 5, TargetReps: 3,
			Sets: []program.SetLog{{SetNumber: 1, Reps: 3, Completed: true}},
		}}},
		{ID: "b", Date: "2026-03-03T10:00:00Z", Type: program.WorkoutB1, Completed: true},
	} {
		require.NoError(t, st.WorkoutRepo().Save(ctx, w))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := openTestStore(t)
	seed(t, src)

	b, err := Export(ctx, src, units.Kilograms, exportTime)
	require.NoError(t, err)
	assert.Equal(t, BundleVersion, b.Version)
	require.NotNil(t, b.Program)
	assert.Len(t, b.Workouts, 2)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(b, decoded); diff != "" {
		t.Errorf("bundle round trip (-want +got):\n%s", diff)
	}

	dst := openTestStore(t)
	require.NoError(t, dst.WorkoutRepo().Save(ctx, program.Workout{ID: "stale", Date: "2025-01-01", Completed: true}))
	require.NoError(t, Import(ctx, dst, decoded))

	again, err := Export(ctx, dst, units.Kilograms, exportTime)
	require.NoError(t, err)
	if diff := cmp.Diff(b, again); diff != "" {
		t.Errorf("import did not reproduce the source (-want +got):\n%s", diff)
	}
}

func TestExportWithoutProgram(t *testing.T) {
	st := openTestStore(t)
	b, err := Export(context.Background(), st, units.Pounds, exportTime)
	require.NoError(t, err)
	assert.Nil(t, b.Program)
	assert.Equal(t, settings.Default(units.Pounds), b.Settings)
}

func TestDecodeLegacySettings(t *testing.T) {
	raw := `{
		"version": 1,
		"settings": {"unit": "kg", "t3Library": [{"id": "face-pull", "name": "Face Pull"}]},
		"program": null,
		"workouts": []
	}`
	b, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, settings.CurrentVersion, b.Settings.Version)
	require.Len(t, b.Settings.ExerciseLibrary, 1)
	assert.Equal(t, "Face Pull", b.Settings.ExerciseLibrary[0].Name)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing workouts", `{"version": 1, "settings": {}}`},
		{"future version", `{"version": 9, "settings": {}, "workouts": []}`},
		{"bad workout type", `{"version": 1, "settings": {}, "workouts": [{"id": "x", "date": "d", "type": "C1", "exercises": []}]}`},
		{"bad stage", `{"version": 1, "settings": {}, "workouts": [], "program": {
			"t1": {"squat": {"liftId": "squat", "tier": "T1", "weight": 100, "stage": 4}},
			"t2": {}, "nextWorkoutType": "A1", "workoutCount": 0}}`},
		{"negative reps", `{"version": 1, "settings": {}, "workouts": [{"id": "x", "date": "d", "type": "A1",
			"exercises": [{"liftId": "squat", "tier": "T1", "weight": 100, "sets": [{"reps": -1}]}]}]}`},
		{"duplicate ids", `{"version": 1, "settings": {}, "workouts": [
			{"id": "x", "date": "d", "type": "A1", "exercises": []},
			{"id": "x", "date": "d", "type": "B1", "exercises": []}]}`},
		{"mismatched program key", `{"version": 1, "settings": {}, "workouts": [], "program": {
			"t1": {"squat": {"liftId": "bench", "tier": "T1", "weight": 100, "stage": 1}},
			"t2": {}, "nextWorkoutType": "A1", "workoutCount": 0}}`},
		{"unknown unit", `{"version": 1, "settings": {"unit": "stone"}, "workouts": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidBundle), "got %v", err)
		})
	}
}
