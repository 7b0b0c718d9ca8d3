package exercises

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/liftmate/liftmate/internal/program"
)

func testCatalog() Catalog {
	return Catalog{
		Library: []Definition{
			{ID: "front-squat", Name: "Front Squat"},
			{ID: "db-bench", Name: "Dumbbell Bench", IsDumbbell: true},
			{ID: "cable-row", Name: "Cable Row"},
			{ID: program.LatPulldown, Name: "Wide Pulldown"},
		},
		Substitutions: []Substitution{
			{Original: program.Squat, Substitute: "front-squat"},
			{Original: program.Bench, Substitute: "db-bench", ForceT3Progression: true},
			{Original: program.OHP, Substitute: "landmine-press"},
		},
	}
}

func TestName(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		name string
		id   program.LiftID
		tier program.Tier
		want string
	}{
		{"substitute in library", program.Squat, program.T1, "Front Squat"},
		{"substitute applies to every tier", program.Squat, program.T2, "Front Squat"},
		{"substitute missing from library", program.OHP, program.T1, "landmine-press"},
		{"builtin lift", program.Deadlift, program.T1, "Deadlift"},
		{"library overrides builtin t3", program.LatPulldown, program.T3, "Wide Pulldown"},
		{"builtin t3", program.DumbbellRow, program.T3, "Dumbbell Row"},
		{"custom t3", "cable-row", program.T3, "Cable Row"},
		{"unknown t3", "zercher-carry", program.T3, "zercher-carry"},
		{"unknown lift", "snatch", program.T1, "snatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Name(tt.id, tt.tier))
		})
	}
}

func TestIsDumbbell(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.IsDumbbell(program.Bench), "substituted with a dumbbell library entry")
	assert.False(t, c.IsDumbbell(program.Squat))
	assert.True(t, c.IsDumbbell(program.DumbbellRow), "builtin dumbbell list")
	assert.False(t, c.IsDumbbell(program.LatPulldown))
	assert.False(t, c.IsDumbbell("unknown"))
	assert.False(t, Catalog{}.IsDumbbell(program.Deadlift))
}

func TestForcedT3(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.IsForcedT3(program.Bench))
	assert.False(t, c.IsForcedT3(program.Squat))
	assert.True(t, c.ProgressesAsT3(program.Bench, program.T2))
	assert.True(t, c.ProgressesAsT3(program.LatPulldown, program.T3))
	assert.False(t, c.ProgressesAsT3(program.Squat, program.T1))
}

func TestResolve(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, program.LiftID("front-squat"), c.Resolve(program.Squat))
	assert.Equal(t, program.Deadlift, c.Resolve(program.Deadlift))
}
