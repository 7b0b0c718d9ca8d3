package store

import (
	"context"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/units"
)

// Collection names.
const (
	CollectionWorkouts = "workouts"
	CollectionProgram  = "program"
	CollectionSettings = "settings"
)

// singletonKey addresses the one program and the one settings document.
const singletonKey = "current"

// WorkoutRepo manages workout documents.
type WorkoutRepo interface {
	// Save inserts or replaces a workout by id.
	Save(ctx context.Context, w program.Workout) error

	// Get returns a workout by id, or ErrNotFound.
	Get(ctx context.Context, id string) (program.Workout, error)

	// List returns workouts ordered by date; opts.Desc lists newest first.
	List(ctx context.Context, opts QueryOpts) ([]program.Workout, error)

	// Completed returns every completed workout, oldest first.
	Completed(ctx context.Context) ([]program.Workout, error)

	// Count returns the number of completed workouts.
	Count(ctx context.Context) (int, error)

	// Delete removes a workout by id.
	Delete(ctx context.Context, id string) error
}

// ProgramRepo manages the single program state document.
type ProgramRepo interface {
	// Load returns the program, or ErrNotFound before setup.
	Load(ctx context.Context) (program.State, error)

	// Save replaces the program.
	Save(ctx context.Context, s program.State) error

	// Reset deletes the program and every workout.
	Reset(ctx context.Context) error
}

// SettingsRepo manages the single settings document.
type SettingsRepo interface {
	// Load returns the settings, upgrading and rewriting legacy documents.
	// A missing document yields settings.Default(fallback).
	Load(ctx context.Context, fallback units.Unit) (settings.Settings, error)

	// Save replaces the settings.
	Save(ctx context.Context, s settings.Settings) error
}
