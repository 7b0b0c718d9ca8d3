package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/store"
	"github.com/liftmate/liftmate/internal/units"
)

// ErrNoProgram is returned before setup has created a program.
var ErrNoProgram = errors.New("no program: run setup first")

// Service persists workouts and program changes.
type Service struct {
	store *store.Store
	unit  units.Unit
	now   func() time.Time
}

// NewService creates a Service. unit is used when no settings are stored yet.
func NewService(st *store.Store, unit units.Unit) *Service {
	return &Service{store: st, unit: unit, now: time.Now}
}

// Settings loads the current settings.
func (s *Service) Settings(ctx context.Context) (settings.Settings, error) {
	return s.store.SettingsRepo().Load(ctx, s.unit)
}

// UpdateSettings merges p into the stored settings and saves the result.
func (s *Service) UpdateSettings(ctx context.Context, p settings.Patch) (settings.Settings, error) {
	cur, err := s.Settings(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	next, err := settings.Apply(cur, p)
	if err != nil {
		return cur, fmt.Errorf("update settings: %w", err)
	}
	if err := s.store.SettingsRepo().Save(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}

// Program loads the current program, or ErrNoProgram.
func (s *Service) Program(ctx context.Context) (program.State, error) {
	st, err := s.store.ProgramRepo().Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return program.State{}, ErrNoProgram
	}
	return st, err
}

// Setup creates a fresh program and stores settings for unit. Switching unit
// resets the bar, handle and plates to the new unit's defaults; exercise
// customisations are kept.
func (s *Service) Setup(ctx context.Context, unit units.Unit, t1 map[program.LiftID]float64, accessories map[program.LiftID]float64) (program.State, error) {
	cfg, err := s.store.SettingsRepo().Load(ctx, unit)
	if err != nil {
		return program.State{}, err
	}
	if cfg.Unit != unit {
		d := settings.Default(unit)
		cfg.Unit = d.Unit
		cfg.BarWeight = d.BarWeight
		cfg.DumbbellHandleWeight = d.DumbbellHandleWeight
		cfg.PlateInventory = d.PlateInventory
	}
	state := program.NewState(t1, accessories, unit)

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.ProgramRepo().Reset(ctx); err != nil {
			return err
		}
		if err := tx.SettingsRepo().Save(ctx, cfg); err != nil {
			return err
		}
		return tx.ProgramRepo().Save(ctx, state)
	})
	if err != nil {
		return program.State{}, fmt.Errorf("setup program: %w", err)
	}
	logrus.WithFields(logrus.Fields{"unit": unit, "lifts": len(t1)}).Info("program created")
	return state, nil
}

// Next builds the next workout without storing it.
func (s *Service) Next(ctx context.Context) (program.Workout, settings.Settings, error) {
	state, err := s.Program(ctx)
	if err != nil {
		return program.Workout{}, settings.Settings{}, err
	}
	cfg, err := s.Settings(ctx)
	if err != nil {
		return program.Workout{}, settings.Settings{}, err
	}
	return Build(state, cfg, s.now()), cfg, nil
}

// Complete finishes w against the stored program and history, then saves the
// workout and the new program in one transaction.
func (s *Service) Complete(ctx context.Context, w program.Workout) (Outcome, error) {
	state, err := s.Program(ctx)
	if err != nil {
		return Outcome{}, err
	}
	cfg, err := s.Settings(ctx)
	if err != nil {
		return Outcome{}, err
	}
	history, err := s.store.WorkoutRepo().Completed(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("load history: %w", err)
	}

	out, err := Finish(w, state, history, cfg)
	if err != nil {
		return Outcome{}, err
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.WorkoutRepo().Save(ctx, out.Workout); err != nil {
			return err
		}
		return tx.ProgramRepo().Save(ctx, out.State)
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("save workout: %w", err)
	}
	return out, nil
}

// Retest resolves a pending 5RM test for a T1 lift.
func (s *Service) Retest(ctx context.Context, lift program.LiftID, fiveRM float64) (program.LiftState, error) {
	if fiveRM <= 0 {
		return program.LiftState{}, fmt.Errorf("retest %s: 5RM must be positive, got %v", lift, fiveRM)
	}
	return s.updateLift(ctx, program.T1, lift, func(ls program.LiftState, unit units.Unit) program.LiftState {
		return progression.ApplyT1Reset(ls, fiveRM, unit)
	})
}

// SetWeight overrides the programmed weight of a lift.
func (s *Service) SetWeight(ctx context.Context, lift program.LiftID, tier program.Tier, weight float64) error {
	state, err := s.Program(ctx)
	if err != nil {
		return err
	}
	if !state.SetWeight(lift, tier, weight) {
		return fmt.Errorf("set weight: %s %s is not tracked or %v is not a valid weight", lift, tier, weight)
	}
	if err := s.store.ProgramRepo().Save(ctx, state); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"lift": lift, "tier": tier, "weight": weight}).Info("weight overridden")
	return nil
}

// History returns stored workouts, newest first. limit 0 means all.
func (s *Service) History(ctx context.Context, limit int) ([]program.Workout, error) {
	return s.store.WorkoutRepo().List(ctx, store.QueryOpts{Desc: true, Limit: limit})
}

// Workout returns one stored workout.
func (s *Service) Workout(ctx context.Context, id string) (program.Workout, error) {
	return s.store.WorkoutRepo().Get(ctx, id)
}

// Reset deletes the program and all workouts. Settings are kept.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.ProgramRepo().Reset(ctx); err != nil {
		return fmt.Errorf("reset program: %w", err)
	}
	logrus.Warn("program and workout history deleted")
	return nil
}

func (s *Service) updateLift(ctx context.Context, tier program.Tier, lift program.LiftID, fn func(program.LiftState, units.Unit) program.LiftState) (program.LiftState, error) {
	state, err := s.Program(ctx)
	if err != nil {
		return program.LiftState{}, err
	}
	cfg, err := s.Settings(ctx)
	if err != nil {
		return program.LiftState{}, err
	}
	ls, ok := state.Lift(tier, lift)
	if !ok {
		return program.LiftState{}, fmt.Errorf("%s %s is not tracked", lift, tier)
	}
	ls = fn(ls, cfg.Unit)
	state.PutLift(ls)
	if err := s.store.ProgramRepo().Save(ctx, state); err != nil {
		return program.LiftState{}, err
	}
	return ls, nil
}
