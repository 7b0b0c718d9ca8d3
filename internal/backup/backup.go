// Package backup exports and imports the whole app state as one JSON bundle.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/store"
	"github.com/liftmate/liftmate/internal/units"
)

// BundleVersion is the version written by Export.
const BundleVersion = 1

// ErrInvalidBundle is returned when an import file fails validation.
var ErrInvalidBundle = errors.New("invalid backup bundle")

// Bundle is the export file format.
type Bundle struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Settings   settings.Settings `json:"settings"`
	Program    *program.State    `json:"program"`
	Workouts   []program.Workout `json:"workouts"`
}

// rawBundle defers settings decoding so legacy documents can be migrated.
type rawBundle struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Settings   json.RawMessage   `json:"settings"`
	Program    *program.State    `json:"program"`
	Workouts   []program.Workout `json:"workouts"`
}

// Export reads everything from st into a bundle.
func Export(ctx context.Context, st *store.Store, unit units.Unit, now time.Time) (Bundle, error) {
	cfg, err := st.SettingsRepo().Load(ctx, unit)
	if err != nil {
		return Bundle{}, fmt.Errorf("export settings: %w", err)
	}
	b := Bundle{Version: BundleVersion, ExportedAt: now.UTC(), Settings: cfg}

	state, err := st.ProgramRepo().Load(ctx)
	switch {
	case err == nil:
		b.Program = &state
	case !errors.Is(err, store.ErrNotFound):
		return Bundle{}, fmt.Errorf("export program: %w", err)
	}

	b.Workouts, err = st.WorkoutRepo().List(ctx, store.QueryOpts{})
	if err != nil {
		return Bundle{}, fmt.Errorf("export workouts: %w", err)
	}
	return b, nil
}

// Write encodes b as indented JSON.
func Write(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	return nil
}

// Decode reads and validates a bundle. Legacy settings are upgraded.
func Decode(r io.Reader) (Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}

	var rb rawBundle
	if err := json.Unmarshal(raw, &rb); err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	cfg, migrated, err := settings.Migrate(rb.Settings)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	if migrated {
		logrus.Info("backup carries legacy settings, upgraded on import")
	}

	b := Bundle{
		Version:    rb.Version,
		ExportedAt: rb.ExportedAt,
		Settings:   cfg,
		Program:    rb.Program,
		Workouts:   rb.Workouts,
	}
	if err := check(b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	return b, nil
}

// Import replaces all stored data with b in one transaction.
func Import(ctx context.Context, st *store.Store, b Bundle) error {
	err := st.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.ProgramRepo().Reset(ctx); err != nil {
			return err
		}
		if err := tx.SettingsRepo().Save(ctx, b.Settings); err != nil {
			return err
		}
		if b.Program != nil {
			if err := tx.ProgramRepo().Save(ctx, *b.Program); err != nil {
				return err
			}
		}
		for _, w := range b.Workouts {
			if err := tx.WorkoutRepo().Save(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import bundle: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"workouts": len(b.Workouts),
		"program":  b.Program != nil,
	}).Info("backup imported")
	return nil
}

// check validates what the schema cannot express.
func check(b Bundle) error {
	err := settings.Validate(b.Settings)
	seen := make(map[string]bool, len(b.Workouts))
	for _, w := range b.Workouts {
		if seen[w.ID] {
			err = multierr.Append(err, fmt.Errorf("duplicate workout id %q", w.ID))
		}
		seen[w.ID] = true
	}
	if b.Program != nil {
		for id, ls := range b.Program.T1 {
			if ls.Lift != id || ls.Tier != program.T1 {
				err = multierr.Append(err, fmt.Errorf("program t1 entry %q holds %s %s", id, ls.Lift, ls.Tier))
			}
		}
		for id, ls := range b.Program.T2 {
			if ls.Pending5RMTest {
				err = multierr.Append(err, fmt.Errorf("program t2 entry %q cannot await a 5RM test", id))
			}
			if ls.Lift != id || ls.Tier != program.T2 {
				err = multierr.Append(err, fmt.Errorf("program t2 entry %q holds %s %s", id, ls.Lift, ls.Tier))
			}
		}
	}
	return err
}
