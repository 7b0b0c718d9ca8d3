package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/units"
)

// settingsRepo implements SettingsRepo on the documents table.
type settingsRepo struct {
	store *Store
}

func (r *settingsRepo) Load(ctx context.Context, fallback units.Unit) (settings.Settings, error) {
	body, err := r.store.Get(ctx, CollectionSettings, singletonKey)
	if errors.Is(err, ErrNotFound) {
		return settings.Default(fallback), nil
	}
	if err != nil {
		return settings.Settings{}, err
	}

	s, migrated, err := settings.Migrate(body)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if migrated {
		logrus.WithFields(logrus.Fields{
			"version":       s.Version,
			"library":       len(s.ExerciseLibrary),
			"substitutions": len(s.LiftSubstitutions),
		}).Info("migrated legacy settings document")
		if err := r.Save(ctx, s); err != nil {
			return settings.Settings{}, fmt.Errorf("write migrated settings: %w", err)
		}
	}
	return s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s settings.Settings) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return r.store.Put(ctx, Document{Collection: CollectionSettings, Key: singletonKey, Body: body})
}
