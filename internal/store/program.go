package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/liftmate/liftmate/internal/program"
)

// programRepo implements ProgramRepo on the documents table.
type programRepo struct {
	store *Store
}

func (r *programRepo) Load(ctx context.Context) (program.State, error) {
	body, err := r.store.Get(ctx, CollectionProgram, singletonKey)
	if err != nil {
		return program.State{}, err
	}
	var s program.State
	if err := json.Unmarshal(body, &s); err != nil {
		return program.State{}, fmt.Errorf("unmarshal program: %w", err)
	}
	return s, nil
}

func (r *programRepo) Save(ctx context.Context, s program.State) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal program: %w", err)
	}
	return r.store.Put(ctx, Document{Collection: CollectionProgram, Key: singletonKey, Body: body})
}

func (r *programRepo) Reset(ctx context.Context) error {
	return r.store.WithTx(ctx, func(tx *Store) error {
		if err := tx.Delete(ctx, CollectionProgram, singletonKey); err != nil {
			return err
		}
		return tx.DeleteCollection(ctx, CollectionWorkouts)
	})
}
