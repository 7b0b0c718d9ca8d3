package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/liftmate/liftmate/internal/program"
)

// workoutRepo implements WorkoutRepo on the documents table.
type workoutRepo struct {
	store *Store
}

func (r *workoutRepo) Save(ctx context.Context, w program.Workout) error {
	if w.ID == "" {
		return fmt.Errorf("save workout: missing id")
	}
	body, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}
	return r.store.Put(ctx, Document{
		Collection: CollectionWorkouts,
		Key:        w.ID,
		SortKey:    w.Date + "|" + w.ID,
		Body:       body,
	})
}

func (r *workoutRepo) Get(ctx context.Context, id string) (program.Workout, error) {
	body, err := r.store.Get(ctx, CollectionWorkouts, id)
	if err != nil {
		return program.Workout{}, err
	}
	var w program.Workout
	if err := json.Unmarshal(body, &w); err != nil {
		return program.Workout{}, fmt.Errorf("unmarshal workout %s: %w", id, err)
	}
	return w, nil
}

func (r *workoutRepo) List(ctx context.Context, opts QueryOpts) ([]program.Workout, error) {
	docs, err := r.store.Query(ctx, CollectionWorkouts, opts)
	if err != nil {
		return nil, err
	}
	out := make([]program.Workout, 0, len(docs))
	for _, d := range docs {
		var w program.Workout
		if err := json.Unmarshal(d.Body, &w); err != nil {
			return nil, fmt.Errorf("unmarshal workout %s: %w", d.Key, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *workoutRepo) Completed(ctx context.Context) ([]program.Workout, error) {
	return r.List(ctx, QueryOpts{Field: "completed", Value: true})
}

func (r *workoutRepo) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx, CollectionWorkouts, QueryOpts{Field: "completed", Value: true})
}

func (r *workoutRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionWorkouts, id)
}
