package medals

import (
	"fmt"

	"github.com/liftmate/liftmate/internal/program"
)

// Best holds the historical maxima of one (lift, tier) pair.
type Best struct {
	MaxWeight float64
	MaxVolume float64
}

// History maps "liftId:tier" to the best performance seen so far.
type History map[string]Best

// Key returns the history key of a lift at a tier.
func Key(lift program.LiftID, tier program.Tier) string {
	return fmt.Sprintf("%s:%s", lift, tier)
}

// BuildHistory scans past workouts once. Exercises with no reps are skipped.
func BuildHistory(workouts []program.Workout) History {
	h := make(History)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			if ex.TotalReps() == 0 {
				continue
			}
			k := Key(ex.LiftID, ex.Tier)
			b := h[k]
			b.MaxWeight = max(b.MaxWeight, ex.Weight)
			b.MaxVolume = max(b.MaxVolume, ex.Volume())
			h[k] = b
		}
	}
	return h
}

// Lookup returns the best for a lift at a tier; the zero Best means no history.
func (h History) Lookup(lift program.LiftID, tier program.Tier) Best {
	return h[Key(lift, tier)]
}
