// Package stats derives summary numbers from a completed workout.
package stats

import (
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/warmup"
)

// Summary holds the figures shown after a workout.
type Summary struct {
	WorkVolume    float64
	WarmupVolume  float64
	TotalReps     int
	WorkReps      int
	WarmupReps    int
	CompletedSets int
	FailedSets    int
	// SuccessRate is exercises that hit their rep target over exercises attempted.
	SuccessRate float64
	Heaviest    *Lift
}

// Lift names a weight lifted at a tier.
type Lift struct {
	LiftID program.LiftID
	Tier   program.Tier
	Weight float64
}

// TotalVolume is work plus estimated warmup volume.
func (s Summary) TotalVolume() float64 {
	return s.WorkVolume + s.WarmupVolume
}

// Summarize builds the summary of w. Warmup volume is estimated from the
// warmup ramp of every barbell T1 and T2 lift that was attempted.
func Summarize(w program.Workout, cfg settings.Settings) Summary {
	var (
		s         Summary
		attempted int
		hit       int
	)
	catalog := cfg.Catalog()
	for _, ex := range w.Exercises {
		s.CompletedSets += ex.CompletedSets()
		s.FailedSets += ex.FailedSets()
		reps := ex.TotalReps()
		if reps == 0 {
			continue
		}
		attempted++
		if progression.RepTargetHit(ex) {
			hit++
		}
		s.WorkReps += reps
		s.WorkVolume += ex.Volume()

		if ex.Tier != program.T3 && !catalog.IsDumbbell(ex.LiftID) {
			sets := warmup.Build(ex.Weight, cfg.BarWeight, cfg.PlateInventory, cfg.Unit)
			s.WarmupVolume += warmup.Volume(sets)
			for _, set := range sets {
				s.WarmupReps += set.Reps
			}
		}

		if s.Heaviest == nil || ex.Weight > s.Heaviest.Weight {
			s.Heaviest = &Lift{LiftID: ex.LiftID, Tier: ex.Tier, Weight: ex.Weight}
		}
	}
	s.TotalReps = s.WorkReps + s.WarmupReps
	if attempted > 0 {
		s.SuccessRate = float64(hit) / float64(attempted)
	}
	return s
}

// PercentGain is the change from start to current in percent. A non-positive
// start yields 0.
func PercentGain(start, current float64) float64 {
	if start <= 0 {
		return 0
	}
	return (current - start) / start * 100
}
