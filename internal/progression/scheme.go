package progression

import (
	"math"

	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/units"
)

// T3AMRAPTarget is the AMRAP rep count that earns an accessory weight increase.
const T3AMRAPTarget = 25

// Rep scheme ladders per stage.
var (
	t1Schemes = map[int]RepScheme{
		1: {Sets: 5, Reps: 3, AMRAP: true},
		2: {Sets: 6, Reps: 2, AMRAP: true},
		3: {Sets: 10, Reps: 1, AMRAP: true},
	}
	t2Schemes = map[int]RepScheme{
		1: {Sets: 3, Reps: 10},
		2: {Sets: 3, Reps: 8},
		3: {Sets: 3, Reps: 6},
	}
	t3Scheme = RepScheme{Sets: 3, Reps: 15, AMRAP: true}
)

// RepScheme is the set/rep prescription of a stage.
type RepScheme struct {
	Sets  int
	Reps  int
	AMRAP bool // last set is as-many-reps-as-possible
}

// Scheme returns the prescription for tier at stage. T3 ignores the stage;
// out-of-range stages are clamped to the ladder.
func Scheme(tier program.Tier, stage int) RepScheme {
	stage = max(1, min(stage, 3))
	switch tier {
	case program.T1:
		return t1Schemes[stage]
	case program.T2:
		return t2Schemes[stage]
	default:
		return t3Scheme
	}
}

// RepTargetHit reports whether the exercise met its total rep target.
func RepTargetHit(ex program.ExerciseLog) bool {
	return ex.TotalReps() >= ex.TargetTotal()
}

// AMRAPTargetHit reports whether the AMRAP set reached T3AMRAPTarget.
func AMRAPTargetHit(ex program.ExerciseLog) bool {
	return ex.AMRAPReps() >= T3AMRAPTarget
}

// Increment returns the standard weight step for a lift at a tier.
func Increment(tier program.Tier, lift program.LiftID, unit units.Unit) float64 {
	inc := units.Table(unit).Increments
	upper := program.IsUpperBody(lift)
	switch tier {
	case program.T1:
		if upper {
			return inc.T1Upper
		}
		return inc.T1Lower
	case program.T2:
		if upper {
			return inc.T2Upper
		}
		return inc.T2Lower
	default:
		return inc.T3
	}
}

// T3Increment is the smallest plate owned, or the unit's T3 step when the
// inventory is empty.
func T3Increment(inv plates.Inventory, unit units.Unit) float64 {
	if s := inv.Smallest(); s > 0 {
		return s
	}
	return units.Table(unit).Increments.T3
}

// NextWeight adds increment to weight without accumulating float noise.
func NextWeight(weight, increment float64) float64 {
	return math.Round((weight+increment)*1e6) / 1e6
}
