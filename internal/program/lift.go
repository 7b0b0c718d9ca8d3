package program

// LiftID identifies a lift or accessory exercise, e.g. "squat" or "lat-pulldown".
type LiftID string

// The four main lifts that carry T1 and T2 progressions.
const (
	Squat    LiftID = "squat"
	Bench    LiftID = "bench"
	Deadlift LiftID = "deadlift"
	OHP      LiftID = "ohp"
)

// MainLifts returns the main lifts in display order.
func MainLifts() []LiftID {
	return []LiftID{Squat, Bench, Deadlift, OHP}
}

// IsMainLift reports whether id is one of the four main lifts.
func IsMainLift(id LiftID) bool {
	switch id {
	case Squat, Bench, Deadlift, OHP:
		return true
	}
	return false
}

// IsUpperBody reports whether a main lift takes the upper-body increment.
func IsUpperBody(id LiftID) bool {
	return id == Bench || id == OHP
}

// Tier is the role of a lift within a workout.
type Tier string

const (
	T1 Tier = "T1"
	T2 Tier = "T2"
	T3 Tier = "T3"
)

// Tiers returns all tiers in order.
func Tiers() []Tier {
	return []Tier{T1, T2, T3}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == T1 || t == T2 || t == T3
}
