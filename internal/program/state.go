package program

import (
	"maps"

	"github.com/liftmate/liftmate/internal/units"
)

// LiftState is the progression state of one (lift, tier) pair.
type LiftState struct {
	Lift   LiftID  `json:"liftId"`
	Tier   Tier    `json:"tier"`
	Weight float64 `json:"weight"`
	Stage  int     `json:"stage"`
	// LastStage1Weight anchors the T2 reset after a stage-3 failure.
	LastStage1Weight *float64 `json:"lastStage1Weight,omitempty"`
	// Pending5RMTest marks a T1 lift that failed stage 3 and needs a new 5RM.
	Pending5RMTest bool    `json:"pending5RMTest,omitempty"`
	BestSetReps    int     `json:"bestSetReps,omitempty"`
	BestSetWeight  float64 `json:"bestSetWeight,omitempty"`
}

// Clone returns a deep copy of ls.
func (ls LiftState) Clone() LiftState {
	if ls.LastStage1Weight != nil {
		w := *ls.LastStage1Weight
		ls.LastStage1Weight = &w
	}
	return ls
}

// T3State tracks the working weight of an accessory exercise.
type T3State struct {
	ExerciseID LiftID  `json:"exerciseId"`
	Weight     float64 `json:"weight"`
}

// State is the whole program: every lift's position plus the rotation.
type State struct {
	T1              map[LiftID]LiftState `json:"t1"`
	T2              map[LiftID]LiftState `json:"t2"`
	T3              map[LiftID]T3State   `json:"t3"`
	NextWorkoutType WorkoutType          `json:"nextWorkoutType"`
	WorkoutCount    int                  `json:"workoutCount"`
}

// T2StartRatio is the share of the T1 weight a new program starts T2 at.
const T2StartRatio = 0.65

// NewState creates a program at stage 1 for every lift. T2 weights start at
// T2StartRatio of the T1 weight, rounded to the unit's increment.
func NewState(t1Weights map[LiftID]float64, accessories map[LiftID]float64, unit units.Unit) State {
	cfg := units.Table(unit)
	s := State{
		T1:              make(map[LiftID]LiftState, len(t1Weights)),
		T2:              make(map[LiftID]LiftState, len(t1Weights)),
		T3:              make(map[LiftID]T3State, len(accessories)),
		NextWorkoutType: WorkoutA1,
	}
	for lift, w := range t1Weights {
		s.T1[lift] = LiftState{Lift: lift, Tier: T1, Weight: w, Stage: 1}
		t2 := units.RoundTo(w*T2StartRatio, cfg.Rounding)
		if t2 <= 0 {
			t2 = w
		}
		s.T2[lift] = LiftState{Lift: lift, Tier: T2, Weight: t2, Stage: 1}
	}
	for id, w := range accessories {
		s.T3[id] = T3State{ExerciseID: id, Weight: w}
	}
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.T1 = make(map[LiftID]LiftState, len(s.T1))
	for k, v := range s.T1 {
		out.T1[k] = v.Clone()
	}
	out.T2 = make(map[LiftID]LiftState, len(s.T2))
	for k, v := range s.T2 {
		out.T2[k] = v.Clone()
	}
	out.T3 = maps.Clone(s.T3)
	if out.T3 == nil {
		out.T3 = make(map[LiftID]T3State)
	}
	return out
}

// Lift returns the state of a T1 or T2 lift.
func (s State) Lift(tier Tier, id LiftID) (LiftState, bool) {
	var ls LiftState
	var ok bool
	switch tier {
	case T1:
		ls, ok = s.T1[id]
	case T2:
		ls, ok = s.T2[id]
	}
	return ls, ok
}

// PutLift stores ls under its own tier. T3 entries are ignored.
func (s *State) PutLift(ls LiftState) {
	switch ls.Tier {
	case T1:
		if s.T1 == nil {
			s.T1 = make(map[LiftID]LiftState)
		}
		s.T1[ls.Lift] = ls
	case T2:
		if s.T2 == nil {
			s.T2 = make(map[LiftID]LiftState)
		}
		s.T2[ls.Lift] = ls
	}
}

// T3Weight returns the current weight of an accessory, or 0 if untracked.
func (s State) T3Weight(id LiftID) float64 {
	return s.T3[id].Weight
}

// PutT3 stores the weight of an accessory exercise.
func (s *State) PutT3(id LiftID, weight float64) {
	if s.T3 == nil {
		s.T3 = make(map[LiftID]T3State)
	}
	s.T3[id] = T3State{ExerciseID: id, Weight: weight}
}

// SetWeight applies a manual weight override. Stage and flags are kept.
// It reports false when the lift is not tracked at that tier or weight is not positive.
func (s *State) SetWeight(id LiftID, tier Tier, weight float64) bool {
	if weight <= 0 {
		return false
	}
	if tier == T3 {
		s.PutT3(id, weight)
		return true
	}
	ls, ok := s.Lift(tier, id)
	if !ok {
		return false
	}
	ls.Weight = weight
	s.PutLift(ls)
	return true
}

// PendingRetests lists T1 lifts waiting for a new 5RM, in main-lift order.
func (s State) PendingRetests() []LiftID {
	var out []LiftID
	for _, id := range MainLifts() {
		if ls, ok := s.T1[id]; ok && ls.Pending5RMTest {
			out = append(out, id)
		}
	}
	return out
}
