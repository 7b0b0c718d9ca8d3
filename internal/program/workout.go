package program

// SetLog records one set of an exercise.
// A completed set with zero reps is a failed set; an uncompleted set has not
// been attempted yet.
type SetLog struct {
	SetNumber int  `json:"setNumber"`
	Reps      int  `json:"reps"`
	Completed bool `json:"completed"`
	IsAMRAP   bool `json:"isAmrap,omitempty"`
}

// ExerciseLog is one lift's performance within a workout.
type ExerciseLog struct {
	LiftID LiftID  `json:"liftId"`
	Tier   Tier    `json:"tier"`
	Weight float64 `json:"weight"`
	// OriginalWeight is the programmed weight when a trial weight was used.
	OriginalWeight *float64 `json:"originalWeight,omitempty"`
	TargetSets     int      `json:"targetSets"`
	TargetReps     int      `json:"targetReps"`
	Sets           []SetLog `json:"sets"`
}

// TotalReps sums the reps of every set.
func (e ExerciseLog) TotalReps() int {
	total := 0
	for _, s := range e.Sets {
		total += s.Reps
	}
	return total
}

// TargetTotal is the prescribed number of reps across all sets.
func (e ExerciseLog) TargetTotal() int {
	return e.TargetSets * e.TargetReps
}

// AMRAPReps returns the reps of the AMRAP set. Without an AMRAP flag the last
// set stands in for it.
func (e ExerciseLog) AMRAPReps() int {
	for i := len(e.Sets) - 1; i >= 0; i-- {
		if e.Sets[i].IsAMRAP {
			return e.Sets[i].Reps
		}
	}
	if len(e.Sets) == 0 {
		return 0
	}
	return e.Sets[len(e.Sets)-1].Reps
}

// BestSetReps returns the most reps achieved in a single set.
func (e ExerciseLog) BestSetReps() int {
	best := 0
	for _, s := range e.Sets {
		if s.Reps > best {
			best = s.Reps
		}
	}
	return best
}

// IsTrial reports whether the logged weight differs from the programmed one.
func (e ExerciseLog) IsTrial() bool {
	return e.OriginalWeight != nil && *e.OriginalWeight != e.Weight
}

// Volume is weight times total reps.
func (e ExerciseLog) Volume() float64 {
	return e.Weight * float64(e.TotalReps())
}

// CompletedSets counts sets marked completed, including failed ones.
func (e ExerciseLog) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

// FailedSets counts completed sets with zero reps.
func (e ExerciseLog) FailedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed && s.Reps == 0 {
			n++
		}
	}
	return n
}

// Workout is one training session.
type Workout struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`
	Type      WorkoutType   `json:"type"`
	Exercises []ExerciseLog `json:"exercises"`
	Completed bool          `json:"completed"`
	Notes     string        `json:"notes,omitempty"`
	Medals    []Medal       `json:"medals,omitempty"`
}
