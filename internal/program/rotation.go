package program

// WorkoutType labels one of the four rotating GZCLP days.
type WorkoutType string

const (
	WorkoutA1 WorkoutType = "A1"
	WorkoutB1 WorkoutType = "B1"
	WorkoutA2 WorkoutType = "A2"
	WorkoutB2 WorkoutType = "B2"
)

// Default accessory exercises.
const (
	LatPulldown LiftID = "lat-pulldown"
	DumbbellRow LiftID = "dumbbell-row"
)

// DayPlan is the fixed lift assignment of a workout type.
type DayPlan struct {
	T1 LiftID
	T2 LiftID
	T3 []LiftID
}

var rotation = map[WorkoutType]DayPlan{
	WorkoutA1: {T1: Squat, T2: Bench, T3: []LiftID{LatPulldown}},
	WorkoutB1: {T1: OHP, T2: Deadlift, T3: []LiftID{DumbbellRow}},
	WorkoutA2: {T1: Bench, T2: Squat, T3: []LiftID{LatPulldown}},
	WorkoutB2: {T1: Deadlift, T2: OHP, T3: []LiftID{DumbbellRow}},
}

// WorkoutTypes returns the rotation in order.
func WorkoutTypes() []WorkoutType {
	return []WorkoutType{WorkoutA1, WorkoutB1, WorkoutA2, WorkoutB2}
}

// Plan returns the lifts trained on workout type wt.
func Plan(wt WorkoutType) DayPlan {
	if p, ok := rotation[wt]; ok {
		return p
	}
	return rotation[WorkoutA1]
}

// Next returns the workout type that follows wt in the rotation.
func (wt WorkoutType) Next() WorkoutType {
	types := WorkoutTypes()
	for i, t := range types {
		if t == wt {
			return types[(i+1)%len(types)]
		}
	}
	return WorkoutA1
}

// Valid reports whether wt is part of the rotation.
func (wt WorkoutType) Valid() bool {
	_, ok := rotation[wt]
	return ok
}
