package program

// MedalType identifies the category of achievement.
type MedalType string

const (
	MedalWeightPR    MedalType = "weight-pr"
	MedalVolumePR    MedalType = "volume-pr"
	MedalAMRAPRecord MedalType = "amrap-record"
	MedalStageClear  MedalType = "stage-clear"
	MedalStreak      MedalType = "streak"
)

// AllMedalTypes returns all medal types in display order.
func AllMedalTypes() []MedalType {
	return []MedalType{MedalWeightPR, MedalVolumePR, MedalAMRAPRecord, MedalStageClear, MedalStreak}
}

// DisplayName returns a human-readable label for the medal type.
func (t MedalType) DisplayName() string {
	switch t {
	case MedalWeightPR:
		return "Weight PR"
	case MedalVolumePR:
		return "Volume PR"
	case MedalAMRAPRecord:
		return "AMRAP Record"
	case MedalStageClear:
		return "Stage Clear"
	case MedalStreak:
		return "Streak"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the medal type.
func (t MedalType) Icon() string {
	switch t {
	case MedalWeightPR:
		return "🏋"
	case MedalVolumePR:
		return "📈"
	case MedalAMRAPRecord:
		return "🔥"
	case MedalStageClear:
		return "⬆"
	case MedalStreak:
		return "⚡"
	default:
		return "✦"
	}
}

// Medal is an achievement earned by a completed workout.
type Medal struct {
	Type          MedalType `json:"type"`
	LiftID        LiftID    `json:"liftId,omitempty"`
	Tier          Tier      `json:"tier,omitempty"`
	Value         float64   `json:"value"`
	PreviousValue *float64  `json:"previousValue,omitempty"`
}
