package medals

import (
	"slices"

	"github.com/liftmate/liftmate/internal/program"
)

// streakMilestones are the workout counts that award a streak medal.
var streakMilestones = []int{5, 10, 25, 50, 100}

// StreakMilestones returns the workout counts that award a streak medal.
func StreakMilestones() []int {
	return slices.Clone(streakMilestones)
}

// DetectStreakMedal returns a streak medal when count is exactly a milestone.
func DetectStreakMedal(count int) *program.Medal {
	if !slices.Contains(streakMilestones, count) {
		return nil
	}
	return &program.Medal{Type: program.MedalStreak, Value: float64(count)}
}

// NextStreakMilestone returns the next milestone above count, or 0 past the last one.
func NextStreakMilestone(count int) int {
	for _, m := range streakMilestones {
		if m > count {
			return m
		}
	}
	return 0
}
