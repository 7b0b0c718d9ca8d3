package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
	"github.com/liftmate/liftmate/internal/warmup"
)

// schemeLabel renders a prescription such as "5×3+".
func schemeLabel(ex program.ExerciseLog) string {
	label := fmt.Sprintf("%d×%d", ex.TargetSets, ex.TargetReps)
	for _, s := range ex.Sets {
		if s.IsAMRAP {
			return label + "+"
		}
	}
	return label
}

// loadingLabel describes how to load ex with the user's equipment.
func loadingLabel(ex program.ExerciseLog, cfg settings.Settings) string {
	catalog := cfg.Catalog()
	switch {
	case ex.Weight <= 0:
		return "set a weight"
	case catalog.IsDumbbell(ex.LiftID):
		return units.Format(ex.Weight, cfg.Unit) + " per hand"
	case ex.Tier == program.T3 || catalog.IsForcedT3(ex.LiftID):
		return "-"
	}
	return plateLabel(ex.Weight, cfg)
}

func plateLabel(weight float64, cfg settings.Settings) string {
	l := plates.Solve(weight, cfg.BarWeight, cfg.PlateInventory)
	if l.Achievable {
		return plates.FormatPerSide(l.PerSide)
	}
	near := plates.Nearest(weight, cfg.BarWeight, cfg.PlateInventory)
	return fmt.Sprintf("not loadable, nearest %s", units.Format(near, cfg.Unit))
}

func renderWorkout(w io.Writer, wo program.Workout, state program.State, cfg settings.Settings) {
	catalog := cfg.Catalog()
	fmt.Fprintln(w, theme.Title.Render(fmt.Sprintf("Workout %s", wo.Type))+
		theme.Subtitle.Render(fmt.Sprintf("  #%d", state.WorkoutCount+1)))

	rows := make([][]string, 0, len(wo.Exercises))
	for _, ex := range wo.Exercises {
		rows = append(rows, []string{
			string(ex.Tier),
			catalog.Name(ex.LiftID, ex.Tier),
			schemeLabel(ex),
			units.Format(ex.Weight, cfg.Unit),
			loadingLabel(ex, cfg),
			fmt.Sprintf("%ds", cfg.RestTimers.For(ex.Tier)),
		})
	}
	fmt.Fprintln(w, theme.Table([]string{"Tier", "Exercise", "Sets", "Weight", "Per side", "Rest"}, rows, 5))

	for _, ex := range wo.Exercises {
		if ex.Tier != program.T1 || catalog.IsDumbbell(ex.LiftID) || catalog.IsForcedT3(ex.LiftID) || ex.Weight <= 0 {
			continue
		}
		sets := warmup.Build(ex.Weight, cfg.BarWeight, cfg.PlateInventory, cfg.Unit)
		if len(sets) == 0 {
			continue
		}
		fmt.Fprintln(w, theme.Subtitle.Render("Warmup for "+catalog.Name(ex.LiftID, ex.Tier)))
		fmt.Fprintln(w, warmupTable(sets, cfg.Unit))
	}

	for _, ex := range wo.Exercises {
		if ex.Tier == program.T3 && ex.Weight <= 0 {
			fmt.Fprintln(w, theme.Warn.Render(fmt.Sprintf("! %s has no weight yet: liftmate set-weight %s T3 <weight>",
				catalog.Name(ex.LiftID, ex.Tier), ex.LiftID)))
		}
	}

	for _, lift := range state.PendingRetests() {
		fmt.Fprintln(w, theme.Warn.Render(fmt.Sprintf("! %s needs a new 5RM: liftmate retest %s --5rm <weight>",
			catalog.Name(lift, program.T1), lift)))
	}
}

func warmupTable(sets []warmup.Set, unit units.Unit) string {
	rows := make([][]string, 0, len(sets))
	for _, s := range sets {
		rows = append(rows, []string{
			s.Label,
			units.Format(s.Weight, unit),
			strconv.Itoa(s.Reps),
			plates.FormatPerSide(s.PerSide),
		})
	}
	return theme.Table([]string{"Set", "Weight", "Reps", "Per side"}, rows, 0)
}

func renderChanges(w io.Writer, changes []progression.Change, unit units.Unit) {
	if len(changes) == 0 {
		return
	}
	fmt.Fprintln(w, theme.Title.Render("Progression"))
	for _, c := range changes {
		style := theme.Body
		switch c.Outcome {
		case progression.OutcomeSuccess, progression.OutcomeStageAdvance:
			style = theme.Good
		case progression.OutcomeRetest, progression.OutcomeReset, progression.OutcomeTrialFailed:
			style = theme.Warn
		}
		arrow := fmt.Sprintf("%s → %s", units.Format(c.Before, unit), units.Format(c.After, unit))
		fmt.Fprintf(w, "  %s %s %s\n", style.Render(string(c.Outcome)), theme.Subtitle.Render(arrow), c.Message)
	}
}

func medalLabel(m program.Medal, catalog exercises.Catalog, unit units.Unit) string {
	head := m.Type.Icon() + " " + m.Type.DisplayName()
	var detail string
	switch m.Type {
	case program.MedalStreak:
		detail = fmt.Sprintf("%d workouts", int(m.Value))
	case program.MedalAMRAPRecord:
		detail = fmt.Sprintf("%s: %d reps", catalog.Name(m.LiftID, m.Tier), int(m.Value))
	case program.MedalStageClear:
		detail = fmt.Sprintf("%s: next %s", catalog.Name(m.LiftID, m.Tier), units.Format(m.Value, unit))
	default:
		detail = fmt.Sprintf("%s: %s", catalog.Name(m.LiftID, m.Tier), units.Format(m.Value, unit))
	}
	if m.PreviousValue != nil && m.Type != program.MedalStreak {
		detail += theme.Subtitle.Render(" (was " + units.FormatNumber(*m.PreviousValue) + ")")
	}
	return head + "  " + detail
}

func renderMedals(w io.Writer, medals []program.Medal, catalog exercises.Catalog, unit units.Unit) {
	if len(medals) == 0 {
		return
	}
	fmt.Fprintln(w, theme.Title.Render("Medals"))
	for _, m := range medals {
		fmt.Fprintln(w, "  "+theme.Highlight.Render(medalLabel(m, catalog, unit)))
	}
}

// parseReps parses "3,3,3,3,5" into per-set reps.
func parseReps(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	reps := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid reps %q", p)
		}
		reps = append(reps, n)
	}
	return reps, nil
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	return w, nil
}

func parseTier(s string) (program.Tier, error) {
	t := program.Tier(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q (want T1, T2 or T3)", s)
	}
	return t, nil
}

func parseLift(s string) program.LiftID {
	return program.LiftID(strings.ToLower(strings.TrimSpace(s)))
}
