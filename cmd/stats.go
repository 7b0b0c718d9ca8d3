package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/medals"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/stats"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
)

var statsCmd = &cobra.Command{
	Use:   "stats [workout-id]",
	Short: "Show workout and program statistics",
	Long: "Show the summary of one workout (the latest by default, or the one whose id\n" +
		"starts with workout-id) followed by T1 progress since the first logged workout.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *session.Service) error {
			ctx := cmd.Context()
			cfg, err := svc.Settings(ctx)
			if err != nil {
				return err
			}
			workouts, err := svc.History(ctx, 0)
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("No workouts logged yet."))
				return nil
			}

			w := workouts[0]
			if len(args) == 1 {
				found := false
				for _, cand := range workouts {
					if strings.HasPrefix(cand.ID, args[0]) {
						w, found = cand, true
						break
					}
				}
				if !found {
					return fmt.Errorf("no workout with id %q", args[0])
				}
			}

			out := cmd.OutOrStdout()
			renderSummary(out, w, cfg)

			state, err := svc.Program(ctx)
			if errors.Is(err, session.ErrNoProgram) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, theme.Title.Render("T1 progress"))
			fmt.Fprintln(out, progressTable(workouts, state, cfg))
			if next := medals.NextStreakMilestone(state.WorkoutCount); next > 0 {
				fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%d workouts logged, next streak medal at %d",
					state.WorkoutCount, next)))
			}
			return nil
		})
	},
}

func renderSummary(out io.Writer, w program.Workout, cfg settings.Settings) {
	sum := stats.Summarize(w, cfg)
	date := w.Date
	if len(date) >= 10 {
		date = date[:10]
	}
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Workout %s", w.Type))+theme.Subtitle.Render("  "+date))
	rows := [][]string{
		{"Work volume", units.Format(sum.WorkVolume, cfg.Unit)},
		{"Warmup volume (est.)", units.Format(sum.WarmupVolume, cfg.Unit)},
		{"Total volume", units.Format(sum.TotalVolume(), cfg.Unit)},
		{"Reps (work / warmup)", fmt.Sprintf("%d / %d", sum.WorkReps, sum.WarmupReps)},
		{"Sets (done / failed)", fmt.Sprintf("%d / %d", sum.CompletedSets, sum.FailedSets)},
		{"On target", strconv.FormatFloat(sum.SuccessRate*100, 'f', 0, 64) + "%"},
	}
	if sum.Heaviest != nil {
		rows = append(rows, []string{"Heaviest", fmt.Sprintf("%s %s",
			cfg.Catalog().Name(sum.Heaviest.LiftID, sum.Heaviest.Tier), units.Format(sum.Heaviest.Weight, cfg.Unit))})
	}
	fmt.Fprintln(out, theme.Table([]string{"Metric", "Value"}, rows, 0))
	if w.Notes != "" {
		fmt.Fprintln(out, theme.Hint.Render(w.Notes))
	}
}

// progressTable compares each T1 lift's first logged weight with its current
// programmed weight. workouts are newest first.
func progressTable(workouts []program.Workout, state program.State, cfg settings.Settings) string {
	first := make(map[program.LiftID]float64, 4)
	for i := len(workouts) - 1; i >= 0; i-- {
		for _, ex := range workouts[i].Exercises {
			if ex.Tier != program.T1 || ex.TotalReps() == 0 {
				continue
			}
			if _, ok := first[ex.LiftID]; !ok {
				first[ex.LiftID] = ex.Weight
			}
		}
	}

	catalog := cfg.Catalog()
	rows := make([][]string, 0, len(state.T1))
	for _, lift := range program.MainLifts() {
		ls, ok := state.Lift(program.T1, lift)
		if !ok {
			continue
		}
		start, logged := first[lift]
		gain := "-"
		if logged {
			gain = fmt.Sprintf("%+.1f%%", stats.PercentGain(start, ls.Weight))
		}
		rows = append(rows, []string{
			catalog.Name(lift, program.T1),
			units.Format(start, cfg.Unit),
			units.Format(ls.Weight, cfg.Unit),
			strconv.Itoa(ls.Stage),
			gain,
		})
	}
	return theme.Table([]string{"Lift", "Start", "Current", "Stage", "Gain"}, rows)
}
