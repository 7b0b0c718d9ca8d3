package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/stats"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record the next workout and progress the program",
	Long: "Record the reps of the next workout, one comma-separated list per exercise.\n" +
		"Fewer entries than sets leave the remaining sets unattempted; 0 marks a failed set.\n" +
		"--t3 may be repeated once per accessory, in the order shown by 'liftmate next'.",
	Example: "  liftmate log --t1 3,3,3,3,5 --t2 10,10,10 --t3 15,15,25\n" +
		"  liftmate log --t1 3,3,3,3,3 --t1-weight 105 --notes \"felt heavy\"",
	RunE: func(cmd *cobra.Command, args []string) error {
		t1Reps, _ := cmd.Flags().GetString("t1")
		t2Reps, _ := cmd.Flags().GetString("t2")
		t3Reps, _ := cmd.Flags().GetStringArray("t3")
		notes, _ := cmd.Flags().GetString("notes")

		return withService(cmd, func(svc *session.Service) error {
			ctx := cmd.Context()
			w, cfg, err := svc.Next(ctx)
			if err != nil {
				return err
			}

			var t3Index int
			for i, ex := range w.Exercises {
				var raw string
				var trialFlag string
				switch ex.Tier {
				case program.T1:
					raw, trialFlag = t1Reps, "t1-weight"
				case program.T2:
					raw, trialFlag = t2Reps, "t2-weight"
				default:
					if t3Index < len(t3Reps) {
						raw = t3Reps[t3Index]
					}
					if t3Index == 0 {
						trialFlag = "t3-weight"
					}
					t3Index++
				}

				if trialFlag != "" && cmd.Flags().Changed(trialFlag) {
					weight, _ := cmd.Flags().GetFloat64(trialFlag)
					if err := session.SetTrialWeight(&w, i, weight); err != nil {
						return fmt.Errorf("--%s: %w", trialFlag, err)
					}
				}
				reps, err := parseReps(raw)
				if err != nil {
					return fmt.Errorf("%s reps: %w", ex.Tier, err)
				}
				if err := session.RecordReps(&w, i, reps); err != nil {
					return fmt.Errorf("%s reps: %w", ex.Tier, err)
				}
			}
			if t3Index < len(t3Reps) {
				return fmt.Errorf("got %d --t3 values but the workout has %d accessories", len(t3Reps), t3Index)
			}
			w.Notes = notes

			out, err := svc.Complete(ctx, w)
			if err != nil {
				return err
			}

			o := cmd.OutOrStdout()
			fmt.Fprintln(o, theme.Good.Render(fmt.Sprintf("Workout %s logged.", out.Workout.Type)))
			renderChanges(o, out.Changes, cfg.Unit)
			renderMedals(o, out.Medals, cfg.Catalog(), cfg.Unit)

			sum := stats.Summarize(out.Workout, cfg)
			fmt.Fprintln(o, theme.Subtitle.Render(fmt.Sprintf("Volume %s · %d reps · %.0f%% on target",
				units.Format(sum.WorkVolume, cfg.Unit), sum.WorkReps, sum.SuccessRate*100)))
			fmt.Fprintln(o, theme.Hint.Render(fmt.Sprintf("Next up: %s", out.State.NextWorkoutType)))
			return nil
		})
	},
}

func init() {
	logCmd.Flags().String("t1", "", "T1 reps per set, e.g. 3,3,3,3,5")
	logCmd.Flags().String("t2", "", "T2 reps per set, e.g. 10,10,10")
	logCmd.Flags().StringArray("t3", nil, "T3 reps per set, repeat for each accessory")
	logCmd.Flags().Float64("t1-weight", 0, "Weight actually used for T1 when different from the plan")
	logCmd.Flags().Float64("t2-weight", 0, "Weight actually used for T2 when different from the plan")
	logCmd.Flags().Float64("t3-weight", 0, "Weight actually used for the first T3 when different from the plan")
	logCmd.Flags().String("notes", "", "Free-form notes stored with the workout")
}
