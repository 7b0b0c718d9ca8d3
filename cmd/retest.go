package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/progression"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
)

var retestCmd = &cobra.Command{
	Use:   "retest <lift>",
	Short: "Restart a T1 lift from a new 5RM",
	Long: "Record a new 5RM for a T1 lift. The lift restarts at stage 1 with 85% of the 5RM.\n" +
		"Give the 5RM directly, or a set of weight × reps to estimate it from.",
	Example: "  liftmate retest squat --5rm 110\n  liftmate retest bench --weight 70 --reps 7",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lift := parseLift(args[0])
		if !program.IsMainLift(lift) {
			return fmt.Errorf("%q is not a main lift (squat, bench, deadlift, ohp)", args[0])
		}
		fiveRM, _ := cmd.Flags().GetFloat64("5rm")
		weight, _ := cmd.Flags().GetFloat64("weight")
		reps, _ := cmd.Flags().GetInt("reps")

		return withService(cmd, func(svc *session.Service) error {
			ctx := cmd.Context()
			cfg, err := svc.Settings(ctx)
			if err != nil {
				return err
			}
			switch {
			case fiveRM > 0:
			case weight > 0 && reps > 0:
				fiveRM = progression.Estimate5RM(weight, reps, cfg.Unit)
			default:
				return errors.New("give --5rm, or --weight and --reps")
			}

			state, err := svc.Program(ctx)
			if err != nil {
				return err
			}
			if !slices.Contains(state.PendingRetests(), lift) {
				logrus.WithField("lift", lift).Warn("retest without a pending 5RM test")
			}

			ls, err := svc.Retest(ctx, lift, fiveRM)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Good.Render(fmt.Sprintf("%s restarts at %s (stage %d) from a 5RM of %s",
				cfg.Catalog().Name(lift, program.T1), units.Format(ls.Weight, cfg.Unit), ls.Stage,
				units.Format(fiveRM, cfg.Unit))))
			return nil
		})
	},
}

var setWeightCmd = &cobra.Command{
	Use:     "set-weight <lift> <tier> <weight>",
	Short:   "Override the programmed weight of a lift",
	Example: "  liftmate set-weight squat T1 102.5\n  liftmate set-weight lat-pulldown T3 35",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lift := parseLift(args[0])
		tier, err := parseTier(args[1])
		if err != nil {
			return err
		}
		weight, err := parseWeight(args[2])
		if err != nil {
			return err
		}
		return withService(cmd, func(svc *session.Service) error {
			if err := svc.SetWeight(cmd.Context(), lift, tier, weight); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n", lift, tier, units.FormatNumber(weight))
			return nil
		})
	},
}

func init() {
	retestCmd.Flags().Float64("5rm", 0, "New five-rep max")
	retestCmd.Flags().Float64("weight", 0, "Weight of a test set to estimate the 5RM from")
	retestCmd.Flags().Int("reps", 0, "Reps of the test set")
}
