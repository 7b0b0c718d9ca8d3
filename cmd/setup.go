package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Start a new program from your T1 weights",
	Long: "Start a new GZCLP program. Every T1 lift starts at stage 1 with the weight given;\n" +
		"T2 weights start at 65% of T1. Existing workouts and program state are discarded.",
	Example: "  liftmate setup --unit kg --squat 100 --bench 60 --deadlift 120 --ohp 40 --t3 lat-pulldown=30",
	RunE: func(cmd *cobra.Command, args []string) error {
		unitFlag, _ := cmd.Flags().GetString("unit")
		unit := cfg.Defaults.Unit
		if unitFlag != "" {
			u, err := units.Parse(unitFlag)
			if err != nil {
				return err
			}
			unit = u
		}

		t1 := make(map[program.LiftID]float64, 4)
		var errs error
		for _, lift := range program.MainLifts() {
			w, _ := cmd.Flags().GetFloat64(string(lift))
			if w <= 0 {
				errs = multierr.Append(errs, fmt.Errorf("--%s must be a positive weight", lift))
				continue
			}
			t1[lift] = w
		}

		t3Flags, _ := cmd.Flags().GetStringToString("t3")
		accessories := make(map[program.LiftID]float64, len(t3Flags))
		for id, raw := range t3Flags {
			w, err := parseWeight(raw)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("--t3 %s: %w", id, err))
				continue
			}
			accessories[parseLift(id)] = w
		}
		if errs != nil {
			return errs
		}

		return withService(cmd, func(svc *session.Service) error {
			state, err := svc.Setup(cmd.Context(), unit, t1, accessories)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Good.Render("Program created."))
			rows := make([][]string, 0, len(t1))
			for _, lift := range program.MainLifts() {
				rows = append(rows, []string{
					strings.ToUpper(string(lift)),
					units.Format(state.T1[lift].Weight, unit),
					units.Format(state.T2[lift].Weight, unit),
				})
			}
			fmt.Fprintln(out, theme.Table([]string{"Lift", "T1", "T2"}, rows))
			fmt.Fprintln(out, theme.Hint.Render("Next: liftmate next"))
			return nil
		})
	},
}

func init() {
	setupCmd.Flags().String("unit", "", "Weight unit: kg or lb (default from config)")
	for _, lift := range program.MainLifts() {
		setupCmd.Flags().Float64(string(lift), 0, fmt.Sprintf("Starting T1 weight for %s", lift))
	}
	setupCmd.Flags().StringToString("t3", nil, "Starting accessory weights, e.g. lat-pulldown=30,dumbbell-row=20")
}
