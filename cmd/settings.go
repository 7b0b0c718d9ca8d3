package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/liftmate/liftmate/internal/exercises"
	"github.com/liftmate/liftmate/internal/program"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/settings"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change equipment and exercise settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			renderSettings(cmd, cfg)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change equipment settings",
	Example: "  liftmate settings set --bar 15 --plate 25=0 --plate 0.5=2 --rest-t1 240",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *session.Service) error {
			cur, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			p, err := patchFromFlags(cmd, cur)
			if err != nil {
				return err
			}
			next, err := svc.UpdateSettings(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Good.Render("Settings saved."))
			renderSettings(cmd, next)
			if next.Unit != cur.Unit {
				fmt.Fprintln(cmd.OutOrStdout(), theme.Warn.Render("Program weights are not converted; run liftmate setup to restart in "+string(next.Unit)+"."))
			}
			return nil
		})
	},
}

var settingsSubstituteCmd = &cobra.Command{
	Use:     "substitute <lift> <exercise-id>",
	Short:   "Replace a programmed lift with another exercise",
	Example: "  liftmate settings substitute ohp dumbbell-press --name \"Dumbbell Press\" --dumbbell --force-t3",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		original, substitute := parseLift(args[0]), parseLift(args[1])
		name, _ := cmd.Flags().GetString("name")
		dumbbell, _ := cmd.Flags().GetBool("dumbbell")
		forceT3, _ := cmd.Flags().GetBool("force-t3")

		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			subs := slices.DeleteFunc(slices.Clone(cfg.LiftSubstitutions), func(s exercises.Substitution) bool {
				return s.Original == original
			})
			subs = append(subs, exercises.Substitution{Original: original, Substitute: substitute, ForceT3Progression: forceT3})
			p := settings.Patch{LiftSubstitutions: subs}
			if name != "" {
				p.ExerciseLibrary = upsertDefinition(cfg.ExerciseLibrary, exercises.Definition{ID: substitute, Name: name, IsDumbbell: dumbbell})
			}
			next, err := svc.UpdateSettings(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now done as %s\n", original, next.Catalog().Name(original, program.T1))
			return nil
		})
	},
}

var settingsUnsubstituteCmd = &cobra.Command{
	Use:   "unsubstitute <lift>",
	Short: "Go back to the programmed lift",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		original := parseLift(args[0])
		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			subs := slices.DeleteFunc(slices.Clone(cfg.LiftSubstitutions), func(s exercises.Substitution) bool {
				return s.Original == original
			})
			if len(subs) == len(cfg.LiftSubstitutions) {
				return fmt.Errorf("%s has no substitution", original)
			}
			if subs == nil {
				subs = []exercises.Substitution{}
			}
			_, err = svc.UpdateSettings(cmd.Context(), settings.Patch{LiftSubstitutions: subs})
			return err
		})
	},
}

var settingsAddT3Cmd = &cobra.Command{
	Use:     "add-t3 <workout-type> <exercise-id>",
	Short:   "Add an accessory to a workout day",
	Example: "  liftmate settings add-t3 A1 face-pull --weight 15\n  liftmate settings add-t3 B2 hip-thrust --name \"Hip Thrust\" --weight 60",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wt := program.WorkoutType(strings.ToUpper(args[0]))
		id := parseLift(args[1])
		name, _ := cmd.Flags().GetString("name")
		dumbbell, _ := cmd.Flags().GetBool("dumbbell")
		weight, _ := cmd.Flags().GetFloat64("weight")
		if weight < 0 {
			return fmt.Errorf("--weight must not be negative, got %v", weight)
		}

		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			if weight > 0 {
				if err := svc.SetWeight(cmd.Context(), id, program.T3, weight); err != nil {
					return err
				}
			}
			p := settings.Patch{AdditionalT3: append(slices.Clone(cfg.AdditionalT3), settings.T3Assignment{WorkoutType: wt, ExerciseID: id})}
			if name != "" {
				p.ExerciseLibrary = upsertDefinition(cfg.ExerciseLibrary, exercises.Definition{ID: id, Name: name, IsDumbbell: dumbbell})
			}
			_, err = svc.UpdateSettings(cmd.Context(), p)
			return err
		})
	},
}

var settingsRemoveT3Cmd = &cobra.Command{
	Use:   "remove-t3 <workout-type> <exercise-id>",
	Short: "Remove an added accessory from a workout day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wt := program.WorkoutType(strings.ToUpper(args[0]))
		id := parseLift(args[1])
		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			kept := slices.DeleteFunc(slices.Clone(cfg.AdditionalT3), func(a settings.T3Assignment) bool {
				return a.WorkoutType == wt && a.ExerciseID == id
			})
			if len(kept) == len(cfg.AdditionalT3) {
				return fmt.Errorf("%s has no added accessory %s", wt, id)
			}
			if kept == nil {
				kept = []settings.T3Assignment{}
			}
			_, err = svc.UpdateSettings(cmd.Context(), settings.Patch{AdditionalT3: kept})
			return err
		})
	},
}

func upsertDefinition(lib []exercises.Definition, d exercises.Definition) []exercises.Definition {
	out := slices.Clone(lib)
	for i := range out {
		if out[i].ID == d.ID {
			out[i] = d
			return out
		}
	}
	return append(out, d)
}

// patchFromFlags builds a patch from the flags the user set. Unset flags
// leave the stored value alone.
func patchFromFlags(cmd *cobra.Command, cur settings.Settings) (settings.Patch, error) {
	var (
		p    settings.Patch
		errs error
	)
	f := cmd.Flags()
	if f.Changed("unit") {
		raw, _ := f.GetString("unit")
		u, err := units.Parse(raw)
		errs = multierr.Append(errs, err)
		p.Unit = &u
		if err == nil && u != cur.Unit {
			// equipment follows the unit; explicit flags below still win
			d := settings.Default(u)
			p.BarWeight = &d.BarWeight
			p.DumbbellHandleWeight = &d.DumbbellHandleWeight
			p.Plates = make(map[float64]int, len(cur.PlateInventory)+len(d.PlateInventory))
			for size := range cur.PlateInventory {
				p.Plates[size] = 0
			}
			maps.Copy(p.Plates, d.PlateInventory)
		}
	}
	if f.Changed("bar") {
		v, _ := f.GetFloat64("bar")
		p.BarWeight = &v
	}
	if f.Changed("handle") {
		v, _ := f.GetFloat64("handle")
		p.DumbbellHandleWeight = &v
	}
	if f.Changed("plate") {
		raw, _ := f.GetStringArray("plate")
		if p.Plates == nil {
			p.Plates = make(map[float64]int, len(raw))
		}
		for _, entry := range raw {
			size, count, ok := strings.Cut(entry, "=")
			w, werr := strconv.ParseFloat(strings.TrimSpace(size), 64)
			n, nerr := strconv.Atoi(strings.TrimSpace(count))
			if !ok || werr != nil || nerr != nil {
				errs = multierr.Append(errs, fmt.Errorf("--plate %q: want size=count", entry))
				continue
			}
			p.Plates[w] = n
		}
	}
	if f.Changed("rest-t1") || f.Changed("rest-t2") || f.Changed("rest-t3") {
		rt := cur.RestTimers
		for tier, flag := range map[program.Tier]string{program.T1: "rest-t1", program.T2: "rest-t2", program.T3: "rest-t3"} {
			if !f.Changed(flag) {
				continue
			}
			v, _ := f.GetInt(flag)
			switch tier {
			case program.T1:
				rt.T1 = v
			case program.T2:
				rt.T2 = v
			case program.T3:
				rt.T3 = v
			}
		}
		p.RestTimers = &rt
	}
	return p, errs
}

func renderSettings(cmd *cobra.Command, cfg settings.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Title.Render("Equipment"))
	fmt.Fprintf(out, "  unit %s · bar %s · dumbbell handle %s\n", cfg.Unit,
		units.Format(cfg.BarWeight, cfg.Unit), units.Format(cfg.DumbbellHandleWeight, cfg.Unit))

	rows := make([][]string, 0, len(cfg.PlateInventory))
	for _, size := range cfg.PlateInventory.Sizes() {
		rows = append(rows, []string{units.FormatNumber(size), strconv.Itoa(cfg.PlateInventory[size])})
	}
	fmt.Fprintln(out, theme.Table([]string{"Plate", "Count"}, rows))

	fmt.Fprintf(out, "  rest T1 %ds · T2 %ds · T3 %ds\n", cfg.RestTimers.T1, cfg.RestTimers.T2, cfg.RestTimers.T3)

	catalog := cfg.Catalog()
	if len(cfg.LiftSubstitutions) > 0 {
		fmt.Fprintln(out, theme.Title.Render("Substitutions"))
		for _, s := range cfg.LiftSubstitutions {
			line := fmt.Sprintf("  %s → %s", s.Original, catalog.Name(s.Original, program.T1))
			if s.ForceT3Progression {
				line += theme.Subtitle.Render(" (T3 progression)")
			}
			fmt.Fprintln(out, line)
		}
	}
	if len(cfg.AdditionalT3) > 0 {
		fmt.Fprintln(out, theme.Title.Render("Added accessories"))
		for _, a := range cfg.AdditionalT3 {
			fmt.Fprintf(out, "  %s: %s\n", a.WorkoutType, catalog.Name(a.ExerciseID, program.T3))
		}
	}
}

func init() {
	settingsShowCmd.Flags().Bool("json", false, "Print settings as JSON")

	settingsSetCmd.Flags().String("unit", "", "Weight unit: kg or lb")
	settingsSetCmd.Flags().Float64("bar", 0, "Barbell weight")
	settingsSetCmd.Flags().Float64("handle", 0, "Dumbbell handle weight")
	settingsSetCmd.Flags().StringArray("plate", nil, "Plates owned as size=count, 0 removes the size (repeatable)")
	settingsSetCmd.Flags().Int("rest-t1", 0, "T1 rest timer in seconds")
	settingsSetCmd.Flags().Int("rest-t2", 0, "T2 rest timer in seconds")
	settingsSetCmd.Flags().Int("rest-t3", 0, "T3 rest timer in seconds")

	settingsSubstituteCmd.Flags().String("name", "", "Display name for a custom exercise")
	settingsSubstituteCmd.Flags().Bool("dumbbell", false, "The exercise uses dumbbells")
	settingsSubstituteCmd.Flags().Bool("force-t3", false, "Progress the substitute like an accessory")

	settingsAddT3Cmd.Flags().String("name", "", "Display name for a custom exercise")
	settingsAddT3Cmd.Flags().Bool("dumbbell", false, "The exercise uses dumbbells")
	settingsAddT3Cmd.Flags().Float64("weight", 0, "Starting working weight for the accessory")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsSubstituteCmd,
		settingsUnsubstituteCmd, settingsAddT3Cmd, settingsRemoveT3Cmd)
}
