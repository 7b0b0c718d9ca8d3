package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
	"github.com/liftmate/liftmate/internal/warmup"
)

var platesCmd = &cobra.Command{
	Use:   "plates <weight>",
	Short: "Show the plates to load for a weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseWeight(args[0])
		if err != nil {
			return err
		}
		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			l := plates.Solve(target, cfg.BarWeight, cfg.PlateInventory)
			if l.Achievable {
				fmt.Fprintf(out, "%s  %s per side\n",
					theme.Highlight.Render(units.Format(target, cfg.Unit)),
					plates.FormatPerSide(l.PerSide))
				return nil
			}
			near := plates.Nearest(target, cfg.BarWeight, cfg.PlateInventory)
			fmt.Fprintln(out, theme.Warn.Render(fmt.Sprintf("%s cannot be loaded exactly", units.Format(target, cfg.Unit))))
			fmt.Fprintf(out, "  closest below: %s (%s per side)\n",
				units.Format(l.TotalWeight, cfg.Unit), plates.FormatPerSide(l.PerSide))
			if near > 0 {
				nl := plates.Solve(near, cfg.BarWeight, cfg.PlateInventory)
				fmt.Fprintf(out, "  nearest loadable: %s (%s per side)\n",
					units.Format(near, cfg.Unit), plates.FormatPerSide(nl.PerSide))
			}
			return nil
		})
	},
}

var warmupCmd = &cobra.Command{
	Use:   "warmup <weight>",
	Short: "Show the warmup ramp for a working weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		work, err := parseWeight(args[0])
		if err != nil {
			return err
		}
		return withService(cmd, func(svc *session.Service) error {
			cfg, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			sets := warmup.Build(work, cfg.BarWeight, cfg.PlateInventory, cfg.Unit)
			fmt.Fprintln(cmd.OutOrStdout(), warmupTable(sets, cfg.Unit))
			return nil
		})
	},
}
