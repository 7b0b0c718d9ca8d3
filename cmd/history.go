package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/ui/theme"
	"github.com/liftmate/liftmate/internal/units"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List logged workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withService(cmd, func(svc *session.Service) error {
			ctx := cmd.Context()
			workouts, err := svc.History(ctx, limit)
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("No workouts logged yet."))
				return nil
			}
			cfg, err := svc.Settings(ctx)
			if err != nil {
				return err
			}
			catalog := cfg.Catalog()

			rows := make([][]string, 0, len(workouts))
			for _, w := range workouts {
				lifts := make([]string, 0, len(w.Exercises))
				for _, ex := range w.Exercises {
					if ex.TotalReps() == 0 {
						continue
					}
					lifts = append(lifts, fmt.Sprintf("%s %s×%d",
						catalog.Name(ex.LiftID, ex.Tier), units.FormatNumber(ex.Weight), ex.TotalReps()))
				}
				medals := make([]string, 0, len(w.Medals))
				for _, m := range w.Medals {
					medals = append(medals, m.Type.Icon())
				}
				date := w.Date
				if len(date) >= 10 {
					date = date[:10]
				}
				rows = append(rows, []string{date, string(w.Type), strings.Join(lifts, ", "), strings.Join(medals, ""), w.ID[:min(8, len(w.ID))]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Table([]string{"Date", "Day", "Lifts", "Medals", "ID"}, rows, 4))
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of workouts to show (0 for all)")
}
