package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/session"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next workout with warmups and plate loading",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withService(cmd, func(svc *session.Service) error {
			ctx := cmd.Context()
			w, cfg, err := svc.Next(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(w)
			}
			state, err := svc.Program(ctx)
			if err != nil {
				return err
			}
			renderWorkout(cmd.OutOrStdout(), w, state, cfg)
			return nil
		})
	},
}

func init() {
	nextCmd.Flags().Bool("json", false, "Print the planned workout as JSON")
}
