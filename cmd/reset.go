package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the program and workout history",
	Long:  "Delete the program and every logged workout. Settings are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset deletes all workouts; pass --yes to confirm")
		}
		return withService(cmd, func(svc *session.Service) error {
			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Program and history deleted.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
