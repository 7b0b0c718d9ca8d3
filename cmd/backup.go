package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/backup"
	"github.com/liftmate/liftmate/internal/ui/theme"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write settings, program and workouts to a JSON backup",
	Long:  "Write a JSON backup. Without a file (or with -) the bundle goes to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		b, err := backup.Export(cmd.Context(), st, cfg.Defaults.Unit, time.Now())
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			w = f
		}
		if err := backup.Write(w, b); err != nil {
			return err
		}
		if len(args) == 1 && args[0] != "-" {
			fmt.Fprintln(cmd.ErrOrStderr(), theme.Good.Render(fmt.Sprintf("Exported %d workouts to %s", len(b.Workouts), args[0])))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a JSON backup",
	Long:  "Replace settings, program and workouts with the contents of a backup. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("import replaces all stored data; pass --yes to confirm")
		}

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open backup file: %w", err)
			}
			defer f.Close()
			r = f
		}
		b, err := backup.Decode(r)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := backup.Import(cmd.Context(), st, b); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.Good.Render(fmt.Sprintf("Imported %d workouts (exported %s)",
			len(b.Workouts), b.ExportedAt.Local().Format(time.DateTime))))
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("yes", false, "Confirm replacing all stored data")
}
