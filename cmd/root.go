package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liftmate/liftmate/internal/config"
	"github.com/liftmate/liftmate/internal/logging"
	"github.com/liftmate/liftmate/internal/session"
	"github.com/liftmate/liftmate/internal/store"
)

var (
	cfg       = config.Default()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "liftmate",
	Short: "GZCLP training log",
	Long: "liftmate plans GZCLP workouts, records what you lifted and progresses every lift:\n" +
		"weights, stages, 5RM re-tests, plate loading, warmups and medals.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			path = p
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
		logCloser = logging.Setup(logging.LoggerSetupParams{
			LogFileName:   c.Log.File,
			LogLevel:      c.Log.Level,
			LogFormatJSON: c.Log.JSON,
			Output:        cmd.ErrOrStderr(),
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LIFTMATE_DB and the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides LIFTMATE_CONFIG)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(platesCmd)
	rootCmd.AddCommand(warmupCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(retestCmd)
	rootCmd.AddCommand(setWeightCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LIFTMATE_DB / the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := cfg.Database.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database for a command. The caller closes it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// withService opens the store, runs fn with a session service and closes the store.
func withService(cmd *cobra.Command, fn func(svc *session.Service) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(session.NewService(st, cfg.Defaults.Unit))
}
