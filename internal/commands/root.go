package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/balkashynov/wastedyears/internal/config"
	"github.com/balkashynov/wastedyears/internal/db"
	"github.com/balkashynov/wastedyears/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
	cfg    *config.Config

	// nowFunc is the clock used for "now"; tests replace it
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "wyr",
	Short: "Track where your time goes",
	Long: `wastedyears (wyr) records what you are working on, one task at a time,
and reports which words in your task descriptions took up your days.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		logConfig := zap.NewProductionConfig()
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = logConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger.Debug("config loaded",
			zap.String("file", cfg.File),
			zap.String("data_dir", cfg.DataDir),
			zap.String("db_url", cfg.DBURL))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// withDB opens the database, runs fn and closes it again. An open transaction
// is committed if fn succeeds and rolled back if it fails.
func withDB(fn func(*db.Session) error) error {
	if err := cfg.CreateDataDir(); err != nil {
		return err
	}
	return db.Use(cfg.DBURL, fn, db.WithLogger(logger))
}

// now returns the current time in UTC, truncated to the second
func now() time.Time {
	return nowFunc().UTC().Truncate(time.Second)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// FormatError renders a command error for the terminal
func FormatError(err error) string {
	return tui.ErrorStyle.Render("wyr: " + err.Error())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wyr %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/wastedyears/wastedyears.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	// Add subcommands here, in the order they are listed in help
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(listTasksCmd)
	rootCmd.AddCommand(listWordsCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(nukeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
