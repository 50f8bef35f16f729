package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/varkala/relicsmith/internal/config"
	"github.com/varkala/relicsmith/internal/relic"
)

// Global flags.
var (
	verbose    bool
	quiet      bool
	debug      bool
	logFile    string
	configPath string

	// cfg holds the loaded config file. Commands read it for every
	// option whose flag the user did not set.
	cfg config.Config

	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "relicsmith",
	Short: "Relic build solver for Elden Ring Nightreign saves",
	Long: `relicsmith reads an Elden Ring Nightreign save file (.sl2), scores
every relic against a score table and searches the urn layouts of a
class for the highest scoring relic combinations.

Run 'relicsmith inspect <save.sl2>' first to see which slot holds
your character, then 'relicsmith solve' to search it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// An explicitly named config file must exist, the implicit
		// default may be absent.
		if cmd.Root().PersistentFlags().Changed("config") {
			if _, err := os.Stat(configPath); err != nil {
				return fmt.Errorf("config %s: %w", configPath, err)
			}
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if !cmd.Root().PersistentFlags().Changed("log-file") {
			logFile = cfg.LogFile
		}

		level := slog.LevelWarn
		switch {
		case debug:
			level = slog.LevelDebug
		case verbose:
			level = slog.LevelInfo
		case quiet:
			level = slog.LevelError
		}
		if closeLog, err = setupLogging(level, logFile); err != nil {
			return err
		}

		return relic.ValidateTables()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "log progress information")
	pf.BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	pf.BoolVar(&debug, "debug", false, "log debug detail")
	pf.StringVar(&logFile, "log-file", "", "append a debug log to this file")
	pf.StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet", "debug")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scoresCmd)
}
