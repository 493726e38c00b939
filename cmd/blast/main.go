// blast is a block-placement puzzle for the terminal.
//
// Usage:
//
//	blast list                 - List available modes
//	blast play <mode>          - Play a mode
//	blast menu                 - Start menu to pick modes interactively
//	blast serve                - Start SSH server for remote play
//	blast scores <mode>        - Show high scores for a mode
//	blast shapes list|show|validate
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible deals
//	--db <path>          - Set database path (default: ~/.blast/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logger is configured by the root command before any subcommand runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blast",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		closeLogFile()
		os.Exit(1)
	}
	closeLogFile()
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Blast - a block puzzle in your terminal",
	Long: `Blast is a block-placement puzzle: drop pieces from the tray onto the
grid, complete rows or columns to clear them and chain clears for combos.
The game ends when no piece in the tray fits anywhere.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  shapes   - Inspect and validate shape sets

Examples:
  blast list
  blast play blast
  blast menu
  blast serve --ssh :2222
  blast scores blast_mini`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blast/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(configCmd)
}
