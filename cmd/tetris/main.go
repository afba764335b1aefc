// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game
//	tetris scores            - Show high scores
//	tetris list              - List available games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/tetris.db)
//	--score-log <path>   - Append finished games to a text file ("" disables)
//	--log-file <path>    - Write logs here (default: ~/.arcade/tetris.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagScoreLog string
	flagLogFile  string
	flagLogLevel string
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris drops one shape at a time onto a 10x20 board. Fill a row to clear
it; the game ends when the stack reaches the top.

Available commands:
  play     - Start a game
  scores   - View high scores
  list     - Show available games

Examples:
  tetris play
  tetris play --difficulty hard --name ann
  tetris play --seed 42 --config ./my-tetris.yaml
  tetris scores --interactive`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagScoreLog, "score-log", storage.DefaultTextLogPath, "Text file finished games are appended to (empty disables)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/tetris.log", "Log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging opens the log file. The TUI owns the terminal, so logs never go
// to stdout or stderr while a game runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagLogFile == "" {
		return nil
	}

	path, err := storage.ExpandHome(flagLogFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           level,
	})
	tetris.SetLogger(logger)
	logger.Debug("logging started", "command", cmd.Name(), "level", level)
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
	}
}
