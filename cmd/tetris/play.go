package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Tetris.

Controls:
  Left/Right, h/l  - Move
  Up/x             - Rotate clockwise
  z                - Rotate counter-clockwise
  Down/j           - Soft drop
  Space            - Hard drop
  c                - Hold
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options (gravity rate for the whole game):
  easy   - 1 step per second
  normal - 2 steps per second
  hard   - 4 steps per second
  fixed  - Use gravity.steps_per_second from the config

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --name ann --seed 42
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name prefilled when saving a score")
}

func runPlay(cmd *cobra.Command, args []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Surface config mistakes here; inside the TUI the game would silently
	// fall back to defaults.
	cfg, err := config.LoadTetris(flagConfig)
	if err == nil {
		config.ApplyTetrisPreset(&cfg, preset)
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(string(preset))

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(tetris.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var recorders []core.ScoreRecorder

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		recorders = append(recorders, store)
	}

	if flagScoreLog != "" {
		textLog, err := storage.NewTextLog(flagScoreLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: score log disabled: %v\n", err)
		} else {
			logger.Info("score log enabled", "path", textLog.Path())
			recorders = append(recorders, textLog)
		}
	}

	var recorder core.ScoreRecorder
	if len(recorders) > 0 {
		recorder = storage.Tee(recorders...)
	}

	logger.Info("starting game",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Columns, cfg.Board.Rows),
		"gravity", cfg.Gravity.StepsPerSecond,
		"difficulty", preset,
		"fps", flagFPS,
		"seed", flagSeed,
	)

	runErr := tui.Run(game, runtime, tui.Options{
		Recorder:   recorder,
		PlayerName: flagName,
		Logger:     logger,
	})
	if runErr != nil {
		logger.Error("game failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
