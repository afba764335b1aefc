// Package tetris adapts the falling-block engine to the registry.Game
// interface: it turns platform intents into engine calls and draws the
// engine's snapshot into a core.Screen.
package tetris

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "tetris"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config file's gravity.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		logger.Warn("unknown difficulty, using fixed gravity", "difficulty", preset, "error", err)
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game is one Tetris session bound to a screen size.
type Game struct {
	cfg       config.TetrisConfig
	override  *config.TetrisConfig
	runtime   core.RuntimeConfig
	rng       *rand.Rand
	eng       *engine.Engine
	frame     time.Duration
	sessionID string

	paused   bool
	tooSmall bool
	layout   layout
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg and skips config loading.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{override: &cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
		g.runtime.TickRate = runtime.TickRate
	}
	g.frame = time.Second / time.Duration(runtime.TickRate)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	shapes, err := engine.NewRandomizer(g.cfg.Randomizer, g.rng)
	if err != nil {
		logger.Warn("falling back to uniform randomizer", "error", err)
		shapes, _ = engine.NewRandomizer(engine.RandomizerUniform, g.rng)
	}

	g.sessionID = uuid.NewString()
	g.eng = engine.New(engine.Config{
		Columns:        g.cfg.Board.Columns,
		Rows:           g.cfg.Board.Rows,
		StepsPerSecond: g.cfg.Gravity.StepsPerSecond,
	}, shapes, engine.WithLogger(logger.With("session", g.sessionID)))

	g.paused = false
	g.layout = newLayout(g.cfg.Board.Columns, g.cfg.Board.Rows, runtime.ScreenW, runtime.ScreenH)
	g.tooSmall = !g.layout.fits

	logger.Info("session started",
		"session", g.sessionID,
		"board", g.cfg.Board,
		"gravity", g.cfg.Gravity.StepsPerSecond,
		"randomizer", g.cfg.Randomizer,
		"seed", runtime.Seed,
	)
}

func (g *Game) loadConfig() config.TetrisConfig {
	if g.override != nil {
		return *g.override
	}

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	if err := cfg.Validate(); err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	return cfg
}

// Step applies this frame's intents in a fixed order (hold, rotations,
// moves, soft drop, hard drop) and then advances gravity by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.eng.GameOver() {
		next := g.runtime
		next.Seed = g.rng.Int63()
		g.Reset(next)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.eng.GameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.eng.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionHold) {
		g.eng.Hold()
	}
	if in.Has(core.ActionRotateCW) {
		g.eng.Rotate(true)
	}
	if in.Has(core.ActionRotateCCW) {
		g.eng.Rotate(false)
	}
	if in.Has(core.ActionMoveLeft) {
		g.eng.Move(-1)
	}
	if in.Has(core.ActionMoveRight) {
		g.eng.Move(1)
	}
	if in.Has(core.ActionSoftDrop) {
		g.eng.Tick()
	}
	if in.Has(core.ActionHardDrop) {
		g.eng.HardDrop()
	}

	g.eng.Advance(g.frame)

	return core.StepResult{State: g.State()}
}

// Resize re-lays the board out for a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.layout = newLayout(g.cfg.Board.Columns, g.cfg.Board.Rows, w, h)
	g.tooSmall = !g.layout.fits
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused,
	}
}

// Snapshot returns a copy of the engine state.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

// SessionID returns the identifier drawn on the last Reset.
func (g *Game) SessionID() string {
	return g.sessionID
}

// FinalizeScore records the finished game under name. The record carries the
// game and session IDs.
func (g *Game) FinalizeScore(ctx context.Context, name string, rec core.ScoreRecorder) (core.ScoreRecord, error) {
	stamp := func(r core.ScoreRecord) core.ScoreRecord {
		r.GameID = GameID
		r.SessionID = g.sessionID
		return r
	}

	var inner core.ScoreRecorder
	if rec != nil {
		inner = core.ScoreRecorderFunc(func(ctx context.Context, r core.ScoreRecord) error {
			return rec.RecordScore(ctx, stamp(r))
		})
	}

	record, err := g.eng.FinalizeScore(ctx, name, inner)
	if err != nil {
		return stamp(record), err
	}
	record = stamp(record)
	logger.Info("score finalized", "session", g.sessionID, "name", record.Name, "score", record.Score)
	return record, nil
}
