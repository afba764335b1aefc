package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// State is the engine's lifecycle state.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

var (
	// ErrGameInProgress is returned by FinalizeScore before game over.
	ErrGameInProgress = errors.New("engine: game still in progress")
	// ErrAlreadyFinalized is returned by a second FinalizeScore call.
	ErrAlreadyFinalized = errors.New("engine: score already finalized")
)

// Config holds the per-session constants.
type Config struct {
	Columns        int
	Rows           int
	StepsPerSecond float64
}

// DefaultConfig returns the classic 10×20 board at 2 gravity steps per second.
func DefaultConfig() Config {
	return Config{Columns: 10, Rows: 20, StepsPerSecond: 2}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. By default the engine logs nowhere.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used for score records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine owns the board, the active/next/held pieces and the score for one
// game session. Every method runs to completion; nothing is shared.
type Engine struct {
	cfg     Config
	board   *Board
	gravity *Gravity
	shapes  Randomizer

	active *Piece
	next   *Piece
	held   *Piece

	holdUsed  bool
	score     int
	locks     int
	state     State
	finalized bool

	logger *log.Logger
	now    func() time.Time
}

// New starts a game: empty board, an active piece and a queued next piece.
func New(cfg Config, shapes Randomizer, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		board:   NewBoard(cfg.Columns, cfg.Rows),
		gravity: NewGravity(cfg.StepsPerSecond),
		shapes:  shapes,
		state:   StatePlaying,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.active = e.spawn()
	e.next = e.spawn()
	return e
}

func (e *Engine) spawn() *Piece {
	return Spawn(e.shapes.Next(), e.cfg.Columns, e.cfg.Rows)
}

// Board returns the live board. Callers must not mutate it while playing.
func (e *Engine) Board() *Board { return e.board }

// Gravity returns the engine's gravity clock.
func (e *Engine) Gravity() *Gravity { return e.gravity }

// Active returns the falling piece.
func (e *Engine) Active() *Piece { return e.active }

// Score returns the number of rows cleared so far.
func (e *Engine) Score() int { return e.score }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool { return e.state == StateGameOver }

// resting reports whether any cell of the active piece sits on the floor or
// on a locked block.
func (e *Engine) resting() bool {
	return !e.active.Fits(0, -1, e.board.Blocked)
}

// Tick applies one gravity step: a resting piece locks, otherwise it falls one
// row. Reports whether the piece locked.
func (e *Engine) Tick() bool {
	if e.state != StatePlaying {
		return false
	}
	if !e.resting() {
		e.active.Y--
		return false
	}
	e.lock()
	return true
}

// lock writes the active piece into the board, promotes the next piece,
// compacts full rows and checks for game over.
func (e *Engine) lock() {
	e.board.Lock(e.active)
	e.locks++

	e.active = e.next
	e.next = e.spawn()

	cleared := e.board.ClearFullRowsAndCompact()
	e.score += cleared
	e.holdUsed = false

	e.logger.Debug("piece locked", "locks", e.locks, "cleared", cleared, "score", e.score)

	if e.board.RowHasBlocks(e.cfg.Rows - 2) {
		e.state = StateGameOver
		e.gravity.Stop()
		e.logger.Info("game over", "score", e.score, "locks", e.locks)
	}
}

// Move shifts the active piece dx columns if every cell lands on a free
// position. Reports whether it moved.
func (e *Engine) Move(dx int) bool {
	if e.state != StatePlaying {
		return false
	}
	if !e.active.Fits(dx, 0, e.board.Blocked) {
		return false
	}
	e.active.X += dx
	return true
}

// Rotate turns the active piece a quarter turn. Reports whether it rotated.
func (e *Engine) Rotate(clockwise bool) bool {
	if e.state != StatePlaying {
		return false
	}
	return e.active.Rotate(clockwise, e.board.Blocked)
}

// HardDrop runs gravity steps until the active piece locks. The gravity clock
// is suspended for the duration so no periodic step can land in between.
func (e *Engine) HardDrop() {
	if e.state != StatePlaying {
		return
	}
	e.gravity.Suspend()
	defer e.gravity.Resume()

	for !e.Tick() {
	}
}

// Hold swaps the active piece into the hold slot, at most once per lock.
// With an empty slot the queued next piece becomes active. A piece leaving
// the hold slot restarts from its spawn position. Reports whether the swap
// happened.
func (e *Engine) Hold() bool {
	if e.state != StatePlaying || e.holdUsed {
		return false
	}

	out := e.held
	e.held = e.active
	if out == nil {
		e.active = e.next
		e.next = e.spawn()
	} else {
		out.ResetPosition(e.cfg.Columns, e.cfg.Rows)
		e.active = out
	}
	e.holdUsed = true
	return true
}

// Advance feeds dt of wall time to the gravity clock and applies the steps
// that fell due. Returns the number of steps applied.
func (e *Engine) Advance(dt time.Duration) int {
	n := e.gravity.Advance(dt)
	applied := 0
	for i := 0; i < n && e.state == StatePlaying; i++ {
		e.Tick()
		applied++
	}
	return applied
}

// FinalizeScore builds the final record for name and hands it to rec. It is
// only valid once, after game over. A nil rec skips persistence.
func (e *Engine) FinalizeScore(ctx context.Context, name string, rec core.ScoreRecorder) (core.ScoreRecord, error) {
	if e.state != StateGameOver {
		return core.ScoreRecord{}, ErrGameInProgress
	}
	if e.finalized {
		return core.ScoreRecord{}, ErrAlreadyFinalized
	}

	record := core.ScoreRecord{
		Name:  name,
		Score: e.score,
		Time:  e.now(),
	}
	if rec != nil {
		if err := rec.RecordScore(ctx, record); err != nil {
			return record, fmt.Errorf("engine: record score: %w", err)
		}
	}
	e.finalized = true
	return record, nil
}
