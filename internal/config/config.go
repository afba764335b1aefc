// Package config provides YAML-based game configuration loading and
// difficulty presets for the Tetris game.
package config

import (
	"errors"
	"fmt"
)

// Smallest board the shape catalog fits on.
const (
	MinColumns = 4
	MinRows    = 4
)

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board      TetrisBoard   `yaml:"board"`
	Gravity    TetrisGravity `yaml:"gravity"`
	Randomizer string        `yaml:"randomizer"` // "uniform" or "bag"
}

// TetrisBoard defines the playfield size.
type TetrisBoard struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// TetrisGravity defines the gravity cadence.
type TetrisGravity struct {
	StepsPerSecond float64 `yaml:"steps_per_second"`
}

// Validate reports every problem with the configuration.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Columns < MinColumns {
		errs = append(errs, fmt.Errorf("board.columns must be at least %d, got %d", MinColumns, c.Board.Columns))
	}
	if c.Board.Rows < MinRows {
		errs = append(errs, fmt.Errorf("board.rows must be at least %d, got %d", MinRows, c.Board.Rows))
	}
	if c.Gravity.StepsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("gravity.steps_per_second must be positive, got %g", c.Gravity.StepsPerSecond))
	}
	switch c.Randomizer {
	case "", "uniform", "bag":
	default:
		errs = append(errs, fmt.Errorf("randomizer must be uniform or bag, got %q", c.Randomizer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tetris config: %w", errors.Join(errs...))
	}
	return nil
}
