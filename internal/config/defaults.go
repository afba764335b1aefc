package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration: 10×20 board,
// 2 gravity steps per second, uniform randomizer.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Columns: 10,
			Rows:    20,
		},
		Gravity: TetrisGravity{
			StepsPerSecond: 2,
		},
		Randomizer: "uniform",
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
