package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means fixed: keep
// whatever the config file says.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// GravityForPreset returns the gravity rate for a preset, or 0 for fixed.
func GravityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 4
	default:
		return 0
	}
}

// ApplyTetrisPreset sets the gravity rate from a preset. The rate is chosen
// once per session and never changes while playing.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if rate := GravityForPreset(preset); rate > 0 {
		cfg.Gravity.StepsPerSecond = rate
	}
}
