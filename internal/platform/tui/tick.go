// Package tui runs a registry.Game inside a Bubble Tea program. It owns the
// terminal: it maps keys to actions, drives the fixed tick cadence, draws the
// game's screen buffer with lipgloss and collects the player's name when a
// game ends.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
