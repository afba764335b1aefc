package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type fakeSource struct {
	entries []storage.ScoreEntry
	err     error
}

func (f fakeSource) TopScores(_ context.Context, _ string, _ int) ([]storage.ScoreEntry, error) {
	return f.entries, f.err
}

func TestScoreboardRows(t *testing.T) {
	src := fakeSource{entries: []storage.ScoreEntry{
		{Name: "ann", Score: 12, CreatedAt: time.Now()},
		{Name: "", Score: 3, CreatedAt: time.Now()},
	}}
	m := NewScoreboardModel(src, "tetris", "Tetris", 80, 24)

	rows := m.table.Rows()
	assert.Len(t, rows, 2)
	assert.Equal(t, "ann", rows[0][1])
	assert.Equal(t, "anonymous", rows[1][1])
	assert.Contains(t, m.View(), "HIGH SCORES - Tetris")
}

func TestScoreboardEmptyAndError(t *testing.T) {
	m := NewScoreboardModel(fakeSource{}, "tetris", "Tetris", 80, 24)
	assert.Contains(t, m.View(), "No scores recorded yet")

	m = NewScoreboardModel(fakeSource{err: errors.New("locked")}, "tetris", "Tetris", 80, 24)
	assert.Contains(t, m.View(), "locked")
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(fakeSource{}, "tetris", "Tetris", 80, 24)
	next, cmd := m.Update(runeKey("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(ScoreboardModel).View())
}
