package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DefaultTextLogPath is the flat score log used unless --score-log says otherwise.
const DefaultTextLogPath = "~/.arcade/tetris_scores.txt"

// TextLog appends one line per finished game to a plain text file:
//
//	<RFC3339 timestamp> <name> <score>
type TextLog struct {
	mu   sync.Mutex
	path string
}

var _ core.ScoreRecorder = (*TextLog)(nil)

// NewTextLog returns a recorder appending to path. The file is created on the
// first record.
func NewTextLog(path string) (*TextLog, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &TextLog{path: path}, nil
}

// Path returns the resolved file path.
func (l *TextLog) Path() string { return l.path }

// RecordScore appends rec to the log.
func (l *TextLog) RecordScore(ctx context.Context, rec core.ScoreRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory for %s: %w", l.path, err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("storage: cannot open score log: %w", err)
	}

	if _, err := fmt.Fprintln(f, FormatLine(rec)); err != nil {
		f.Close()
		return fmt.Errorf("storage: cannot write score log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: cannot close score log: %w", err)
	}
	return nil
}

// FormatLine renders rec as a score log line without the trailing newline.
// Whitespace inside the name becomes underscores so every line has exactly
// three fields.
func FormatLine(rec core.ScoreRecord) string {
	name := strings.Join(strings.Fields(rec.Name), "_")
	if name == "" {
		name = "anonymous"
	}
	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("%s %s %d", ts.Format(time.RFC3339), name, rec.Score)
}
