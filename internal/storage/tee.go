package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type tee struct {
	mu        sync.Mutex
	recorders []core.ScoreRecorder
	accepted  map[string]map[int]bool // session ID -> recorders that already stored it
}

// Tee returns a recorder that hands every record to each non-nil recorder in
// order. All recorders run even when one fails; the failures are joined.
// When a record with a session ID is retried after a partial failure, only
// the recorders that failed see it again.
func Tee(recorders ...core.ScoreRecorder) core.ScoreRecorder {
	t := &tee{accepted: make(map[string]map[int]bool)}
	for _, r := range recorders {
		if r != nil {
			t.recorders = append(t.recorders, r)
		}
	}
	return t
}

func (t *tee) RecordScore(ctx context.Context, rec core.ScoreRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	done := t.accepted[rec.SessionID]
	if done == nil {
		done = make(map[int]bool)
	}

	var errs []error
	for i, r := range t.recorders {
		if done[i] {
			continue
		}
		if err := r.RecordScore(ctx, rec); err != nil {
			errs = append(errs, err)
			continue
		}
		done[i] = true
	}

	switch {
	case rec.SessionID == "":
	case len(errs) > 0:
		t.accepted[rec.SessionID] = done
	default:
		delete(t.accepted, rec.SessionID)
	}
	return errors.Join(errs...)
}
