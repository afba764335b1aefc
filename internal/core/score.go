package core

import (
	"context"
	"time"
)

// ScoreRecord is the final result of one finished game.
type ScoreRecord struct {
	GameID    string
	SessionID string
	Name      string
	Score     int
	Time      time.Time
}

// ScoreRecorder persists finished-game records.
type ScoreRecorder interface {
	RecordScore(ctx context.Context, rec ScoreRecord) error
}

// ScoreRecorderFunc adapts a function to ScoreRecorder.
type ScoreRecorderFunc func(ctx context.Context, rec ScoreRecord) error

// RecordScore calls f.
func (f ScoreRecorderFunc) RecordScore(ctx context.Context, rec ScoreRecord) error {
	return f(ctx, rec)
}
