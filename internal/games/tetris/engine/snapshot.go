package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// PieceView is a read-only copy of a piece for rendering.
type PieceView struct {
	Kind  Kind
	Color core.Color
	Cells []core.Point // absolute cells for the active piece, offsets for previews
}

// Snapshot captures everything a renderer or a determinism test needs.
type Snapshot struct {
	Columns  int
	Rows     int
	Board    [][]Cell // [y][x], row 0 at the bottom
	Active   PieceView
	Next     PieceView
	Held     *PieceView // nil until the first hold
	HoldUsed bool
	Score    int
	Locks    int
	State    State
}

// Snapshot returns a copy of the current game state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Columns:  e.cfg.Columns,
		Rows:     e.cfg.Rows,
		Board:    e.board.Grid(),
		Active:   PieceView{Kind: e.active.kind, Color: e.active.color, Cells: e.active.Cells()},
		Next:     preview(e.next),
		HoldUsed: e.holdUsed,
		Score:    e.score,
		Locks:    e.locks,
		State:    e.state,
	}
	if e.held != nil {
		h := preview(e.held)
		s.Held = &h
	}
	return s
}

func preview(p *Piece) PieceView {
	return PieceView{Kind: p.kind, Color: p.color, Cells: p.Offsets()}
}
