package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece is a positioned, possibly rotated instance of a Shape.
// Absolute cell positions are the origin plus each offset.
type Piece struct {
	X, Y    int
	kind    Kind
	color   core.Color
	offsets []core.Point
}

// Spawn creates a piece of shape s at the spawn position of a cols×rows board:
// horizontally centered, topmost cell on the top row. It never checks for
// collisions.
func Spawn(s Shape, cols, rows int) *Piece {
	p := &Piece{
		kind:    s.kind,
		color:   s.color,
		offsets: s.Offsets(),
	}
	p.ResetPosition(cols, rows)
	return p
}

// ResetPosition moves the piece back to the spawn position for its current
// offsets.
func (p *Piece) ResetPosition(cols, rows int) {
	top := p.offsets[0].Y
	for _, o := range p.offsets[1:] {
		top = max(top, o.Y)
	}
	p.X = cols/2 - 1
	p.Y = rows - top - 1
}

// Kind returns the shape this piece was spawned from.
func (p *Piece) Kind() Kind { return p.kind }

// Color returns the piece color.
func (p *Piece) Color() core.Color { return p.color }

// Offsets returns a copy of the current (rotated) offsets.
func (p *Piece) Offsets() []core.Point {
	out := make([]core.Point, len(p.offsets))
	copy(out, p.offsets)
	return out
}

// Cells returns the absolute board positions the piece covers.
func (p *Piece) Cells() []core.Point {
	origin := core.Pt(p.X, p.Y)
	out := make([]core.Point, len(p.offsets))
	for i, o := range p.offsets {
		out[i] = origin.Add(o)
	}
	return out
}

// Fits reports whether the piece shifted by (dx, dy) avoids every blocked cell.
func (p *Piece) Fits(dx, dy int, blocked func(x, y int) bool) bool {
	for _, o := range p.offsets {
		if blocked(p.X+o.X+dx, p.Y+o.Y+dy) {
			return false
		}
	}
	return true
}

// Rotate turns the piece 90° about its origin. Clockwise maps (x, y) to
// (y, -x); counter-clockwise maps (x, y) to (-y, x). The rotation is applied
// only if no resulting cell is blocked; there is no kick. Reports whether the
// offsets changed.
func (p *Piece) Rotate(clockwise bool, blocked func(x, y int) bool) bool {
	candidate := make([]core.Point, len(p.offsets))
	for i, o := range p.offsets {
		if clockwise {
			candidate[i] = core.Pt(o.Y, -o.X)
		} else {
			candidate[i] = core.Pt(-o.Y, o.X)
		}
	}

	for _, c := range candidate {
		if blocked(p.X+c.X, p.Y+c.Y) {
			return false
		}
	}

	p.offsets = candidate
	return true
}
