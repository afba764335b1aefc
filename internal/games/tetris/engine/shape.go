// Package engine implements the falling-block mechanics: shape catalog,
// pieces, the locked-cell board, the gravity clock and the game state machine.
// It has no terminal or storage dependencies; the platform feeds it intents
// and reads Snapshot values back.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetromino shapes.
type Kind int

const (
	KindO Kind = iota
	KindI
	KindL
	KindJ
	KindS
	KindZ
	KindT
)

// String returns the single-letter shape name.
func (k Kind) String() string {
	switch k {
	case KindO:
		return "O"
	case KindI:
		return "I"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindT:
		return "T"
	default:
		return "?"
	}
}

// Shape is an immutable set of cell offsets around a pivot, with a fixed color.
// Rotations are not stored here; a Piece computes them from these base offsets.
type Shape struct {
	kind    Kind
	color   core.Color
	offsets []core.Point
}

// Kind returns the shape identifier.
func (s Shape) Kind() Kind { return s.kind }

// Color returns the shape's fixed color.
func (s Shape) Color() core.Color { return s.color }

// Offsets returns a copy of the base offsets.
func (s Shape) Offsets() []core.Point {
	out := make([]core.Point, len(s.offsets))
	copy(out, s.offsets)
	return out
}

var catalog = [...]Shape{
	KindO: {KindO, core.ColorYellow, offsets(0, 0, 1, 0, 0, 1, 1, 1)},
	KindI: {KindI, core.ColorCyan, offsets(0, -1, 0, 0, 0, 1, 0, 2)},
	KindL: {KindL, core.ColorOrange, offsets(1, -1, 0, -1, 0, 0, 0, 1)},
	KindJ: {KindJ, core.ColorBlue, offsets(-1, -1, 0, -1, 0, 0, 0, 1)},
	KindS: {KindS, core.ColorGreen, offsets(-1, -1, 0, -1, 0, 0, 1, 0)},
	KindZ: {KindZ, core.ColorRed, offsets(1, -1, 0, -1, 0, 0, -1, 0)},
	KindT: {KindT, core.ColorMagenta, offsets(-1, 0, 0, 0, 1, 0, 0, 1)},
}

// offsets builds a point list from flattened x, y pairs.
func offsets(xy ...int) []core.Point {
	out := make([]core.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Pt(xy[i], xy[i+1]))
	}
	return out
}

// ShapeOf returns the catalog shape for k.
func ShapeOf(k Kind) Shape {
	return catalog[k]
}

// Shapes returns all seven shapes in catalog order.
func Shapes() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog[:])
	return out
}

// RandomShape picks one of the seven shapes uniformly.
func RandomShape(rng *rand.Rand) Shape {
	return catalog[rng.Intn(len(catalog))]
}

// Randomizer supplies the sequence of shapes a game spawns.
type Randomizer interface {
	Next() Shape
}

// Randomizer names accepted by NewRandomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// NewRandomizer returns the named randomizer drawing from rng.
func NewRandomizer(name string, rng *rand.Rand) (Randomizer, error) {
	switch name {
	case "", RandomizerUniform:
		return &uniformRandomizer{rng: rng}, nil
	case RandomizerBag:
		return &bagRandomizer{rng: rng}, nil
	default:
		return nil, fmt.Errorf("engine: unknown randomizer %q", name)
	}
}

type uniformRandomizer struct {
	rng *rand.Rand
}

func (u *uniformRandomizer) Next() Shape {
	return RandomShape(u.rng)
}

// bagRandomizer deals all seven shapes in shuffled order before repeating any.
type bagRandomizer struct {
	rng *rand.Rand
	bag []Kind
}

func (b *bagRandomizer) Next() Shape {
	if len(b.bag) == 0 {
		b.refill()
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return catalog[k]
}

func (b *bagRandomizer) refill() {
	b.bag = []Kind{KindO, KindI, KindL, KindJ, KindS, KindZ, KindT}
	for i := len(b.bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}
