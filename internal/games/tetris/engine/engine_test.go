package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestNewEngine(t *testing.T) {
	e := newTestEngine(KindI, KindO)

	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, KindI, e.Active().Kind())

	snap := e.Snapshot()
	assert.Equal(t, KindO, snap.Next.Kind)
	assert.Nil(t, snap.Held)
	assert.Equal(t, 0, snap.Score)
	assert.Len(t, snap.Board, 20)
	assert.Len(t, snap.Board[0], 10)
}

func TestIPieceFallsToBottom(t *testing.T) {
	e := newTestEngine(KindI, KindO)
	spawnX := e.Active().X

	ticks := 0
	for !e.Tick() {
		ticks++
		require.Less(t, ticks, 100, "piece never locked")
	}

	assert.Equal(t, 16, ticks)
	for y := 0; y < 4; y++ {
		c := e.Board().Cell(spawnX, y)
		assert.True(t, c.Filled, "row %d of spawn column", y)
		assert.Equal(t, core.ColorCyan, c.Color)
	}
	for x := 0; x < 10; x++ {
		if x != spawnX {
			assert.False(t, e.Board().Occupied(x, 0), "column %d", x)
		}
	}
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, KindO, e.Active().Kind(), "next piece should be promoted")
}

func TestOPieceCompletesRow(t *testing.T) {
	e := newTestEngine(KindO, KindT)
	b := e.Board()
	fillRow(b, 0, 4, 5)
	b.Fill(0, 1, core.ColorRed)

	e.HardDrop()

	assert.Equal(t, 1, e.Score())
	assert.True(t, b.Occupied(0, 0), "old row 1 block should fall to row 0")
	assert.True(t, b.Occupied(4, 0), "upper half of the O should fall to row 0")
	assert.True(t, b.Occupied(5, 0))
	for _, x := range []int{1, 2, 3, 6, 7, 8, 9} {
		assert.False(t, b.Occupied(x, 0), "column %d", x)
	}
	assert.False(t, b.RowHasBlocks(1))
}

func TestRotateRejectedAtLeftWall(t *testing.T) {
	e := newTestEngine(KindI, KindO)
	for e.Move(-1) {
	}
	require.Equal(t, 0, e.Active().X)

	before := e.Active().Offsets()
	assert.False(t, e.Rotate(true))
	assert.Equal(t, before, e.Active().Offsets())
	assert.False(t, e.Rotate(false))
	assert.Equal(t, before, e.Active().Offsets())
}

func TestRotateRejectedByBlock(t *testing.T) {
	e := newTestEngine(KindT, KindO)
	p := e.Active()
	// clockwise puts a cell at (X, Y-1)
	e.Board().Fill(p.X, p.Y-1, core.ColorGray)

	before := p.Offsets()
	assert.False(t, e.Rotate(true))
	assert.Equal(t, before, p.Offsets())
}

func TestMoveIsAllOrNothing(t *testing.T) {
	e := newTestEngine(KindT, KindO)
	p := e.Active()
	e.Board().Fill(p.X+2, p.Y, core.ColorGray)
	before := p.Cells()

	assert.False(t, e.Move(1))
	assert.Equal(t, before, p.Cells())

	assert.True(t, e.Move(-1))
	for i, c := range p.Cells() {
		assert.Equal(t, before[i].X-1, c.X)
		assert.Equal(t, before[i].Y, c.Y)
	}
}

func TestMovePropertyShiftsWholePiece(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := range 1000 {
		e := New(DefaultConfig(), &uniformRandomizer{rng: rng})
		for y := range 17 {
			for x := range 10 {
				if rng.Float64() < 0.25 {
					e.Board().Fill(x, y, core.ColorGray)
				}
			}
		}
		for range rng.Intn(12) {
			e.Tick()
		}

		before := e.Active().Cells()
		dx := 1 - 2*rng.Intn(2)
		moved := e.Move(dx)
		after := e.Active().Cells()

		for j := range before {
			if moved {
				require.Equal(t, before[j].X+dx, after[j].X, "iteration %d", i)
			} else {
				require.Equal(t, before[j], after[j], "iteration %d", i)
			}
			require.Equal(t, before[j].Y, after[j].Y)
		}
	}
}

func TestHoldOncePerLock(t *testing.T) {
	e := newTestEngine(KindI, KindO, KindT, KindS)

	require.True(t, e.Hold())
	snap := e.Snapshot()
	require.NotNil(t, snap.Held)
	assert.Equal(t, KindI, snap.Held.Kind)
	assert.Equal(t, KindO, snap.Active.Kind, "empty hold takes the queued piece")
	assert.Equal(t, KindT, snap.Next.Kind)
	assert.True(t, snap.HoldUsed)

	assert.False(t, e.Hold())
	assert.Equal(t, snap, e.Snapshot(), "second hold must be a no-op")

	e.HardDrop()
	assert.False(t, e.Snapshot().HoldUsed, "lock re-arms hold")
	assert.True(t, e.Hold())
}

func TestHoldRestoresSpawnPosition(t *testing.T) {
	e := newTestEngine(KindI, KindO, KindT, KindS)
	e.Move(-2)
	e.Tick()
	e.Tick()
	require.True(t, e.Hold())

	e.HardDrop()
	require.Equal(t, KindT, e.Active().Kind())
	require.True(t, e.Hold())

	p := e.Active()
	assert.Equal(t, KindI, p.Kind())
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 17, p.Y)
	assert.Equal(t, KindT, e.Snapshot().Held.Kind)
}

func TestHardDropLocksOnceAndCountsOnce(t *testing.T) {
	e := newTestEngine(KindI, KindO)
	for y := 0; y < 4; y++ {
		fillRow(e.Board(), y, 4)
	}

	step := e.Gravity().Interval()
	assert.Equal(t, 0, e.Advance(step-time.Millisecond))

	e.HardDrop()

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.Locks)
	assert.Equal(t, 4, snap.Score)
	for y := range 20 {
		assert.False(t, e.Board().RowHasBlocks(y), "row %d", y)
	}
	assert.True(t, e.Gravity().Active(), "gravity resumes after the drop")
	assert.Equal(t, 0, e.Advance(time.Millisecond), "gravity restarts a full interval after the drop")
}

func TestScoreIsSumOfClearedRows(t *testing.T) {
	e := newTestEngine(KindI, KindI, KindI, KindO)

	for y := 0; y < 2; y++ {
		fillRow(e.Board(), y, 4)
	}
	e.HardDrop() // clears rows 0..1, two I cells remain in column 4
	assert.Equal(t, 2, e.Score())

	for y := 2; y < 5; y++ {
		fillRow(e.Board(), y, 4)
	}
	e.HardDrop() // lands on the leftover cells at rows 2..5
	assert.Equal(t, 5, e.Score())
	assert.Equal(t, 2, e.Snapshot().Locks)
}

func TestGameOverOnSecondRowFromTop(t *testing.T) {
	e := newTestEngine(KindO, KindO)
	e.Board().Fill(4, 17, core.ColorGray)

	assert.True(t, e.Tick())
	assert.Equal(t, StateGameOver, e.State())
	assert.True(t, e.GameOver())
	assert.False(t, e.Gravity().Active())
}

func TestNoGameOverBelowThreshold(t *testing.T) {
	e := newTestEngine(KindO, KindO)
	e.Board().Fill(4, 15, core.ColorGray)

	e.HardDrop() // O rests on rows 16..17
	assert.Equal(t, StatePlaying, e.State())
}

func TestGameOverIsTerminal(t *testing.T) {
	e := newTestEngine(KindO, KindT)
	e.Board().Fill(4, 17, core.ColorGray)
	e.Tick()
	require.True(t, e.GameOver())

	before := e.Snapshot()
	assert.False(t, e.Tick())
	assert.False(t, e.Move(-1))
	assert.False(t, e.Rotate(true))
	assert.False(t, e.Hold())
	e.HardDrop()
	assert.Equal(t, 0, e.Advance(time.Minute))
	assert.Equal(t, before, e.Snapshot())
}

func TestAdvanceAppliesGravity(t *testing.T) {
	e := newTestEngine(KindI, KindO)
	y := e.Active().Y

	assert.Equal(t, 0, e.Advance(400*time.Millisecond))
	assert.Equal(t, y, e.Active().Y)
	assert.Equal(t, 1, e.Advance(100*time.Millisecond))
	assert.Equal(t, y-1, e.Active().Y)
	assert.Equal(t, 3, e.Advance(1500*time.Millisecond))
	assert.Equal(t, y-4, e.Active().Y)
}

func TestFinalizeScore(t *testing.T) {
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	e := New(DefaultConfig(), &sequence{kinds: []Kind{KindO}}, WithClock(func() time.Time { return at }))

	_, err := e.FinalizeScore(context.Background(), "ada", nil)
	require.ErrorIs(t, err, ErrGameInProgress)

	e.Board().Fill(4, 17, core.ColorGray)
	e.Tick()
	require.True(t, e.GameOver())

	var saved []core.ScoreRecord
	rec := core.ScoreRecorderFunc(func(_ context.Context, r core.ScoreRecord) error {
		saved = append(saved, r)
		return nil
	})

	got, err := e.FinalizeScore(context.Background(), "ada", rec)
	require.NoError(t, err)
	assert.Equal(t, core.ScoreRecord{Name: "ada", Score: 0, Time: at}, got)
	assert.Equal(t, []core.ScoreRecord{got}, saved)

	_, err = e.FinalizeScore(context.Background(), "ada", rec)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	assert.Len(t, saved, 1)
}

func TestFinalizeScoreRecorderFailure(t *testing.T) {
	e := newTestEngine(KindO)
	e.Board().Fill(4, 17, core.ColorGray)
	e.Tick()

	boom := errors.New("disk full")
	failing := core.ScoreRecorderFunc(func(context.Context, core.ScoreRecord) error { return boom })

	_, err := e.FinalizeScore(context.Background(), "bob", failing)
	require.ErrorIs(t, err, boom)

	_, err = e.FinalizeScore(context.Background(), "bob", nil)
	assert.NoError(t, err, "a failed save can be retried")
}

func TestDeterministicReplay(t *testing.T) {
	play := func() Snapshot {
		r, err := NewRandomizer(RandomizerBag, rand.New(rand.NewSource(2024)))
		require.NoError(t, err)
		e := New(DefaultConfig(), r)
		moves := rand.New(rand.NewSource(1))
		for range 400 {
			switch moves.Intn(6) {
			case 0:
				e.Move(-1)
			case 1:
				e.Move(1)
			case 2:
				e.Rotate(true)
			case 3:
				e.Hold()
			case 4:
				e.HardDrop()
			default:
				e.Tick()
			}
		}
		return e.Snapshot()
	}

	assert.Equal(t, play(), play())
}
