package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGravityInterval(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, NewGravity(2).Interval())
	assert.Equal(t, time.Second, NewGravity(0).Interval())
}

func TestGravityAdvance(t *testing.T) {
	g := NewGravity(2)

	assert.Equal(t, 0, g.Advance(499*time.Millisecond))
	assert.Equal(t, 1, g.Advance(time.Millisecond))
	assert.Equal(t, 3, g.Advance(1600*time.Millisecond))
	assert.Equal(t, 1, g.Advance(400*time.Millisecond))
	assert.Equal(t, 0, g.Advance(-time.Second))
}

func TestGravitySuspendNests(t *testing.T) {
	g := NewGravity(2)
	g.Advance(400 * time.Millisecond)

	g.Suspend()
	g.Suspend()
	assert.False(t, g.Active())
	assert.Equal(t, 0, g.Advance(time.Second))

	g.Resume()
	assert.False(t, g.Active())
	g.Resume()
	assert.True(t, g.Active())

	// partial interval from before the suspension is gone
	assert.Equal(t, 0, g.Advance(400*time.Millisecond))

	g.Resume()
	assert.True(t, g.Active(), "unbalanced Resume is ignored")
}

func TestGravityStopIsPermanent(t *testing.T) {
	g := NewGravity(2)
	g.Stop()
	g.Suspend()
	g.Resume()

	assert.False(t, g.Active())
	assert.Equal(t, 0, g.Advance(10*time.Second))
}
