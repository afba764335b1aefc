package engine

import "time"

// Gravity is the periodic trigger that pulls the active piece down. The
// platform feeds it elapsed time; it reports how many gravity steps fell due.
// It can be suspended (nested) and stopped for good.
type Gravity struct {
	interval  time.Duration
	elapsed   time.Duration
	suspended int
	stopped   bool
}

// NewGravity returns a clock firing stepsPerSecond times per second.
func NewGravity(stepsPerSecond float64) *Gravity {
	if stepsPerSecond <= 0 {
		stepsPerSecond = 1
	}
	return &Gravity{interval: time.Duration(float64(time.Second) / stepsPerSecond)}
}

// Interval returns the time between gravity steps.
func (g *Gravity) Interval() time.Duration { return g.interval }

// Active reports whether the clock is running.
func (g *Gravity) Active() bool {
	return !g.stopped && g.suspended == 0
}

// Advance adds dt to the clock and returns the number of steps now due.
// A suspended or stopped clock accumulates nothing.
func (g *Gravity) Advance(dt time.Duration) int {
	if !g.Active() || dt <= 0 {
		return 0
	}
	g.elapsed += dt
	n := int(g.elapsed / g.interval)
	g.elapsed -= time.Duration(n) * g.interval
	return n
}

// Suspend pauses the clock until a matching Resume.
func (g *Gravity) Suspend() {
	g.suspended++
}

// Resume undoes one Suspend. The partial interval is discarded, so the next
// step comes a full interval after resuming.
func (g *Gravity) Resume() {
	if g.suspended == 0 {
		return
	}
	g.suspended--
	if g.suspended == 0 {
		g.elapsed = 0
	}
}

// Stop halts the clock permanently.
func (g *Gravity) Stop() {
	g.stopped = true
	g.elapsed = 0
}
