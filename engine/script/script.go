// Package script defines the entry points the engine invokes on entity scripts
// and the per-tick context injected into them.
package script

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
)

// Context carries everything a script may read during one tick.
// It replaces global input and scene accessors so scripts can be driven by tests.
type Context struct {
	// Timestep is the wall-clock time since the previous tick, in seconds.
	Timestep float32
	// TimeScale is the scene's gameplay speed multiplier. Values <= 0 are treated as 1.
	TimeScale float32
	// Input is the raw input source for this tick.
	Input input.Source
}

// ScaledStep returns Timestep / TimeScale, so that gameplay speed changes do not
// change steering feel.
func (c Context) ScaledStep() float32 {
	if c.TimeScale <= 0 {
		return c.Timestep
	}
	return c.Timestep / c.TimeScale
}

// Script is an entity behaviour driven by the engine tick loop.
type Script interface {
	// OnCreate is called once before the first OnUpdate. Capabilities are resolved here.
	//
	// Returns:
	//   - error: error if the script cannot run
	OnCreate() error

	// OnUpdate is called once per tick.
	//
	// Parameters:
	//   - ctx: the tick context
	//
	// Returns:
	//   - error: tick-local failure; the next tick runs normally
	OnUpdate(ctx Context) error
}
