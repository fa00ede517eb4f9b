package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/script"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithTimeScale sets the gameplay speed multiplier passed to scripts.
//
// Parameters:
//   - scale: time scale (default 1)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTimeScale(scale float32) EngineBuilderOption {
	return func(e *engine) {
		e.timeScale = scale
	}
}

// WithWindow attaches a window. Its input callbacks feed the scripts unless
// WithInput supplies another source.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithInput sets the input source handed to scripts each tick.
// Sources with a Poll method are polled once at the start of every tick.
//
// Parameters:
//   - src: the input source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(src input.Source) EngineBuilderOption {
	return func(e *engine) {
		e.input = src
	}
}

// WithScript registers a script during engine construction.
//
// Parameters:
//   - s: the script to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScript(s script.Script) EngineBuilderOption {
	return func(e *engine) {
		e.scripts = append(e.scripts, &scriptSlot{script: s})
	}
}
