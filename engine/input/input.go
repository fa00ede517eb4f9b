// Package input turns raw device state into the per-tick Sample consumed by camera scripts.
package input

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Keys is the set of logical movement keys held during a tick.
type Keys uint8

// Logical movement keys.
const (
	KeyForward Keys = 1 << iota
	KeyBack
	KeyStrafeLeft
	KeyStrafeRight
)

// Has reports whether every key in k is held.
func (s Keys) Has(k Keys) bool {
	return s&k == k
}

// Any reports whether at least one key is held.
func (s Keys) Any() bool {
	return s != 0
}

// Sample is a snapshot of input state for one tick.
type Sample struct {
	// CursorPos is the cursor position in window pixels.
	CursorPos mgl32.Vec2
	// WheelDelta is the scroll accumulated since the last reset. Positive scrolls toward the body.
	WheelDelta float32
	// RightMouseDown reports whether the drag button is held.
	RightMouseDown bool
	// Keys holds the logical movement keys that are down.
	Keys Keys
}

// Source is the raw input sampling contract.
// WheelDelta is an accumulator shared with the consumer: the camera reads it once per
// tick and then resets it with SetWheelDelta(0).
type Source interface {
	// MousePosition returns the current cursor position in window pixels.
	//
	// Returns:
	//   - mgl32.Vec2: cursor position
	MousePosition() mgl32.Vec2

	// MouseButtonDown reports whether a mouse button is held.
	//
	// Parameters:
	//   - code: mouse button code (see common.MouseButton*)
	//
	// Returns:
	//   - bool: true if held
	MouseButtonDown(code int) bool

	// WheelDelta returns the scroll accumulated since the last reset.
	//
	// Returns:
	//   - float32: accumulated vertical scroll
	WheelDelta() float32

	// SetWheelDelta overwrites the scroll accumulator.
	//
	// Parameters:
	//   - delta: the new accumulator value (normally 0)
	SetWheelDelta(delta float32)

	// KeyDown reports whether a key is held.
	//
	// Parameters:
	//   - code: key code (see common.Key*)
	//
	// Returns:
	//   - bool: true if held
	KeyDown(code int) bool
}

// Bindings maps logical camera inputs onto device codes.
type Bindings struct {
	Forward     []int
	Back        []int
	StrafeLeft  []int
	StrafeRight []int
	DragButton  int
}

// DefaultBindings binds WASD and the arrow keys for movement and the right mouse button for drag.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:     []int{common.KeyW, common.KeyUp},
		Back:        []int{common.KeyS, common.KeyDown},
		StrafeLeft:  []int{common.KeyA, common.KeyLeft},
		StrafeRight: []int{common.KeyD, common.KeyRight},
		DragButton:  common.MouseButtonRight,
	}
}

// Snapshot reads src once and builds a Sample. The wheel accumulator is read, not reset.
//
// Parameters:
//   - src: the raw input source
//   - b: key and button bindings
//
// Returns:
//   - Sample: the snapshot for this tick
func Snapshot(src Source, b Bindings) Sample {
	s := Sample{
		CursorPos:      src.MousePosition(),
		WheelDelta:     src.WheelDelta(),
		RightMouseDown: src.MouseButtonDown(b.DragButton),
	}
	if anyDown(src, b.Forward) {
		s.Keys |= KeyForward
	}
	if anyDown(src, b.Back) {
		s.Keys |= KeyBack
	}
	if anyDown(src, b.StrafeLeft) {
		s.Keys |= KeyStrafeLeft
	}
	if anyDown(src, b.StrafeRight) {
		s.Keys |= KeyStrafeRight
	}
	return s
}

func anyDown(src Source, codes []int) bool {
	for _, c := range codes {
		if src.KeyDown(c) {
			return true
		}
	}
	return false
}
