package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Tracker is a Source fed by window event callbacks.
// Callbacks arrive on the window goroutine while ticks read on the engine goroutine,
// so all state is guarded by a mutex.
type Tracker struct {
	mu *sync.Mutex

	cursor  mgl32.Vec2
	wheel   float32
	keys    map[int]bool
	buttons map[int]bool
}

var _ Source = &Tracker{}

// NewTracker creates a Tracker with nothing held and the cursor at the origin.
func NewTracker() *Tracker {
	return &Tracker{
		mu:      &sync.Mutex{},
		keys:    make(map[int]bool),
		buttons: make(map[int]bool),
	}
}

// OnKeyDown records a key press. Signature matches window.SetKeyDownCallback.
func (t *Tracker) OnKeyDown(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys[int(keyCode)] = true
}

// OnKeyUp records a key release. Signature matches window.SetKeyUpCallback.
func (t *Tracker) OnKeyUp(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.keys, int(keyCode))
}

// OnMouseMove records the cursor position. Signature matches window.SetMouseMoveCallback.
func (t *Tracker) OnMouseMove(x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = mgl32.Vec2{float32(x), float32(y)}
}

// OnMouseButton records a button transition. Signature matches window.SetMouseButtonCallback.
func (t *Tracker) OnMouseButton(button int, down bool, x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = mgl32.Vec2{float32(x), float32(y)}
	if down {
		t.buttons[button] = true
	} else {
		delete(t.buttons, button)
	}
}

// OnScroll adds a wheel step to the accumulator. Signature matches window.SetScrollCallback.
func (t *Tracker) OnScroll(delta float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.wheel += delta
}

func (t *Tracker) MousePosition() mgl32.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor
}

func (t *Tracker) MouseButtonDown(code int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buttons[code]
}

func (t *Tracker) WheelDelta() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wheel
}

func (t *Tracker) SetWheelDelta(delta float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.wheel = delta
}

func (t *Tracker) KeyDown(code int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[code]
}
