package input

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenKeys maps the engine's GLFW-valued key codes onto ebiten keys.
var ebitenKeys = map[int]ebiten.Key{
	common.KeyW:          ebiten.KeyW,
	common.KeyA:          ebiten.KeyA,
	common.KeyS:          ebiten.KeyS,
	common.KeyD:          ebiten.KeyD,
	common.KeyUp:         ebiten.KeyArrowUp,
	common.KeyDown:       ebiten.KeyArrowDown,
	common.KeyLeft:       ebiten.KeyArrowLeft,
	common.KeyRight:      ebiten.KeyArrowRight,
	common.KeySpace:      ebiten.KeySpace,
	common.KeyEsc:        ebiten.KeyEscape,
	common.KeyLeftShift:  ebiten.KeyShiftLeft,
	common.KeyRightShift: ebiten.KeyShiftRight,
}

var ebitenButtons = map[int]ebiten.MouseButton{
	common.MouseButtonLeft:   ebiten.MouseButtonLeft,
	common.MouseButtonRight:  ebiten.MouseButtonRight,
	common.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// EbitenSource is a Source that polls ebiten's input state, for hosts driven by an
// ebiten game loop. ebiten reports wheel movement per frame only, so Poll must be
// called once from the game's Update to fold it into the accumulator.
type EbitenSource struct {
	wheel float32
}

var _ Source = &EbitenSource{}

// NewEbitenSource creates an EbitenSource with an empty wheel accumulator.
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Poll folds this frame's vertical wheel movement into the accumulator.
// Call it once per ebiten Update, before the camera tick.
func (e *EbitenSource) Poll() {
	_, dy := ebiten.Wheel()
	e.wheel += float32(dy)
}

func (e *EbitenSource) MousePosition() mgl32.Vec2 {
	x, y := ebiten.CursorPosition()
	return mgl32.Vec2{float32(x), float32(y)}
}

func (e *EbitenSource) MouseButtonDown(code int) bool {
	b, ok := ebitenButtons[code]
	if !ok {
		return false
	}
	return ebiten.IsMouseButtonPressed(b)
}

func (e *EbitenSource) WheelDelta() float32 {
	return e.wheel
}

func (e *EbitenSource) SetWheelDelta(delta float32) {
	e.wheel = delta
}

func (e *EbitenSource) KeyDown(code int) bool {
	k, ok := ebitenKeys[code]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}
