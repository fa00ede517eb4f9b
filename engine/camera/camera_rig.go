package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// RigState is the drag state of a CameraRig.
type RigState int

const (
	// StateIdle means the drag button is up, or held without cursor movement.
	StateIdle RigState = iota
	// StateDragging means the drag button is held and the cursor has moved since it went down.
	StateDragging
)

func (s RigState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// MoveMode selects how keyboard movement is applied to the camera position.
type MoveMode int

const (
	// MoveDirect adds the displacement to the position, rescales back to the current
	// altitude, and transports the frame by the resulting angle.
	MoveDirect MoveMode = iota
	// MoveGreatCircle rotates the position about the axis perpendicular to it and the
	// movement direction, with the frame rotated by the same signed angle.
	MoveGreatCircle
)

func (m MoveMode) String() string {
	switch m {
	case MoveDirect:
		return "direct"
	case MoveGreatCircle:
		return "great-circle"
	default:
		return "unknown"
	}
}

// AltitudeSource is a live altimeter the rig may poll for surface altitude.
// entity.Altimeter satisfies it.
type AltitudeSource interface {
	Altitude() (float32, bool)
	SetRequestAltitude(req bool)
}

// TickResult describes what one Step did.
type TickResult struct {
	// Position is the camera position after the tick.
	Position mgl32.Vec3
	// Transform is Translate(Position) * Rotation(frame).
	Transform mgl32.Mat4
	// Displacement is the world-space change in position during the tick.
	Displacement mgl32.Vec3
	// AltitudeDelta is the applied zoom delta, old altitude minus new altitude.
	AltitudeDelta float32
	// State is the drag state after the tick.
	State RigState
	// Zooming is true on any tick with non-zero wheel input.
	Zooming bool
	// Moved is true if keyboard movement changed the position.
	Moved bool
	// Suspended is true while altitude-dependent effects wait for the first altimeter sample.
	Suspended bool
}

// CameraRig is the orbital camera state machine. It owns the camera position and
// orientation frame around a body centered at the origin, and advances them once
// per tick from an input sample.
//
// Invariants after every Step: Altitude() == |Position()| and
// MinAltitude() <= Altitude() <= MaxAltitude().
type CameraRig interface {
	// Step advances the rig by one tick.
	// Drag reorientation is frame-rate independent; zoom and movement scale with dt.
	// The sample's wheel delta is consumed; resetting the source is the caller's job.
	//
	// Parameters:
	//   - sample: the input snapshot for this tick
	//   - dt: scaled timestep in seconds (timestep / timeScale)
	//
	// Returns:
	//   - TickResult: what changed this tick
	//   - error: tick-local failure from degenerate geometry; state is left finite
	Step(sample input.Sample, dt float32) (TickResult, error)

	// Position returns the camera position relative to the orbit center.
	//
	// Returns:
	//   - mgl32.Vec3: camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera, clamping its distance to the altitude bounds.
	// The frame is re-anchored to the new radial direction.
	//
	// Parameters:
	//   - p: new position (must be non-zero)
	//
	// Returns:
	//   - error: common.ErrDegenerateVector for the zero vector
	SetPosition(p mgl32.Vec3) error

	// Altitude returns the distance from the orbit center.
	//
	// Returns:
	//   - float32: |Position()|
	Altitude() float32

	// MinAltitude returns the lower altitude bound.
	//
	// Returns:
	//   - float32: minimum altitude
	MinAltitude() float32

	// MaxAltitude returns the upper altitude bound.
	//
	// Returns:
	//   - float32: maximum altitude (never below MinAltitude)
	MaxAltitude() float32

	// SurfaceAltitude returns the altitude fed to the speed curves: the altimeter's
	// reading when one is attached, otherwise Altitude().
	//
	// Returns:
	//   - float32: curve input altitude
	SurfaceAltitude() float32

	// Frame returns a copy of the orientation frame.
	//
	// Returns:
	//   - OrbitFrame: the current frame
	Frame() OrbitFrame

	// State returns the drag state.
	//
	// Returns:
	//   - RigState: Idle or Dragging
	State() RigState

	// Sensitivity returns the drag sensitivity in radians per pixel.
	//
	// Returns:
	//   - float32: drag sensitivity
	Sensitivity() float32

	// Transform returns Translate(Position) * Rotation(frame), column-major.
	//
	// Returns:
	//   - mgl32.Mat4: the camera world transform
	Transform() mgl32.Mat4

	// ViewMatrix returns the inverse of Transform.
	//
	// Returns:
	//   - mgl32.Mat4: the world-to-view matrix
	ViewMatrix() mgl32.Mat4
}
