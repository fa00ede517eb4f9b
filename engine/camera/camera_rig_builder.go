package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RigOption is a functional option for configuring a CameraRig.
type RigOption func(*cameraRigImpl)

// WithPosition sets the initial camera position relative to the orbit center.
//
// Parameters:
//   - p: initial position (must be non-zero)
//
// Returns:
//   - RigOption: functional option to set the position
func WithPosition(p mgl32.Vec3) RigOption {
	return func(r *cameraRigImpl) {
		r.position = p
		r.seed = nil
	}
}

// WithForward sets the initial view direction. It is projected onto the tangent plane.
//
// Parameters:
//   - f: initial view direction
//
// Returns:
//   - RigOption: functional option to set the forward direction
func WithForward(f mgl32.Vec3) RigOption {
	return func(r *cameraRigImpl) {
		r.initialForward = f
	}
}

// WithTransform seeds position and orientation from an existing camera transform,
// typically the camera entity's transform at creation.
//
// Parameters:
//   - m: camera world transform
//
// Returns:
//   - RigOption: functional option to seed from a transform
func WithTransform(m mgl32.Mat4) RigOption {
	return func(r *cameraRigImpl) {
		r.position = mgl32.Vec3{m[12], m[13], m[14]}
		seed := m
		r.seed = &seed
	}
}

// WithAltitudeBounds sets the minimum and maximum altitude.
// If max < min, max is raised to min when the rig is built.
//
// Parameters:
//   - min: minimum distance from the orbit center
//   - max: maximum distance from the orbit center
//
// Returns:
//   - RigOption: functional option to set altitude bounds
func WithAltitudeBounds(min, max float32) RigOption {
	return func(r *cameraRigImpl) {
		r.minAltitude = min
		r.maxAltitude = max
	}
}

// WithSensitivity sets the drag sensitivity.
//
// Parameters:
//   - s: radians of rotation per pixel of cursor movement
//
// Returns:
//   - RigOption: functional option to set drag sensitivity
func WithSensitivity(s float32) RigOption {
	return func(r *cameraRigImpl) {
		r.sensitivity = s
	}
}

// WithZoomCurve sets the altitude-to-zoom-speed curve.
//
// Parameters:
//   - c: the zoom speed curve
//
// Returns:
//   - RigOption: functional option to set the zoom curve
func WithZoomCurve(c SpeedCurve) RigOption {
	return func(r *cameraRigImpl) {
		if c != nil {
			r.zoomCurve = c
		}
	}
}

// WithMoveCurve sets the altitude-to-movement-speed curve.
//
// Parameters:
//   - c: the movement speed curve
//
// Returns:
//   - RigOption: functional option to set the move curve
func WithMoveCurve(c SpeedCurve) RigOption {
	return func(r *cameraRigImpl) {
		if c != nil {
			r.moveCurve = c
		}
	}
}

// WithMoveMode selects how keyboard movement is applied.
//
// Parameters:
//   - m: MoveDirect or MoveGreatCircle
//
// Returns:
//   - RigOption: functional option to set the move mode
func WithMoveMode(m MoveMode) RigOption {
	return func(r *cameraRigImpl) {
		r.moveMode = m
	}
}

// WithWheelDeadzone sets the smallest wheel magnitude treated as input.
//
// Parameters:
//   - d: wheel deadzone
//
// Returns:
//   - RigOption: functional option to set the wheel deadzone
func WithWheelDeadzone(d float32) RigOption {
	return func(r *cameraRigImpl) {
		r.wheelDeadzone = d
	}
}

// WithAltimeter attaches a live altitude source. Until it produces its first sample,
// zoom and movement are suspended.
//
// Parameters:
//   - a: the altitude source
//   - threshold: altitude above which measurements are no longer requested
//
// Returns:
//   - RigOption: functional option to attach an altimeter
func WithAltimeter(a AltitudeSource, threshold float32) RigOption {
	return func(r *cameraRigImpl) {
		r.altimeter = a
		r.altimeterThreshold = threshold
	}
}
