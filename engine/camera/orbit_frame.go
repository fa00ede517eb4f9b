package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameTolerance is the maximum deviation from unit length and orthogonality an
// OrbitFrame may show after any update.
const FrameTolerance float32 = 1e-4

// DefaultSensitivity converts cursor pixels to radians of drag rotation.
const DefaultSensitivity float32 = 0.003

// ErrFrameDrift is returned by OrbitFrame.Validate when the frame is no longer orthonormal.
var ErrFrameDrift = errors.New("orbit frame is not orthonormal")

// OrbitFrame is the camera's orientation on the sphere.
//
// Up always points radially away from the orbit center. Forward is the view direction
// and may be pitched out of the tangent plane; Right stays tangent to the sphere and
// perpendicular to Forward. ViewUp = Forward × Right completes the view basis.
// The movement heading (Right × Up) is derived, never stored.
type OrbitFrame struct {
	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3
	ViewUp  mgl32.Vec3
}

// NewOrbitFrame builds a frame at position looking along forward.
// Forward is projected onto the tangent plane at position. If forward is radial (or zero),
// the world axis least aligned with the radial direction is used instead.
//
// Parameters:
//   - position: camera position relative to the orbit center (must be non-zero)
//   - forward: desired view direction
//
// Returns:
//   - OrbitFrame: the orthonormal frame
//   - error: common.ErrDegenerateVector if position is zero
func NewOrbitFrame(position, forward mgl32.Vec3) (OrbitFrame, error) {
	up, err := common.Normalize(position)
	if err != nil {
		return OrbitFrame{}, fmt.Errorf("failed to build orbit frame: %w", err)
	}

	f, err := common.Normalize(forward.Sub(up.Mul(forward.Dot(up))))
	if err != nil {
		f = leastAlignedAxis(up)
		f = f.Sub(up.Mul(f.Dot(up))).Normalize()
	}
	right := up.Cross(f).Normalize()

	return OrbitFrame{
		Forward: f,
		Right:   right,
		Up:      up,
		ViewUp:  f.Cross(right),
	}, nil
}

// FrameFromTransform seeds a frame from an existing camera transform.
// The transform's columns are read as right, view-up and forward; Up comes from the
// translation. The basis is re-orthonormalized against Up.
//
// Parameters:
//   - m: camera world transform
//
// Returns:
//   - OrbitFrame: the frame
//   - error: common.ErrDegenerateVector if the translation is zero
func FrameFromTransform(m mgl32.Mat4) (OrbitFrame, error) {
	pos := common.TranslationOf(m)
	right, _, forward := common.BasisOf(m)

	up, err := common.Normalize(pos)
	if err != nil {
		return OrbitFrame{}, fmt.Errorf("failed to build orbit frame from transform: %w", err)
	}

	fr := OrbitFrame{Forward: forward, Right: right, Up: up}
	if err := fr.repair(); err != nil {
		// The stored basis is unusable (e.g. a zero rotation); fall back to a tangent heading.
		return NewOrbitFrame(pos, forward)
	}
	return fr, nil
}

// Heading returns the tangential movement direction, Right × Up.
func (f OrbitFrame) Heading() mgl32.Vec3 {
	return f.Right.Cross(f.Up)
}

// Reanchor sets Up to the radial direction of position and re-orthonormalizes the
// carried Forward and Right against it, removing accumulated drift.
//
// Parameters:
//   - position: the camera position for this tick
//
// Returns:
//   - error: common.ErrDegenerateVector if position is zero; the frame is left unchanged
func (f *OrbitFrame) Reanchor(position mgl32.Vec3) error {
	up, err := common.Normalize(position)
	if err != nil {
		return err
	}
	next := *f
	next.Up = up
	if err := next.repair(); err != nil {
		return err
	}
	*f = next
	return nil
}

// Yaw turns the view about Up by angle radians (horizontal drag).
// Forward, ViewUp and Right are rotated, then Right is recomputed from Up × Forward so
// that it stays tangent. The recomputed Right keeps the rotated Right's sign, and the
// rotated Right is kept outright when Forward is radial.
func (f *OrbitFrame) Yaw(angle float32) error {
	fw, err := common.RotateOrKeep(f.Forward, f.Up, angle)
	if err != nil {
		return err
	}
	r, err := common.RotateOrKeep(f.Right, f.Up, angle)
	if err != nil {
		return err
	}

	if n, err := common.Normalize(f.Up.Cross(fw)); err == nil {
		if n.Dot(r) < 0 {
			n = n.Mul(-1)
		}
		r = n
	}

	f.Forward = fw
	f.Right = r
	f.ViewUp = fw.Cross(r)
	return nil
}

// Pitch tilts the view about Right by angle radians (vertical drag).
// ViewUp is recomputed as Forward × Right.
func (f *OrbitFrame) Pitch(angle float32) error {
	fw, err := common.RotateOrKeep(f.Forward, f.Right, angle)
	if err != nil {
		return err
	}
	f.Forward = fw
	f.ViewUp = fw.Cross(f.Right)
	return nil
}

// Drag applies a cursor movement of (dx, dy) pixels at the given sensitivity
// (radians per pixel). Horizontal movement yaws, vertical movement pitches.
func (f *OrbitFrame) Drag(dx, dy, sensitivity float32) error {
	if dx != 0 {
		if err := f.Yaw(dx * sensitivity); err != nil {
			return err
		}
	}
	if dy != 0 {
		if err := f.Pitch(dy * sensitivity); err != nil {
			return err
		}
	}
	return nil
}

// Transport rotates every frame vector about axis by angle, keeping the heading
// consistent with a position that moved by the same rotation.
func (f *OrbitFrame) Transport(axis mgl32.Vec3, angle float32) error {
	var out [4]mgl32.Vec3
	for i, v := range [4]mgl32.Vec3{f.Forward, f.Right, f.Up, f.ViewUp} {
		r, err := common.RotateOrKeep(v, axis, angle)
		if err != nil {
			return err
		}
		out[i] = r
	}
	f.Forward, f.Right, f.Up, f.ViewUp = out[0], out[1], out[2], out[3]
	return nil
}

// Rotation returns the rotation matrix with columns Right, ViewUp, Forward.
func (f OrbitFrame) Rotation() mgl32.Mat4 {
	return common.RotationFromBasis(f.Right, f.ViewUp, f.Forward)
}

// Validate checks that Forward and Right are unit length and perpendicular, that Right
// is tangent to the sphere, and that Up is unit length, all within FrameTolerance.
func (f OrbitFrame) Validate() error {
	checks := []struct {
		name string
		got  float32
		want float32
	}{
		{"|forward|", f.Forward.Len(), 1},
		{"|right|", f.Right.Len(), 1},
		{"|up|", f.Up.Len(), 1},
		{"forward·right", f.Forward.Dot(f.Right), 0},
		{"right·up", f.Right.Dot(f.Up), 0},
	}
	for _, c := range checks {
		d := c.got - c.want
		if d < 0 {
			d = -d
		}
		if d > FrameTolerance || d != d {
			return fmt.Errorf("%w: %s = %g", ErrFrameDrift, c.name, c.got)
		}
	}
	return nil
}

// repair re-derives Right and Forward from the current Up and refreshes ViewUp.
// When Right has collapsed onto Up it is rebuilt from Up × Forward.
func (f *OrbitFrame) repair() error {
	r, fw, err := common.Orthonormalize(f.Up, f.Right, f.Forward)
	if err != nil {
		rebuilt, rerr := common.Normalize(f.Up.Cross(f.Forward))
		if rerr != nil {
			return err
		}
		r, fw, err = common.Orthonormalize(f.Up, rebuilt, f.Forward)
		if err != nil {
			return err
		}
	}
	f.Right = r
	f.Forward = fw
	f.ViewUp = fw.Cross(r)
	return nil
}

// leastAlignedAxis returns the world axis with the smallest component along v.
func leastAlignedAxis(v mgl32.Vec3) mgl32.Vec3 {
	ax, ay, az := abs32(v.X()), abs32(v.Y()), abs32(v.Z())
	switch {
	case ax <= ay && ax <= az:
		return mgl32.Vec3{1, 0, 0}
	case ay <= az:
		return mgl32.Vec3{0, 1, 0}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
