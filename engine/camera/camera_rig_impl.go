package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// minAltitudeFloor keeps the camera off the orbit center, where the radial
// direction is undefined.
const minAltitudeFloor float32 = 1e-3

// DefaultAltimeterThreshold is the altitude above which altimeter samples stop being requested.
const DefaultAltimeterThreshold float32 = 1000

// Default altitude bounds used when none are configured.
const (
	DefaultMinAltitude float32 = 1
	DefaultMaxAltitude float32 = math.MaxFloat32
)

// pose is the part of the rig state a Step may change. A failed Step restores it.
type pose struct {
	position        mgl32.Vec3
	altitude        float32
	surfaceAltitude float32
	frame           OrbitFrame
}

// cameraRigImpl is the single implementation of CameraRig.
type cameraRigImpl struct {
	mu *sync.Mutex

	position    mgl32.Vec3
	altitude    float32
	minAltitude float32
	maxAltitude float32

	frame          OrbitFrame
	initialForward mgl32.Vec3
	seed           *mgl32.Mat4

	sensitivity   float32
	zoomCurve     SpeedCurve
	moveCurve     SpeedCurve
	moveMode      MoveMode
	wheelDeadzone float32

	state        RigState
	lastCursor   mgl32.Vec2
	cursorPrimed bool

	altimeter          AltitudeSource
	altimeterThreshold float32
	surfaceAltitude    float32
	bootstrapped       bool
}

// Compile-time interface compliance check
var _ CameraRig = &cameraRigImpl{}

// NewCameraRig creates a rig with sensible defaults: 1000 units out on +Z, looking
// along +Y, altitude bounds [1, MaxFloat32], logarithmic zoom and constant movement.
// The starting distance is clamped into the altitude bounds.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - CameraRig: the newly created rig
//   - error: error if the starting position is the orbit center
func NewCameraRig(options ...RigOption) (CameraRig, error) {
	r := &cameraRigImpl{
		mu:                 &sync.Mutex{},
		position:           mgl32.Vec3{0, 0, 1000},
		initialForward:     mgl32.Vec3{0, 1, 0},
		minAltitude:        DefaultMinAltitude,
		maxAltitude:        DefaultMaxAltitude,
		sensitivity:        DefaultSensitivity,
		zoomCurve:          DefaultZoomCurve(),
		moveCurve:          DefaultMoveCurve(),
		moveMode:           MoveDirect,
		altimeterThreshold: DefaultAltimeterThreshold,
	}

	for _, option := range options {
		option(r)
	}

	if r.minAltitude < minAltitudeFloor {
		r.minAltitude = minAltitudeFloor
	}
	if r.maxAltitude < r.minAltitude {
		r.maxAltitude = r.minAltitude
	}

	dir, err := common.Normalize(r.position)
	if err != nil {
		return nil, fmt.Errorf("camera rig start position: %w", err)
	}
	r.position, r.altitude = r.place(dir, common.Clamp(r.position.Len(), r.minAltitude, r.maxAltitude))
	r.surfaceAltitude = r.altitude

	if r.seed != nil {
		seeded := *r.seed
		seeded[12], seeded[13], seeded[14] = r.position[0], r.position[1], r.position[2]
		r.frame, err = FrameFromTransform(seeded)
	} else {
		r.frame, err = NewOrbitFrame(r.position, r.initialForward)
	}
	if err != nil {
		return nil, err
	}

	if r.altimeter != nil {
		r.altimeter.SetRequestAltitude(true)
	}
	return r, nil
}

func (r *cameraRigImpl) Step(sample input.Sample, dt float32) (TickResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.position
	saved := r.savePose()
	res := TickResult{Zooming: abs32(sample.WheelDelta) > r.wheelDeadzone}

	fail := func(stage string, err error) (TickResult, error) {
		r.restorePose(saved)
		return r.result(TickResult{Zooming: res.Zooming, Suspended: res.Suspended}, start),
			fmt.Errorf("camera rig %s: %w", stage, err)
	}

	dragged, err := r.drag(sample)
	if err != nil {
		return fail("drag", err)
	}

	active, curveAltitude := r.sampleAltimeter()
	res.Suspended = !active
	// Altimeter readings survive a failed tick.
	saved.surfaceAltitude = r.surfaceAltitude

	if active && dt > 0 {
		if res.Zooming {
			delta, err := r.zoom(sample.WheelDelta, dt, curveAltitude)
			if err != nil {
				return fail("zoom", err)
			}
			res.AltitudeDelta = delta
		}
		if sample.Keys.Any() {
			moved, err := r.move(sample.Keys, dt, curveAltitude)
			if err != nil {
				return fail("move", err)
			}
			res.Moved = moved
		}
	}

	// Idle ticks leave the frame bit-identical so exact change detection stays quiet.
	if dragged || res.Moved || res.AltitudeDelta != 0 {
		if err := r.frame.Reanchor(r.position); err != nil {
			return fail("reanchor", err)
		}
	}
	return r.result(res, start), nil
}

func (r *cameraRigImpl) savePose() pose {
	return pose{
		position:        r.position,
		altitude:        r.altitude,
		surfaceAltitude: r.surfaceAltitude,
		frame:           r.frame,
	}
}

func (r *cameraRigImpl) restorePose(p pose) {
	r.position = p.position
	r.altitude = p.altitude
	r.surfaceAltitude = p.surfaceAltitude
	r.frame = p.frame
}

// place scales dir to altitude and returns the stored position with its length.
// The position is nudged by single ULPs until its length lies inside the bounds,
// and the altitude returned is that length, so Altitude() == |Position()| exactly.
func (r *cameraRigImpl) place(dir mgl32.Vec3, altitude float32) (mgl32.Vec3, float32) {
	p := dir.Mul(altitude)
	l := p.Len()
	for i := 0; i < 8 && l > r.maxAltitude; i++ {
		p = p.Mul(math.Nextafter32(r.maxAltitude/l, 0))
		l = p.Len()
	}
	for i := 0; i < 8 && l < r.minAltitude; i++ {
		p = p.Mul(math.Nextafter32(r.minAltitude/l, math.MaxFloat32))
		l = p.Len()
	}
	return p, l
}

// drag runs the Idle/Dragging state machine and applies cursor movement to the frame.
// The first sample only primes the cursor so a stale origin never produces a jump.
// It reports whether the frame was rotated.
func (r *cameraRigImpl) drag(sample input.Sample) (bool, error) {
	var delta mgl32.Vec2
	if r.cursorPrimed {
		delta = sample.CursorPos.Sub(r.lastCursor)
	}
	r.lastCursor = sample.CursorPos
	r.cursorPrimed = true

	if !sample.RightMouseDown {
		r.state = StateIdle
		return false, nil
	}
	if delta[0] == 0 && delta[1] == 0 {
		return false, nil
	}

	r.state = StateDragging
	next := r.frame
	if err := next.Drag(delta[0], delta[1], r.sensitivity); err != nil {
		return false, err
	}
	r.frame = next
	return true, nil
}

// sampleAltimeter drives the altitude request flag and returns whether altitude
// dependent effects may run, along with the altitude to feed the speed curves.
//
// Without an altimeter the rig's own altitude is used. With one, effects stay
// suspended until its first sample arrives; after that the request is withdrawn above
// the threshold (the surface altitude is then dead-reckoned from zoom deltas) and
// re-raised at or below it.
func (r *cameraRigImpl) sampleAltimeter() (bool, float32) {
	if r.altimeter == nil {
		return true, r.altitude
	}

	if !r.bootstrapped {
		r.altimeter.SetRequestAltitude(true)
		v, ok := r.altimeter.Altitude()
		if !ok {
			return false, r.altitude
		}
		r.surfaceAltitude = v
		r.bootstrapped = true
	}

	if r.surfaceAltitude > r.altimeterThreshold {
		r.altimeter.SetRequestAltitude(false)
	} else {
		r.altimeter.SetRequestAltitude(true)
		if v, ok := r.altimeter.Altitude(); ok {
			r.surfaceAltitude = v
		}
	}
	return true, r.surfaceAltitude
}

// zoom converts wheel input into a radial altitude change, absorbing overshoot at the
// bounds. It returns the applied delta, old altitude minus new altitude.
func (r *cameraRigImpl) zoom(wheel, dt, curveAltitude float32) (float32, error) {
	speed, err := curveSpeed(r.zoomCurve, curveAltitude)
	if err != nil {
		return 0, err
	}

	delta := speed * dt * -wheel
	target := common.Clamp(r.altitude+delta, r.minAltitude, r.maxAltitude)

	pos, newAltitude := r.place(r.frame.Up, target)
	applied := r.altitude - newAltitude
	r.position = pos
	r.altitude = newAltitude
	r.surfaceAltitude -= applied
	return applied, nil
}

// move applies held movement keys. Opposing keys cancel; several keys held together
// are normalized so diagonal movement is no faster than single-axis movement.
func (r *cameraRigImpl) move(keys input.Keys, dt, curveAltitude float32) (bool, error) {
	heading := r.frame.Heading()

	var dir mgl32.Vec3
	if keys.Has(input.KeyForward) {
		dir = dir.Add(heading)
	}
	if keys.Has(input.KeyBack) {
		dir = dir.Sub(heading)
	}
	if keys.Has(input.KeyStrafeRight) {
		dir = dir.Add(r.frame.Right)
	}
	if keys.Has(input.KeyStrafeLeft) {
		dir = dir.Sub(r.frame.Right)
	}

	dir, err := common.Normalize(dir)
	if err != nil {
		return false, nil
	}

	speed, err := curveSpeed(r.moveCurve, curveAltitude)
	if err != nil {
		return false, err
	}
	if speed == 0 {
		return false, nil
	}
	distance := speed * dt

	switch r.moveMode {
	case MoveGreatCircle:
		return r.moveGreatCircle(dir, distance)
	default:
		return r.moveDirect(dir, distance)
	}
}

func (r *cameraRigImpl) moveDirect(dir mgl32.Vec3, distance float32) (bool, error) {
	oldDir := r.frame.Up
	newDir, err := common.Normalize(r.position.Add(dir.Mul(distance)))
	if err != nil {
		return false, err
	}

	axis := oldDir.Cross(newDir)
	angle := common.AngleBetweenNormalized(oldDir, newDir)
	if axis.Len() < common.Epsilon || angle == 0 {
		return false, nil
	}

	next := r.frame
	if err := next.Transport(axis, angle); err != nil {
		return false, err
	}
	r.frame = next
	r.position, r.altitude = r.place(newDir, r.altitude)
	return true, nil
}

func (r *cameraRigImpl) moveGreatCircle(dir mgl32.Vec3, distance float32) (bool, error) {
	axis, err := common.Normalize(r.position.Cross(dir))
	if err != nil {
		return false, err
	}
	angle := distance / r.altitude

	p, err := common.Rotate(r.position, axis, angle)
	if err != nil {
		return false, err
	}
	newDir, err := common.Normalize(p)
	if err != nil {
		return false, err
	}

	next := r.frame
	if err := next.Transport(axis, angle); err != nil {
		return false, err
	}
	r.frame = next
	r.position, r.altitude = r.place(newDir, r.altitude)
	return true, nil
}

func (r *cameraRigImpl) result(res TickResult, start mgl32.Vec3) TickResult {
	res.Position = r.position
	res.Transform = r.transform()
	res.Displacement = r.position.Sub(start)
	res.State = r.state
	return res
}

func (r *cameraRigImpl) transform() mgl32.Mat4 {
	return common.Mul4(common.Translate(r.position), r.frame.Rotation())
}

func (r *cameraRigImpl) Position() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

func (r *cameraRigImpl) SetPosition(p mgl32.Vec3) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, err := common.Normalize(p)
	if err != nil {
		return err
	}
	pos, altitude := r.place(dir, common.Clamp(p.Len(), r.minAltitude, r.maxAltitude))
	if err := r.frame.Reanchor(pos); err != nil {
		return err
	}
	r.surfaceAltitude += altitude - r.altitude
	r.position = pos
	r.altitude = altitude
	return nil
}

func (r *cameraRigImpl) Altitude() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.altitude
}

func (r *cameraRigImpl) MinAltitude() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minAltitude
}

func (r *cameraRigImpl) MaxAltitude() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxAltitude
}

func (r *cameraRigImpl) SurfaceAltitude() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surfaceAltitude
}

func (r *cameraRigImpl) Frame() OrbitFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

func (r *cameraRigImpl) State() RigState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *cameraRigImpl) Sensitivity() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sensitivity
}

func (r *cameraRigImpl) Transform() mgl32.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transform()
}

func (r *cameraRigImpl) ViewMatrix() mgl32.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return common.ViewMatrix(r.transform())
}
