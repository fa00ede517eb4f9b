package camera

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/entity"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/planet"
	"github.com/Carmen-Shannon/oxy-orbit/engine/script"
	"github.com/go-gl/mathgl/mgl32"
)

// lazyTransform is a named transform resolved on first use and retried until found.
type lazyTransform struct {
	name   string
	tr     entity.Transform
	warned bool
}

func (l *lazyTransform) resolve(reg entity.Registry) (entity.Transform, error) {
	if l.tr != nil {
		return l.tr, nil
	}
	h, ok := reg.FindEntityByName(l.name)
	if !ok {
		return nil, fmt.Errorf("%w: entity %q not found", ErrLookupFailed, l.name)
	}
	tr, ok := reg.Transform(h)
	if !ok {
		return nil, fmt.Errorf("%w: entity %q has no transform", ErrLookupFailed, l.name)
	}
	l.tr = tr
	return tr, nil
}

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	registry entity.Registry

	cameraName         string
	centerName         string
	rigOptions         []RigOption
	bindings           input.Bindings
	regenerator        planet.Regenerator
	comparison         planet.Comparison
	altimeterThreshold float32

	handle    entity.Handle
	transform entity.Transform
	center    entity.Transform
	followers []*lazyTransform
	rig       CameraRig
	detector  *planet.ChangeDetector
	last      TickResult
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a camera script bound to registry.
// Nothing is resolved until OnCreate.
//
// Parameters:
//   - registry: the entity registry the camera lives in
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(registry entity.Registry, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		registry:           registry,
		cameraName:         "Camera",
		bindings:           input.DefaultBindings(),
		comparison:         planet.CompareExact,
		altimeterThreshold: DefaultAltimeterThreshold,
		handle:             entity.InvalidHandle,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) OnCreate() error {
	h, ok := cc.registry.FindEntityByName(cc.cameraName)
	if !ok {
		return fmt.Errorf("%w: camera entity %q not found", ErrLookupFailed, cc.cameraName)
	}
	tr, ok := cc.registry.Transform(h)
	if !ok {
		return fmt.Errorf("%w: camera entity %q has no transform", ErrLookupFailed, cc.cameraName)
	}

	var center entity.Transform
	if cc.centerName != "" {
		c := &lazyTransform{name: cc.centerName}
		ct, err := c.resolve(cc.registry)
		if err != nil {
			return fmt.Errorf("orbit center: %w", err)
		}
		center = ct
	}

	origin := centerOf(center)
	seed := tr.Transform()
	seed[12] -= origin[0]
	seed[13] -= origin[1]
	seed[14] -= origin[2]

	options := append([]RigOption{}, cc.rigOptions...)
	if alt, ok := cc.registry.Altimeter(h); ok {
		options = append(options, WithAltimeter(alt, cc.altimeterThreshold))
	}
	options = append(options, WithTransform(seed))

	rig, err := NewCameraRig(options...)
	if err != nil {
		return fmt.Errorf("camera %q: %w", cc.cameraName, err)
	}

	world := common.Mul4(common.Translate(origin), rig.Transform())
	tr.SetTransform(world)

	if cc.regenerator != nil {
		cc.detector = planet.NewChangeDetector(cc.regenerator, planet.WithComparison(cc.comparison))
		cc.detector.Prime(world)
	}

	for _, f := range cc.followers {
		if _, err := f.resolve(cc.registry); err != nil {
			log.Printf("[Camera] follower %v; will retry", err)
			f.warned = true
		}
	}

	cc.handle = h
	cc.transform = tr
	cc.center = center
	cc.rig = rig
	return nil
}

func (cc *cameraControllerImpl) OnUpdate(ctx script.Context) error {
	if cc.rig == nil {
		return ErrNotCreated
	}

	var sample input.Sample
	if ctx.Input != nil {
		sample = input.Snapshot(ctx.Input, cc.bindings)
		// The wheel is edge-triggered: it never carries into the next tick.
		defer ctx.Input.SetWheelDelta(0)
	}

	res, err := cc.rig.Step(sample, ctx.ScaledStep())
	if err != nil {
		return fmt.Errorf("camera %q tick skipped: %w", cc.cameraName, err)
	}

	world := common.Mul4(common.Translate(centerOf(cc.center)), res.Transform)
	cc.transform.SetTransform(world)

	if res.Displacement != (mgl32.Vec3{}) {
		cc.moveFollowers(res.Displacement)
	}

	if cc.detector != nil {
		cc.detector.Observe(world)
	}

	cc.last = res
	return nil
}

// moveFollowers applies the camera's displacement to every follower that resolves.
// Unresolved followers are skipped for this tick and reported once.
func (cc *cameraControllerImpl) moveFollowers(d mgl32.Vec3) {
	for _, f := range cc.followers {
		tr, err := f.resolve(cc.registry)
		if err != nil {
			if !f.warned {
				log.Printf("[Camera] follower %v; skipping", err)
				f.warned = true
			}
			continue
		}
		tr.SetTranslation(tr.Translation().Add(d))
	}
}

func (cc *cameraControllerImpl) Rig() CameraRig {
	return cc.rig
}

func (cc *cameraControllerImpl) Entity() entity.Handle {
	return cc.handle
}

func (cc *cameraControllerImpl) LastResult() TickResult {
	return cc.last
}

func centerOf(t entity.Transform) mgl32.Vec3 {
	if t == nil {
		return mgl32.Vec3{}
	}
	return t.Translation()
}
