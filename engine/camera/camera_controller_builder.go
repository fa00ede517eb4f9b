package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/planet"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithCameraEntity sets the name of the entity the controller drives.
//
// Parameters:
//   - name: camera entity name (default "Camera")
//
// Returns:
//   - CameraControllerOption: functional option to set the camera entity
func WithCameraEntity(name string) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cameraName = name
	}
}

// WithOrbitCenterEntity makes the camera orbit the named entity instead of the world
// origin. The center is re-read every tick, so the body may move.
//
// Parameters:
//   - name: name of the body entity
//
// Returns:
//   - CameraControllerOption: functional option to set the orbit center
func WithOrbitCenterEntity(name string) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.centerName = name
	}
}

// WithFollowers names auxiliary entities that are moved by the same world displacement
// as the camera each tick. Followers that do not exist yet are looked up again on later ticks.
//
// Parameters:
//   - names: follower entity names
//
// Returns:
//   - CameraControllerOption: functional option to add followers
func WithFollowers(names ...string) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		for _, n := range names {
			cc.followers = append(cc.followers, &lazyTransform{name: n})
		}
	}
}

// WithRigOptions passes options through to the CameraRig built in OnCreate.
// The rig is always seeded from the camera entity's transform; a WithPosition or
// WithTransform given here is overridden.
//
// Parameters:
//   - options: rig options
//
// Returns:
//   - CameraControllerOption: functional option to configure the rig
func WithRigOptions(options ...RigOption) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rigOptions = append(cc.rigOptions, options...)
	}
}

// WithBindings sets the key and button bindings used to sample input.
//
// Parameters:
//   - b: input bindings
//
// Returns:
//   - CameraControllerOption: functional option to set input bindings
func WithBindings(b input.Bindings) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = b
	}
}

// WithRegenerator sets the planet collaborator notified when the camera transform changes.
//
// Parameters:
//   - r: the planet regenerator
//
// Returns:
//   - CameraControllerOption: functional option to set the regenerator
func WithRegenerator(r planet.Regenerator) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.regenerator = r
	}
}

// WithChangeComparison sets how "the transform changed" is decided for regeneration.
//
// Parameters:
//   - cmp: planet.CompareExact (default) or planet.CompareEpsilon(eps)
//
// Returns:
//   - CameraControllerOption: functional option to set the comparison
func WithChangeComparison(cmp planet.Comparison) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.comparison = cmp
	}
}

// WithAltimeterThreshold sets the altitude above which the camera's altimeter is no
// longer asked for measurements. Only used if the camera entity has an altimeter.
//
// Parameters:
//   - t: altitude threshold
//
// Returns:
//   - CameraControllerOption: functional option to set the altimeter threshold
func WithAltimeterThreshold(t float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.altimeterThreshold = t
	}
}
