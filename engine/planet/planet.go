// Package planet connects camera motion to the planet mesh/LOD collaborator.
// The collaborator only ever receives one-way notifications; how it rebuilds the
// mesh is outside this module.
package planet

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Regenerator is the planet mesh/LOD collaborator.
type Regenerator interface {
	// RegeneratePlanet requests a mesh rebuild for a new camera pose.
	//
	// Parameters:
	//   - cameraPos: world-space camera position
	//   - cameraTransform: the camera's full world transform
	RegeneratePlanet(cameraPos mgl32.Vec3, cameraTransform mgl32.Mat4)
}

// RegeneratorFunc adapts a plain function to the Regenerator interface.
type RegeneratorFunc func(cameraPos mgl32.Vec3, cameraTransform mgl32.Mat4)

func (f RegeneratorFunc) RegeneratePlanet(cameraPos mgl32.Vec3, cameraTransform mgl32.Mat4) {
	f(cameraPos, cameraTransform)
}

// Comparison reports whether two camera transforms count as the same pose.
type Comparison func(prev, next mgl32.Mat4) bool

// CompareExact treats any bit-level difference as a change.
// Every tick with input therefore triggers a rebuild, and float noise alone never does.
func CompareExact(prev, next mgl32.Mat4) bool {
	return common.Equal(prev, next)
}

// CompareEpsilon treats transforms whose entries all differ by at most eps as unchanged.
func CompareEpsilon(eps float32) Comparison {
	return func(prev, next mgl32.Mat4) bool {
		return common.ApproxEqual(prev, next, eps)
	}
}

// ChangeDetector caches the last camera transform sent to a Regenerator and
// notifies it again only when the transform has changed.
//
// The cache holds the last notified transform rather than the last observed one,
// so under an epsilon comparison a slow drift still fires once it accumulates
// past the tolerance. Under exact comparison the two are equivalent.
type ChangeDetector struct {
	regen  Regenerator
	equal  Comparison
	prev   mgl32.Mat4
	primed bool
	fired  uint64
}

// ChangeDetectorOption is a functional option for configuring a ChangeDetector.
type ChangeDetectorOption func(*ChangeDetector)

// WithComparison sets the comparison used to decide whether the pose changed.
//
// Parameters:
//   - cmp: the comparison (CompareExact or CompareEpsilon)
//
// Returns:
//   - ChangeDetectorOption: functional option to set the comparison
func WithComparison(cmp Comparison) ChangeDetectorOption {
	return func(d *ChangeDetector) {
		if cmp != nil {
			d.equal = cmp
		}
	}
}

// NewChangeDetector creates a ChangeDetector notifying regen. Exact comparison is the default.
func NewChangeDetector(regen Regenerator, options ...ChangeDetectorOption) *ChangeDetector {
	d := &ChangeDetector{
		regen: regen,
		equal: CompareExact,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Prime seeds the cache without notifying, so the initial pose does not trigger a rebuild.
func (d *ChangeDetector) Prime(m mgl32.Mat4) {
	d.prev = m
	d.primed = true
}

// Observe compares m against the cached transform and notifies the regenerator if it changed.
// An unprimed detector notifies on its first observation.
//
// Parameters:
//   - m: the camera transform after this tick
//
// Returns:
//   - bool: true if the regenerator was notified
func (d *ChangeDetector) Observe(m mgl32.Mat4) bool {
	if d.primed && d.equal(d.prev, m) {
		return false
	}
	d.prev = m
	d.primed = true
	d.fired++
	if d.regen != nil {
		d.regen.RegeneratePlanet(common.TranslationOf(m), m)
	}
	return true
}

// Notifications returns how many times the regenerator has been notified.
func (d *ChangeDetector) Notifications() uint64 {
	return d.fired
}
