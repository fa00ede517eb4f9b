// Package entity defines the capability contracts camera scripts need from the
// entity/component layer, plus World, a small in-memory arena that implements them.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies an entity slot in a World arena.
// The generation distinguishes a live entity from a destroyed one that previously
// occupied the same slot, so stale handles never resolve to a newer entity.
type Handle struct {
	index      uint32
	generation uint32
}

// InvalidHandle is the zero Handle; it never resolves.
var InvalidHandle = Handle{}

// Valid reports whether h was issued by a World (it may still be stale).
func (h Handle) Valid() bool {
	return h.generation != 0
}

// Transform is the read/write capability over an entity's world transform.
type Transform interface {
	// Translation returns the translation column of the transform.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Translation() mgl32.Vec3

	// SetTranslation replaces the translation column, leaving rotation and scale intact.
	//
	// Parameters:
	//   - t: new world-space position
	SetTranslation(t mgl32.Vec3)

	// Rotation returns the transform with its translation column cleared.
	//
	// Returns:
	//   - mgl32.Mat4: rotation (and scale) part of the transform
	Rotation() mgl32.Mat4

	// Transform returns the full 4x4 transform (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	Transform() mgl32.Mat4

	// SetTransform replaces the full 4x4 transform.
	//
	// Parameters:
	//   - m: the new world transform
	SetTransform(m mgl32.Mat4)
}

// Altimeter is the capability of a physics/collision component that can measure the
// camera's altitude above the surface on request. Measuring is expensive, so the
// component only produces samples while RequestAltitude is raised.
type Altimeter interface {
	// Altitude returns the most recent measurement.
	//
	// Returns:
	//   - float32: altitude above the surface
	//   - bool: false until at least one measurement has been produced
	Altitude() (float32, bool)

	// RequestAltitude reports whether a measurement is currently requested.
	//
	// Returns:
	//   - bool: true if the request flag is raised
	RequestAltitude() bool

	// SetRequestAltitude raises or withdraws the measurement request.
	//
	// Parameters:
	//   - req: true to request measurements
	SetRequestAltitude(req bool)
}

// Registry resolves entities by name and exposes their capabilities.
// Lookups may fail; callers must check the returned bool before using the result.
type Registry interface {
	// FindEntityByName returns the first live entity with the given name.
	//
	// Parameters:
	//   - name: the entity name
	//
	// Returns:
	//   - Handle: the entity handle
	//   - bool: false if no live entity has that name
	FindEntityByName(name string) (Handle, bool)

	// Transform returns the entity's transform capability.
	//
	// Parameters:
	//   - h: the entity handle
	//
	// Returns:
	//   - Transform: the transform accessor
	//   - bool: false if the entity is gone or has no transform
	Transform(h Handle) (Transform, bool)

	// Altimeter returns the entity's altimeter capability.
	//
	// Parameters:
	//   - h: the entity handle
	//
	// Returns:
	//   - Altimeter: the altimeter accessor
	//   - bool: false if the entity is gone or has no altimeter
	Altimeter(h Handle) (Altimeter, bool)
}
