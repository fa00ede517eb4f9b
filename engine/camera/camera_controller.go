package camera

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-orbit/engine/entity"
	"github.com/Carmen-Shannon/oxy-orbit/engine/script"
)

var (
	// ErrLookupFailed is returned when a named entity or one of its required components
	// cannot be resolved.
	ErrLookupFailed = errors.New("entity lookup failed")

	// ErrNotCreated is returned by OnUpdate when OnCreate has not completed successfully.
	ErrNotCreated = errors.New("camera controller not created")
)

// CameraController is the camera entity script. It resolves the camera's capabilities
// once in OnCreate, then on every OnUpdate samples input, steps its CameraRig, writes the
// resulting transform back to the entity, moves any follower entities by the same
// displacement, and tells the planet collaborator when the transform changed.
type CameraController interface {
	script.Script

	// Rig returns the underlying CameraRig, or nil before OnCreate succeeds.
	//
	// Returns:
	//   - CameraRig: the rig driving this camera
	Rig() CameraRig

	// Entity returns the camera entity handle resolved in OnCreate.
	//
	// Returns:
	//   - entity.Handle: the camera entity, or entity.InvalidHandle before OnCreate
	Entity() entity.Handle

	// LastResult returns the result of the most recent successful tick.
	//
	// Returns:
	//   - TickResult: last tick result
	LastResult() TickResult
}
