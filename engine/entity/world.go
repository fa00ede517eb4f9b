package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent stores a world transform. It implements Transform.
type TransformComponent struct {
	m mgl32.Mat4
}

var _ Transform = &TransformComponent{}

// NewTransformComponent creates a transform component holding m.
func NewTransformComponent(m mgl32.Mat4) *TransformComponent {
	return &TransformComponent{m: m}
}

func (t *TransformComponent) Translation() mgl32.Vec3 {
	return mgl32.Vec3{t.m[12], t.m[13], t.m[14]}
}

func (t *TransformComponent) SetTranslation(v mgl32.Vec3) {
	t.m[12], t.m[13], t.m[14] = v[0], v[1], v[2]
}

func (t *TransformComponent) Rotation() mgl32.Mat4 {
	r := t.m
	r[12], r[13], r[14] = 0, 0, 0
	return r
}

func (t *TransformComponent) Transform() mgl32.Mat4 {
	return t.m
}

func (t *TransformComponent) SetTransform(m mgl32.Mat4) {
	t.m = m
}

// AltimeterComponent is a settable Altimeter. The physics side calls Report with
// fresh measurements; the camera side raises and withdraws the request flag.
type AltimeterComponent struct {
	altitude float32
	sampled  bool
	request  bool
}

var _ Altimeter = &AltimeterComponent{}

func (a *AltimeterComponent) Altitude() (float32, bool) {
	return a.altitude, a.sampled
}

func (a *AltimeterComponent) RequestAltitude() bool {
	return a.request
}

func (a *AltimeterComponent) SetRequestAltitude(req bool) {
	a.request = req
}

// Report stores a new measurement. Measurements arriving while no request is
// raised are dropped.
//
// Parameters:
//   - altitude: measured altitude above the surface
//
// Returns:
//   - bool: true if the measurement was accepted
func (a *AltimeterComponent) Report(altitude float32) bool {
	if !a.request {
		return false
	}
	a.altitude = altitude
	a.sampled = true
	return true
}

// slot is one arena cell. A slot is reused after its entity is destroyed, with
// the generation bumped so older handles stop resolving.
type slot struct {
	name       string
	generation uint32
	alive      bool
	transform  *TransformComponent
	altimeter  *AltimeterComponent
}

// World is an arena-backed Registry. Entities are addressed by Handle; destroyed
// slots are recycled through a free list.
//
// World is not safe for concurrent use; it is owned by the thread driving ticks.
type World struct {
	slots []slot
	free  []uint32
}

var _ Registry = &World{}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		slots: make([]slot, 0, 16),
		free:  make([]uint32, 0),
	}
}

// CreateEntity allocates a named entity with no components.
//
// Parameters:
//   - name: the entity name used by FindEntityByName
//
// Returns:
//   - Handle: handle to the new entity
func (w *World) CreateEntity(name string) Handle {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		s := &w.slots[idx]
		s.name = name
		s.alive = true
		return Handle{index: idx, generation: s.generation}
	}
	w.slots = append(w.slots, slot{name: name, generation: 1, alive: true})
	return Handle{index: uint32(len(w.slots) - 1), generation: 1}
}

// DestroyEntity releases the entity's slot. Stale or invalid handles are ignored.
func (w *World) DestroyEntity(h Handle) {
	s := w.lookup(h)
	if s == nil {
		return
	}
	*s = slot{generation: s.generation + 1}
	w.free = append(w.free, h.index)
}

// AddTransform attaches a transform component initialised to m.
//
// Returns:
//   - *TransformComponent: the attached component, or nil for a stale handle
func (w *World) AddTransform(h Handle, m mgl32.Mat4) *TransformComponent {
	s := w.lookup(h)
	if s == nil {
		return nil
	}
	s.transform = NewTransformComponent(m)
	return s.transform
}

// AddAltimeter attaches an altimeter component with no measurement yet.
//
// Returns:
//   - *AltimeterComponent: the attached component, or nil for a stale handle
func (w *World) AddAltimeter(h Handle) *AltimeterComponent {
	s := w.lookup(h)
	if s == nil {
		return nil
	}
	s.altimeter = &AltimeterComponent{}
	return s.altimeter
}

func (w *World) FindEntityByName(name string) (Handle, bool) {
	for i := range w.slots {
		s := &w.slots[i]
		if s.alive && s.name == name {
			return Handle{index: uint32(i), generation: s.generation}, true
		}
	}
	return InvalidHandle, false
}

func (w *World) Transform(h Handle) (Transform, bool) {
	s := w.lookup(h)
	if s == nil || s.transform == nil {
		return nil, false
	}
	return s.transform, true
}

func (w *World) Altimeter(h Handle) (Altimeter, bool) {
	s := w.lookup(h)
	if s == nil || s.altimeter == nil {
		return nil, false
	}
	return s.altimeter, true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.slots) - len(w.free)
}

func (w *World) lookup(h Handle) *slot {
	if !h.Valid() || int(h.index) >= len(w.slots) {
		return nil
	}
	s := &w.slots[h.index]
	if !s.alive || s.generation != h.generation {
		return nil
	}
	return s
}
