package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWorldCreateAndFind(t *testing.T) {
	w := NewWorld()
	cam := w.CreateEntity("Camera")
	mars := w.CreateEntity("Mars")

	if !cam.Valid() || !mars.Valid() {
		t.Fatalf("CreateEntity returned an invalid handle")
	}
	if cam == mars {
		t.Fatalf("two entities share a handle")
	}
	if w.Len() != 2 {
		t.Errorf("Len = %d, want 2", w.Len())
	}

	tests := []struct {
		name   string
		want   Handle
		wantOK bool
	}{
		{"Camera", cam, true},
		{"Mars", mars, true},
		{"Phobos", InvalidHandle, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.FindEntityByName(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FindEntityByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	h := w.CreateEntity("Camera")

	if _, ok := w.Transform(h); ok {
		t.Errorf("Transform resolved before AddTransform")
	}
	if _, ok := w.Altimeter(h); ok {
		t.Errorf("Altimeter resolved before AddAltimeter")
	}

	m := mgl32.Translate3D(1, 2, 3)
	added := w.AddTransform(h, m)
	tr, ok := w.Transform(h)
	if !ok || tr != Transform(added) {
		t.Fatalf("Transform(h) did not return the added component")
	}
	if tr.Transform() != m {
		t.Errorf("Transform() = %v, want %v", tr.Transform(), m)
	}

	w.AddAltimeter(h)
	if _, ok := w.Altimeter(h); !ok {
		t.Errorf("Altimeter did not resolve after AddAltimeter")
	}
}

func TestWorldStaleHandles(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity("Probe")
	w.AddTransform(old, mgl32.Ident4())
	w.DestroyEntity(old)

	if w.Len() != 0 {
		t.Errorf("Len = %d after destroy, want 0", w.Len())
	}
	if _, ok := w.FindEntityByName("Probe"); ok {
		t.Errorf("destroyed entity still found by name")
	}

	reused := w.CreateEntity("Other")
	if reused.index != old.index {
		t.Fatalf("slot not reused: %v vs %v", reused, old)
	}
	if reused == old {
		t.Fatalf("reused slot kept the old generation")
	}
	if _, ok := w.Transform(old); ok {
		t.Errorf("stale handle resolved a transform")
	}
	if _, ok := w.Transform(reused); ok {
		t.Errorf("reused slot inherited the old transform")
	}
	if w.AddTransform(old, mgl32.Ident4()) != nil {
		t.Errorf("AddTransform accepted a stale handle")
	}

	// Destroying a stale or invalid handle is a no-op.
	w.DestroyEntity(old)
	w.DestroyEntity(InvalidHandle)
	if w.Len() != 1 {
		t.Errorf("Len = %d, want 1", w.Len())
	}
}

func TestTransformComponent(t *testing.T) {
	rot := mgl32.HomogRotate3DZ(0.5)
	tc := NewTransformComponent(mgl32.Translate3D(4, 5, 6).Mul4(rot))

	if tc.Translation() != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("Translation = %v, want (4,5,6)", tc.Translation())
	}
	if tc.Rotation() != rot {
		t.Errorf("Rotation = %v, want %v", tc.Rotation(), rot)
	}

	tc.SetTranslation(mgl32.Vec3{7, 8, 9})
	if tc.Translation() != (mgl32.Vec3{7, 8, 9}) {
		t.Errorf("SetTranslation did not stick: %v", tc.Translation())
	}
	if tc.Rotation() != rot {
		t.Errorf("SetTranslation changed the rotation")
	}
}

func TestAltimeterComponent(t *testing.T) {
	a := &AltimeterComponent{}
	if _, ok := a.Altitude(); ok {
		t.Errorf("fresh altimeter reports a sample")
	}
	if a.Report(100) {
		t.Errorf("Report accepted without a request")
	}

	a.SetRequestAltitude(true)
	if !a.RequestAltitude() {
		t.Fatalf("RequestAltitude = false after SetRequestAltitude(true)")
	}
	if !a.Report(250) {
		t.Fatalf("Report rejected while requested")
	}
	if v, ok := a.Altitude(); !ok || v != 250 {
		t.Errorf("Altitude = %v, %v; want 250, true", v, ok)
	}

	a.SetRequestAltitude(false)
	a.Report(10)
	if v, _ := a.Altitude(); v != 250 {
		t.Errorf("withdrawn request still accepted a sample: %v", v)
	}
}
