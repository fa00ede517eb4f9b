package planet

import (
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type recorder struct {
	mu    sync.Mutex
	calls []mgl32.Vec3
}

func (r *recorder) RegeneratePlanet(pos mgl32.Vec3, _ mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, pos)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestChangeDetector(t *testing.T) {
	base := mgl32.Translate3D(0, 0, 1000)
	nudged := base
	nudged[14] += 1e-4
	moved := mgl32.Translate3D(0, 10, 1000)

	tests := []struct {
		name     string
		options  []ChangeDetectorOption
		sequence []mgl32.Mat4
		want     []bool
	}{
		{
			name:     "exact fires on any change",
			sequence: []mgl32.Mat4{base, nudged, nudged, moved},
			want:     []bool{false, true, false, true},
		},
		{
			name:     "epsilon ignores noise",
			options:  []ChangeDetectorOption{WithComparison(CompareEpsilon(1e-3))},
			sequence: []mgl32.Mat4{base, nudged, moved, moved},
			want:     []bool{false, false, true, false},
		},
		{
			name:     "nil comparison keeps exact",
			options:  []ChangeDetectorOption{WithComparison(nil)},
			sequence: []mgl32.Mat4{nudged},
			want:     []bool{true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			d := NewChangeDetector(rec, tt.options...)
			d.Prime(base)
			fired := 0
			for i, m := range tt.sequence {
				got := d.Observe(m)
				if got != tt.want[i] {
					t.Errorf("Observe #%d = %v, want %v", i, got, tt.want[i])
				}
				if got {
					fired++
				}
			}
			if rec.count() != fired || d.Notifications() != uint64(fired) {
				t.Errorf("regenerator called %d times, Notifications = %d, want %d", rec.count(), d.Notifications(), fired)
			}
		})
	}
}

func TestChangeDetectorAccumulatedDrift(t *testing.T) {
	rec := &recorder{}
	d := NewChangeDetector(rec, WithComparison(CompareEpsilon(1e-2)))
	m := mgl32.Translate3D(0, 0, 100)
	d.Prime(m)

	fired := false
	for i := 0; i < 10; i++ {
		m[12] += 3e-3
		if d.Observe(m) {
			fired = true
			break
		}
	}
	if !fired {
		t.Errorf("slow drift past the tolerance never notified")
	}
}

func TestChangeDetectorUnprimed(t *testing.T) {
	rec := &recorder{}
	d := NewChangeDetector(rec)
	if !d.Observe(mgl32.Ident4()) {
		t.Errorf("first observation on an unprimed detector did not notify")
	}
	if d.Observe(mgl32.Ident4()) {
		t.Errorf("repeat observation notified")
	}
	if rec.calls[0] != (mgl32.Vec3{}) {
		t.Errorf("notified position = %v, want origin", rec.calls[0])
	}
}

func TestRegeneratorFunc(t *testing.T) {
	var got mgl32.Vec3
	var r Regenerator = RegeneratorFunc(func(p mgl32.Vec3, _ mgl32.Mat4) { got = p })
	r.RegeneratePlanet(mgl32.Vec3{1, 2, 3}, mgl32.Ident4())
	if got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("RegeneratorFunc received %v", got)
	}
}

func TestAsyncRegeneratorDropsWhileBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	finished := make(chan struct{}, 4)
	inner := RegeneratorFunc(func(mgl32.Vec3, mgl32.Mat4) {
		started <- struct{}{}
		<-release
		finished <- struct{}{}
	})

	a := NewAsyncRegenerator(inner, WithWorkers(2), WithIdleTimeout(50*time.Millisecond))
	a.RegeneratePlanet(mgl32.Vec3{1, 0, 0}, mgl32.Ident4())

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatalf("rebuild never started")
	}
	if !a.Busy() {
		t.Errorf("Busy = false while a rebuild runs")
	}

	a.RegeneratePlanet(mgl32.Vec3{2, 0, 0}, mgl32.Ident4())
	a.RegeneratePlanet(mgl32.Vec3{3, 0, 0}, mgl32.Ident4())
	if a.Dropped() != 2 {
		t.Errorf("Dropped = %d, want 2", a.Dropped())
	}

	close(release)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("rebuild never finished")
	}

	deadline := time.Now().Add(2 * time.Second)
	for a.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if a.Busy() {
		t.Fatalf("Busy still true after the rebuild finished")
	}
	if a.Completed() != 1 {
		t.Errorf("Completed = %d, want 1", a.Completed())
	}

	// The next change after completion starts a fresh rebuild.
	a.RegeneratePlanet(mgl32.Vec3{4, 0, 0}, mgl32.Ident4())
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatalf("second rebuild never started")
	}
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("second rebuild never finished")
	}
}

func TestAsyncRegeneratorRecoversPanic(t *testing.T) {
	calls := make(chan struct{}, 2)
	inner := RegeneratorFunc(func(mgl32.Vec3, mgl32.Mat4) {
		calls <- struct{}{}
		panic("mesh build failed")
	})
	a := NewAsyncRegenerator(inner)
	a.RegeneratePlanet(mgl32.Vec3{}, mgl32.Ident4())

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("rebuild never ran")
	}
	deadline := time.Now().Add(2 * time.Second)
	for a.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if a.Busy() {
		t.Errorf("a panicking rebuild left the regenerator busy")
	}
	if a.Completed() != 0 {
		t.Errorf("Completed = %d, want 0 for a panicked rebuild", a.Completed())
	}
}
