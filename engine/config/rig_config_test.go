package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/entity"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/planet"
	"github.com/Carmen-Shannon/oxy-orbit/engine/script"
	"github.com/go-gl/mathgl/mgl32"
)

const marsConfig = `
camera:
  entity: Camera
  orbitCenter: Mars
  followers: [Sun]
altitude:
  min: 100
  max: 2000
  altimeterThreshold: 1000
drag:
  sensitivity: 0.005
zoom:
  curve: {type: constant, value: 50}
  wheelDeadzone: 0.01
move:
  mode: great-circle
  curve: {type: log, base: 10, scale: 5.5, ref: 1000, lo: 1, hi: 15000}
regeneration:
  comparison: epsilon
  epsilon: 0.0001
`

func TestLoadRigConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	if err := os.WriteFile(path, []byte(marsConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadRigConfig(path)
	if err != nil {
		t.Fatalf("LoadRigConfig: %v", err)
	}
	if cfg.Camera.OrbitCenter != "Mars" || len(cfg.Camera.Followers) != 1 {
		t.Errorf("camera section = %+v", cfg.Camera)
	}
	if cfg.Altitude.Min != 100 || cfg.Altitude.Max != 2000 {
		t.Errorf("altitude section = %+v", cfg.Altitude)
	}
	if cfg.MoveMode() != camera.MoveGreatCircle {
		t.Errorf("MoveMode = %v, want great-circle", cfg.MoveMode())
	}
	if _, ok := cfg.Zoom.Curve.SpeedCurve().(camera.ConstantCurve); !ok {
		t.Errorf("zoom curve = %T, want ConstantCurve", cfg.Zoom.Curve.SpeedCurve())
	}
	if _, ok := cfg.Move.Curve.SpeedCurve().(camera.LogCurve); !ok {
		t.Errorf("move curve = %T, want LogCurve", cfg.Move.Curve.SpeedCurve())
	}

	a, b := mgl32.Ident4(), mgl32.Ident4()
	b[12] = 5e-5
	if !cfg.Comparison()(a, b) {
		t.Errorf("epsilon comparison treated a 5e-5 change as different")
	}
}

func TestLoadRigConfigMissingFile(t *testing.T) {
	if _, err := LoadRigConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadRigConfig(missing) returned nil error")
	}
}

func TestParseRigConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty document", ``, ""},
		{"negative min", "altitude: {min: -1}", "altitude.min"},
		{"negative sensitivity", "drag: {sensitivity: -0.1}", "drag.sensitivity"},
		{"unknown curve", "zoom: {curve: {type: cubic}}", "unknown curve type"},
		{"log without ref", "move: {curve: {type: log, base: 1}}", "log ref"},
		{"log hi below lo", "zoom: {curve: {type: log, ref: 1, lo: 5, hi: 1}}", "hi"},
		{"unknown move mode", "move: {mode: teleport}", "move.mode"},
		{"epsilon without value", "regeneration: {comparison: epsilon}", "regeneration.epsilon"},
		{"unknown comparison", "regeneration: {comparison: fuzzy}", "regeneration.comparison"},
		{"negative workers", "regeneration: {workers: -2}", "regeneration.workers"},
		{"malformed yaml", "altitude: [", "parse"},
		{"max below min is allowed", "altitude: {min: 500, max: 100}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRigConfig([]byte(tt.doc))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ParseRigConfig error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseRigConfig error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRigOptions(t *testing.T) {
	cfg, err := ParseRigConfig([]byte(marsConfig))
	if err != nil {
		t.Fatalf("ParseRigConfig: %v", err)
	}
	opts := append(cfg.RigOptions(), camera.WithPosition(mgl32.Vec3{0, 0, 5000}))
	rig, err := camera.NewCameraRig(opts...)
	if err != nil {
		t.Fatalf("NewCameraRig: %v", err)
	}
	if rig.MinAltitude() != 100 || rig.MaxAltitude() != 2000 {
		t.Errorf("bounds = [%v, %v], want [100, 2000]", rig.MinAltitude(), rig.MaxAltitude())
	}
	if rig.Altitude() != 2000 {
		t.Errorf("Altitude = %v, want clamped to 2000", rig.Altitude())
	}
	if rig.Sensitivity() != 0.005 {
		t.Errorf("Sensitivity = %v, want 0.005", rig.Sensitivity())
	}
}

func TestRigOptionsAltitudeBounds(t *testing.T) {
	tests := []struct {
		name             string
		doc              string
		wantMin, wantMax float32
		wantAltitude     float32
	}{
		{"both set", "altitude: {min: 100, max: 2000}", 100, 2000, 1000},
		{"min only", "altitude: {min: 100}", 100, math.MaxFloat32, 1000},
		{"max only", "altitude: {max: 500}", camera.DefaultMinAltitude, 500, 500},
		{"neither", "", camera.DefaultMinAltitude, math.MaxFloat32, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseRigConfig([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseRigConfig: %v", err)
			}
			rig, err := camera.NewCameraRig(cfg.RigOptions()...)
			if err != nil {
				t.Fatalf("NewCameraRig: %v", err)
			}
			if rig.MinAltitude() != tt.wantMin || rig.MaxAltitude() != tt.wantMax {
				t.Errorf("bounds = [%v, %v], want [%v, %v]", rig.MinAltitude(), rig.MaxAltitude(), tt.wantMin, tt.wantMax)
			}
			if rig.Altitude() != tt.wantAltitude {
				t.Errorf("Altitude = %v, want %v", rig.Altitude(), tt.wantAltitude)
			}

			// The camera can still zoom out when max is omitted.
			res, err := rig.Step(input.Sample{WheelDelta: -1}, 1)
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			if tt.wantMax > tt.wantAltitude && res.AltitudeDelta >= 0 {
				t.Errorf("zoom out AltitudeDelta = %v, want < 0", res.AltitudeDelta)
			}
		})
	}
}

func TestRigOptionsDefaults(t *testing.T) {
	cfg, err := ParseRigConfig(nil)
	if err != nil {
		t.Fatalf("ParseRigConfig: %v", err)
	}
	rig, err := camera.NewCameraRig(cfg.RigOptions()...)
	if err != nil {
		t.Fatalf("NewCameraRig: %v", err)
	}
	if rig.Sensitivity() != camera.DefaultSensitivity {
		t.Errorf("Sensitivity = %v, want default %v", rig.Sensitivity(), camera.DefaultSensitivity)
	}
	if rig.Altitude() != 1000 {
		t.Errorf("Altitude = %v, want default 1000", rig.Altitude())
	}
}

func TestControllerOptions(t *testing.T) {
	cfg, err := ParseRigConfig([]byte(marsConfig))
	if err != nil {
		t.Fatalf("ParseRigConfig: %v", err)
	}

	w := entity.NewWorld()
	w.AddTransform(w.CreateEntity("Mars"), mgl32.Translate3D(10, 0, 0))
	sun := w.AddTransform(w.CreateEntity("Sun"), mgl32.Ident4())
	cam := w.AddTransform(w.CreateEntity("Camera"), mgl32.Translate3D(10, 0, 1000))

	var notified int
	regen := planet.RegeneratorFunc(func(mgl32.Vec3, mgl32.Mat4) { notified++ })

	cc := camera.NewCameraController(w, cfg.ControllerOptions(regen)...)
	if err := cc.OnCreate(); err != nil {
		t.Fatalf("OnCreate: %v", err)
	}

	src := input.NewTracker()
	src.OnScroll(1)
	if err := cc.OnUpdate(script.Context{Timestep: 1, Input: src}); err != nil {
		t.Fatalf("OnUpdate: %v", err)
	}

	got := cam.Translation()
	if d := got.Sub(mgl32.Vec3{10, 0, 950}).Len(); d > 1e-2 {
		t.Errorf("camera translation = %v, want (10,0,950)", got)
	}
	if d := sun.Translation().Sub(mgl32.Vec3{0, 0, -50}).Len(); d > 1e-2 {
		t.Errorf("follower translation = %v, want (0,0,-50)", sun.Translation())
	}
	if notified != 1 {
		t.Errorf("regenerator notified %d times, want 1", notified)
	}
}

func TestControllerOptionsAsync(t *testing.T) {
	cfg, err := ParseRigConfig([]byte("regeneration: {async: true, workers: 1}"))
	if err != nil {
		t.Fatalf("ParseRigConfig: %v", err)
	}
	if !cfg.Regeneration.Async || cfg.Regeneration.Workers != 1 {
		t.Fatalf("regeneration section = %+v", cfg.Regeneration)
	}
	if n := len(cfg.ControllerOptions(nil)); n != len(cfg.ControllerOptions(planet.RegeneratorFunc(func(mgl32.Vec3, mgl32.Mat4) {})))-1 {
		t.Errorf("a nil regenerator should add no option; got %d options", n)
	}
}
