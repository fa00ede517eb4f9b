package common

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testEps = 1e-5

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      mgl32.Vec3
		want    mgl32.Vec3
		wantErr error
	}{
		{"unit x", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}, nil},
		{"scaled", mgl32.Vec3{0, 3, 4}, mgl32.Vec3{0, 0.6, 0.8}, nil},
		{"zero", mgl32.Vec3{}, mgl32.Vec3{}, ErrDegenerateVector},
		{"tiny", mgl32.Vec3{1e-9, 0, 0}, mgl32.Vec3{}, ErrDegenerateVector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize(%v) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if err == nil && !vecNear(got, tt.want, testEps) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeOrFallback(t *testing.T) {
	fb := mgl32.Vec3{0, 0, 1}
	if got := NormalizeOr(mgl32.Vec3{}, fb); got != fb {
		t.Errorf("NormalizeOr(zero) = %v, want fallback %v", got, fb)
	}
	if got := NormalizeOr(mgl32.Vec3{2, 0, 0}, fb); !vecNear(got, mgl32.Vec3{1, 0, 0}, testEps) {
		t.Errorf("NormalizeOr(2,0,0) = %v, want (1,0,0)", got)
	}
}

func TestAngleBetweenNormalized(t *testing.T) {
	v := mgl32.Vec3{0.6, 0.8, 0}
	tests := []struct {
		name string
		a, b mgl32.Vec3
		want float32
	}{
		{"same", v, v, 0},
		{"opposite", v, v.Mul(-1), math.Pi},
		{"orthogonal", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, math.Pi / 2},
		// Rounding pushes the dot product slightly past 1; acos must not return NaN.
		{"overshoot", mgl32.Vec3{1.0000001, 0, 0}, mgl32.Vec3{1, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleBetweenNormalized(tt.a, tt.b)
			if got != got {
				t.Fatalf("AngleBetweenNormalized returned NaN")
			}
			if d := got - tt.want; d > 1e-3 || d < -1e-3 {
				t.Errorf("AngleBetweenNormalized(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		point mgl32.Vec3
		axis  mgl32.Vec3
		angle float32
		want  mgl32.Vec3
	}{
		{"x about z quarter", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, math.Pi / 2, mgl32.Vec3{0, 1, 0}},
		{"x about z half", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, math.Pi, mgl32.Vec3{-1, 0, 0}},
		{"unnormalized axis", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 5}, math.Pi / 2, mgl32.Vec3{0, 1, 0}},
		{"keeps parallel part", mgl32.Vec3{1, 0, 2}, mgl32.Vec3{0, 0, 1}, math.Pi / 2, mgl32.Vec3{0, 1, 2}},
		{"zero angle", mgl32.Vec3{3, 4, 5}, mgl32.Vec3{1, 1, 0}, 0, mgl32.Vec3{3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rotate(tt.point, tt.axis, tt.angle)
			if err != nil {
				t.Fatalf("Rotate returned error: %v", err)
			}
			if !vecNear(got, tt.want, 1e-4) {
				t.Errorf("Rotate(%v, %v, %v) = %v, want %v", tt.point, tt.axis, tt.angle, got, tt.want)
			}
		})
	}
}

func TestRotateRoundTrip(t *testing.T) {
	p := mgl32.Vec3{0.3, -1.2, 2.5}
	axis := mgl32.Vec3{1, 2, -0.5}
	for _, angle := range []float32{0.01, 0.5, 1, 2.5, -1.7} {
		r, err := Rotate(p, axis, angle)
		if err != nil {
			t.Fatalf("Rotate: %v", err)
		}
		if d := r.Len() - p.Len(); d > 1e-4 || d < -1e-4 {
			t.Errorf("angle %v: length changed from %v to %v", angle, p.Len(), r.Len())
		}
		back, err := Rotate(r, axis, -angle)
		if err != nil {
			t.Fatalf("Rotate back: %v", err)
		}
		if !vecNear(back, p, 1e-4) {
			t.Errorf("angle %v: round trip = %v, want %v", angle, back, p)
		}
	}
}

func TestRotateDegenerate(t *testing.T) {
	if _, err := Rotate(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, 1); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("zero axis: error = %v, want ErrDegenerateVector", err)
	}
	if _, err := Rotate(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 1}, 1); !errors.Is(err, ErrParallelAxis) {
		t.Errorf("parallel point: error = %v, want ErrParallelAxis", err)
	}
	got, err := RotateOrKeep(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 1}, 1)
	if err != nil || got != (mgl32.Vec3{0, 0, 2}) {
		t.Errorf("RotateOrKeep(parallel) = %v, %v; want point unchanged, nil", got, err)
	}
	if _, err := RotateOrKeep(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, 1); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("RotateOrKeep zero axis: error = %v, want ErrDegenerateVector", err)
	}
}

func TestMatrixHelpers(t *testing.T) {
	if ScaleUniform(1) != mgl32.Ident4() {
		t.Errorf("ScaleUniform(1) is not the identity")
	}

	tr := Translate(mgl32.Vec3{1, 2, 3})
	if TranslationOf(tr) != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("TranslationOf(Translate(1,2,3)) = %v", TranslationOf(tr))
	}
	if got := Mul4(tr, Scale(mgl32.Vec3{2, 2, 2})).Mul4x1(mgl32.Vec4{1, 1, 1, 1}); got != (mgl32.Vec4{3, 4, 5, 1}) {
		t.Errorf("translate*scale applied to (1,1,1) = %v, want (3,4,5,1)", got)
	}

	right, up, forward := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}
	rot := RotationFromBasis(right, up, forward)
	r, u, f := BasisOf(rot)
	if r != right || u != up || f != forward {
		t.Errorf("BasisOf(RotationFromBasis) = %v %v %v", r, u, f)
	}
	if rot[15] != 1 || rot[12] != 0 || rot[13] != 0 || rot[14] != 0 {
		t.Errorf("rotation has non-identity last column: %v", rot.Col(3))
	}

	m := Mul4(tr, rot)
	if !ApproxEqual(Mul4(ViewMatrix(m), m), mgl32.Ident4(), 1e-5) {
		t.Errorf("ViewMatrix(m) * m is not the identity")
	}
}

func TestEqualVersusApproxEqual(t *testing.T) {
	a := Translate(mgl32.Vec3{1, 2, 3})
	b := a
	b[12] += 1e-6

	if !Equal(a, a) {
		t.Errorf("Equal(a, a) = false")
	}
	if Equal(a, b) {
		t.Errorf("Equal reported a 1e-6 change as equal")
	}
	if !ApproxEqual(a, b, 1e-4) {
		t.Errorf("ApproxEqual(eps=1e-4) reported a 1e-6 change as different")
	}
	if ApproxEqual(a, b, 1e-8) {
		t.Errorf("ApproxEqual(eps=1e-8) reported a 1e-6 change as equal")
	}
}

func TestOrthonormalize(t *testing.T) {
	up := mgl32.Vec3{0, 0, 1}
	right := mgl32.Vec3{1, 0.05, 0.1}
	forward := mgl32.Vec3{0.02, 1, 0.3}

	r, f, err := Orthonormalize(up, right, forward)
	if err != nil {
		t.Fatalf("Orthonormalize: %v", err)
	}
	checks := map[string]float32{
		"|r|-1": r.Len() - 1,
		"|f|-1": f.Len() - 1,
		"r·up":  r.Dot(up),
		"r·f":   r.Dot(f),
	}
	for name, v := range checks {
		if v > 1e-5 || v < -1e-5 {
			t.Errorf("%s = %v, want 0", name, v)
		}
	}

	if _, _, err := Orthonormalize(up, up, forward); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("right parallel to up: error = %v, want ErrDegenerateVector", err)
	}
}

func TestIsFiniteAndClamp(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	if !IsFinite(mgl32.Vec3{1, 2, 3}) {
		t.Errorf("IsFinite(1,2,3) = false")
	}
	if IsFinite(mgl32.Vec3{nan, 0, 0}) || IsFinite(mgl32.Vec3{0, inf, 0}) {
		t.Errorf("IsFinite accepted NaN or Inf")
	}
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Errorf("Clamp returned an out-of-range value")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce strings = %q, want b", got)
	}
	if got := Coalesce[float32](0, 0); got != 0 {
		t.Errorf("Coalesce all zero = %v, want 0", got)
	}
}
