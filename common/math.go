package common

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the smallest vector length treated as non-degenerate by Normalize and Rotate.
const Epsilon float32 = 1e-6

var (
	// ErrDegenerateVector is returned when an operation needs a direction from a vector
	// whose length is (numerically) zero.
	ErrDegenerateVector = errors.New("degenerate vector: length is zero")

	// ErrParallelAxis is returned by Rotate when the point lies on the rotation axis,
	// leaving no perpendicular component to rotate.
	ErrParallelAxis = errors.New("degenerate rotation: point is parallel to axis")
)

// Length returns the Euclidean length of v.
func Length(v mgl32.Vec3) float32 {
	return v.Len()
}

// Normalize returns v scaled to unit length.
// Unlike mgl32.Vec3.Normalize, a zero-length input is reported instead of producing NaN.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector in the direction of v
//   - error: ErrDegenerateVector if |v| < Epsilon
func Normalize(v mgl32.Vec3) (mgl32.Vec3, error) {
	l := v.Len()
	if l < Epsilon || isNaN(l) {
		return mgl32.Vec3{}, ErrDegenerateVector
	}
	return v.Mul(1.0 / l), nil
}

// NormalizeOr returns the normalized v, or fallback when v is degenerate.
func NormalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	n, err := Normalize(v)
	if err != nil {
		return fallback
	}
	return n
}

// Dot returns the dot product of a and b.
func Dot(a, b mgl32.Vec3) float32 {
	return a.Dot(b)
}

// Cross returns the cross product a × b.
func Cross(a, b mgl32.Vec3) mgl32.Vec3 {
	return a.Cross(b)
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AngleBetweenNormalized returns the angle in radians between two unit vectors.
// The dot product is clamped to [-1, 1] before acos so that rounding error on
// (anti)parallel inputs cannot produce NaN. The result is always in [0, π].
//
// Parameters:
//   - a, b: unit-length vectors
//
// Returns:
//   - float32: the angle between a and b in radians
func AngleBetweenNormalized(a, b mgl32.Vec3) float32 {
	d := Clamp(a.Dot(b), -1, 1)
	return float32(math.Acos(float64(d)))
}

// Rotate rotates point about axis by angle radians.
// The point is split into a component parallel to the axis (v1) and a perpendicular
// remainder (v2). The remainder is rotated in the plane spanned by v2 and w = axis × v2,
// and the parallel part is added back unchanged.
//
// Parameters:
//   - point: the vector to rotate
//   - axis: the rotation axis (need not be unit length, must be non-zero)
//   - angle: rotation angle in radians (right-hand rule)
//
// Returns:
//   - mgl32.Vec3: the rotated vector
//   - error: ErrDegenerateVector for a zero axis, ErrParallelAxis when point lies on the axis
func Rotate(point, axis mgl32.Vec3, angle float32) (mgl32.Vec3, error) {
	axisLenSq := axis.Dot(axis)
	if axisLenSq < Epsilon*Epsilon {
		return point, ErrDegenerateVector
	}

	v1 := axis.Mul(point.Dot(axis) / axisLenSq)
	v2 := point.Sub(v1)
	v2Len := v2.Len()
	if v2Len < Epsilon {
		return point, ErrParallelAxis
	}

	w := axis.Cross(v2)
	wLen := w.Len()

	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	v3 := v2.Mul(c / v2Len).Add(w.Mul(s / wLen)).Mul(v2Len)
	return v1.Add(v3), nil
}

// RotateOrKeep rotates point about axis, returning point unchanged when it lies on the axis.
// A vector parallel to the rotation axis is a fixed point of the rotation, so this is
// exact rather than an approximation. A zero axis still reports an error.
func RotateOrKeep(point, axis mgl32.Vec3, angle float32) (mgl32.Vec3, error) {
	r, err := Rotate(point, axis, angle)
	if errors.Is(err, ErrParallelAxis) {
		return point, nil
	}
	return r, err
}

// Translate builds a translation matrix.
func Translate(t mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(t.X(), t.Y(), t.Z())
}

// Scale builds a non-uniform scale matrix.
func Scale(s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(s.X(), s.Y(), s.Z())
}

// ScaleUniform builds a matrix with s on the first three diagonal entries and 1 in the last.
// ScaleUniform(1) is the identity.
func ScaleUniform(s float32) mgl32.Mat4 {
	return mgl32.Scale3D(s, s, s)
}

// Mul4 returns a * b. All matrices are column-major.
func Mul4(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

// Equal reports whether two matrices are bit-for-bit equal in every entry.
// Any change, however small, is reported as inequality.
func Equal(a, b mgl32.Mat4) bool {
	return a == b
}

// ApproxEqual reports whether every entry of a and b differs by at most eps.
func ApproxEqual(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > eps || isNaN(d) {
			return false
		}
	}
	return true
}

// RotationFromBasis builds a rotation matrix whose columns are right, up and forward.
// The column order matches the transform convention used by camera entities:
// column 0 = right, column 1 = up, column 2 = forward, column 3 = (0, 0, 0, 1).
//
// Parameters:
//   - right: basis vector for column 0
//   - up: basis vector for column 1
//   - forward: basis vector for column 2
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func RotationFromBasis(right, up, forward mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4FromCols(
		right.Vec4(0),
		up.Vec4(0),
		forward.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// TranslationOf extracts the translation column of a transform.
func TranslationOf(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// BasisOf extracts the first three columns of a transform as right, up and forward.
func BasisOf(m mgl32.Mat4) (right, up, forward mgl32.Vec3) {
	return m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
}

// ViewMatrix returns the world-to-view matrix for a camera transform, i.e. its inverse.
// An affine rigid transform always has an inverse; a singular input returns the zero matrix.
func ViewMatrix(transform mgl32.Mat4) mgl32.Mat4 {
	return transform.Inv()
}

// Orthonormalize re-derives an orthonormal (right, forward) pair from a drifting frame.
// Right is projected onto the plane perpendicular to up, and forward onto the plane
// perpendicular to the corrected right (Gram-Schmidt).
//
// Parameters:
//   - up: unit radial direction (held fixed)
//   - right: drifting right vector
//   - forward: drifting forward vector
//
// Returns:
//   - mgl32.Vec3: corrected right
//   - mgl32.Vec3: corrected forward
//   - error: ErrDegenerateVector if either projection collapses
func Orthonormalize(up, right, forward mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, error) {
	r, err := Normalize(right.Sub(up.Mul(right.Dot(up))))
	if err != nil {
		return right, forward, err
	}
	f, err := Normalize(forward.Sub(r.Mul(forward.Dot(r))))
	if err != nil {
		return right, forward, err
	}
	return r, f, nil
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		if isNaN(c) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func isNaN(f float32) bool {
	return f != f
}
