package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// SpeedCurve maps the camera's altitude to a speed, in altitude units per second.
// Zoom and keyboard movement each take their own curve.
type SpeedCurve interface {
	// Speed returns the speed at the given altitude.
	//
	// Parameters:
	//   - altitude: current altitude
	//
	// Returns:
	//   - float32: speed in units per second
	Speed(altitude float32) float32
}

// ErrNonFiniteSpeed is returned when a curve yields NaN or an infinity.
var ErrNonFiniteSpeed = errors.New("speed curve returned a non-finite speed")

// SpeedCurveFunc adapts a plain function to SpeedCurve.
type SpeedCurveFunc func(altitude float32) float32

func (f SpeedCurveFunc) Speed(altitude float32) float32 {
	return f(altitude)
}

// curveSpeed evaluates c at altitude, flooring negative speeds at zero.
func curveSpeed(c SpeedCurve, altitude float32) (float32, error) {
	s := c.Speed(altitude)
	if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
		return 0, fmt.Errorf("%w: %v at altitude %v", ErrNonFiniteSpeed, s, altitude)
	}
	if s < 0 {
		return 0, nil
	}
	return s, nil
}

// ConstantCurve ignores altitude.
type ConstantCurve struct {
	Value float32
}

func (c ConstantCurve) Speed(float32) float32 {
	return c.Value
}

// LinearCurve is speed = K*altitude + M.
type LinearCurve struct {
	K float32
	M float32
}

func (c LinearCurve) Speed(altitude float32) float32 {
	return c.K*altitude + c.M
}

// LogCurve is speed = clamp(Base * (1 + Scale*ln(1 + altitude/Ref)), Lo, Hi).
// It grows quickly near the surface and flattens out far away.
type LogCurve struct {
	Base  float32
	Scale float32
	Ref   float32
	Lo    float32
	Hi    float32
}

func (c LogCurve) Speed(altitude float32) float32 {
	ref := c.Ref
	if ref <= 0 {
		ref = 1
	}
	x := 1 + altitude/ref
	if x < 1 {
		x = 1
	}
	s := c.Base * (1 + c.Scale*float32(math.Log(float64(x))))
	return common.Clamp(s, c.Lo, c.Hi)
}

// DefaultZoomCurve is the logarithmic curve used when no zoom curve is configured.
func DefaultZoomCurve() SpeedCurve {
	return LogCurve{Base: 10, Scale: 5.5, Ref: 1000, Lo: 1, Hi: 15000}
}

// DefaultMoveCurve is the constant curve used when no move curve is configured.
func DefaultMoveCurve() SpeedCurve {
	return ConstantCurve{Value: 100}
}
