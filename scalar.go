package hexapod

import (
	"cmp"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"zappem.net/pub/math/geom"
)

// DegreesToRadians converts a boundary value in degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return geom.Degrees(degrees).Rad()
}

// RadiansToDegrees converts an internal radian value to degrees.
func RadiansToDegrees(radians float64) float64 {
	return geom.Radians(radians).Deg()
}

// Mod is the modulo operation following Euclidean division, so the
// result carries the sign of b.
func Mod(a, b int) int {
	return (a%b + b) % b
}

// Sign returns 1 for positive values and -1 otherwise (zero included).
func Sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	return -1
}

// RoundToInt rounds x to the nearest integer, halves away from zero.
func RoundToInt(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return -int(0.5 - x)
}

// RoundToEvenInt truncates x and bumps odd results up by one.
func RoundToEvenInt(x float64) int {
	n := int(x)
	if n%2 == 0 {
		return n
	}
	return n + 1
}

// Clamped limits v to [lo, hi]. A reversed range is a programming
// error.
func Clamped[T cmp.Ordered](v, lo, hi T) T {
	if lo > hi {
		panic(fmt.Sprintf("hexapod.Clamped: min %v above max %v", lo, hi))
	}
	return max(lo, min(v, hi))
}

// ClampedMagnitude scales v down, preserving its direction, so that
// its norm does not exceed magnitude.
func ClampedMagnitude(v r3.Vec, magnitude float64) r3.Vec {
	if n := r3.Norm(v); n > magnitude {
		return r3.Scale(magnitude/n, v)
	}
	return v
}

// ClampedVector clamps each component of v to within the magnitude
// of the matching component of limit.
func ClampedVector(v, limit r3.Vec) r3.Vec {
	return r3.Vec{
		X: Clamped(v.X, -math.Abs(limit.X), math.Abs(limit.X)),
		Y: Clamped(v.Y, -math.Abs(limit.Y), math.Abs(limit.Y)),
		Z: Clamped(v.Z, -math.Abs(limit.Z), math.Abs(limit.Z)),
	}
}

// SetPrecision rounds x to the given number of decimal places,
// e.g. 1.00051 at precision 3 is 1.001.
func SetPrecision(x float64, precision int) float64 {
	return scalar.Round(x, precision)
}

// SetPrecisionVec applies SetPrecision to each component of v.
func SetPrecisionVec(v r3.Vec, precision int) r3.Vec {
	return r3.Vec{
		X: scalar.Round(v.X, precision),
		Y: scalar.Round(v.Y, precision),
		Z: scalar.Round(v.Z, precision),
	}
}

// SmoothStep maps a linear control input in [0,1] through the quintic
// smoothstep polynomial, which has zero first and second derivatives
// at both ends.
func SmoothStep(t float64) float64 {
	return 6*math.Pow(t, 5) - 15*math.Pow(t, 4) + 10*math.Pow(t, 3)
}

// SmoothStepRate is the derivative of SmoothStep with respect to t.
func SmoothStepRate(t float64) float64 {
	s := t * (1 - t)
	return 30 * s * s
}

// Projection returns the projection of a onto b. It is the zero
// vector if either input has zero length.
func Projection(a, b r3.Vec) r3.Vec {
	if r3.Norm(a) == 0 || r3.Norm(b) == 0 {
		return r3.Vec{}
	}
	return r3.Scale(r3.Dot(a, b)/r3.Dot(b, b), b)
}

// Rejection returns the component of a orthogonal to b.
func Rejection(a, b r3.Vec) r3.Vec {
	return r3.Sub(a, Projection(a, b))
}

// Interpolate linearly interpolates between origin (t=0) and target
// (t=1).
func Interpolate(origin, target, t float64) float64 {
	return (1-t)*origin + t*target
}

// InterpolateVec is the vector form of Interpolate.
func InterpolateVec(origin, target r3.Vec, t float64) r3.Vec {
	return r3.Add(r3.Scale(1-t, origin), r3.Scale(t, target))
}

// CorrectRotation returns test or its negation, whichever lies on the
// shorter path from reference. Both represent the same rotation.
func CorrectRotation(test, reference quat.Number) quat.Number {
	if qdot(test, reference) < 0 {
		return quat.Scale(-1, test)
	}
	return test
}

func qdot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}
