// Package hexapod holds the geometry used by a legged robot motion
// controller: rigid poses built from a position and a unit quaternion,
// Bezier foot trajectories, and Denavit-Hartenberg (DH) transforms for
// the joint chain of each leg.
//
// Everything here is pure computation over value types. Positions are
// gonum r3.Vec values and rotations are gonum quat.Number values with
// unit norm. Angles are in radians.
package hexapod

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnassignedValue is the magnitude used on the wire to mark a pose,
// or any other value, that has not been assigned yet.
const UnassignedValue = float64(math.MaxInt32)

// Tolerance is the absolute and relative tolerance of Pose.Equal.
const Tolerance = 1e-9

// Err* are the errors exported by this package.
var (
	ErrControlInput   = errors.New("control input outside [0,1]")
	ErrDegenerate     = errors.New("no control point passes through at this input")
	ErrControlPoint   = errors.New("unsupported pass-through control point")
	ErrControlPolygon = errors.New("control polygon must have 3, 4 or 5 points")
)

// Pose is a position and an orientation. The rotation is expected to
// have unit norm.
type Pose struct {
	Position r3.Vec
	Rotation quat.Number
}

// Identity returns the pose with zero position and no rotation.
func Identity() Pose {
	return Pose{Rotation: quat.Number{Real: 1}}
}

// Undefined returns the sentinel pose exchanged with message code to
// signal an unassigned pose. Library code should carry an OptionalPose
// instead.
func Undefined() Pose {
	return Pose{
		Position: r3.Vec{X: UnassignedValue, Y: UnassignedValue, Z: UnassignedValue},
	}
}

// NewPose returns a pose at position with the given rotation.
func NewPose(position r3.Vec, rotation quat.Number) Pose {
	return Pose{Position: position, Rotation: rotation}
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{x=%+.4f y=%+.4f z=%+.4f, w=%+.4f i=%+.4f j=%+.4f k=%+.4f}",
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Rotation.Real, p.Rotation.Imag, p.Rotation.Jmag, p.Rotation.Kmag)
}

// IsValid reports whether every component of p is a number with a
// magnitude below UnassignedValue.
func (p Pose) IsValid() bool {
	for _, x := range []float64{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Rotation.Real, p.Rotation.Imag, p.Rotation.Jmag, p.Rotation.Kmag,
	} {
		if !(math.Abs(x) < UnassignedValue) {
			return false
		}
	}
	return true
}

// Equal compares two poses component by component within Tolerance.
// A quaternion and its negation are not considered equal.
func (p Pose) Equal(q Pose) bool {
	return vecEqual(p.Position, q.Position) && quatEqual(p.Rotation, q.Rotation)
}

func near(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, Tolerance, Tolerance)
}

func vecEqual(a, b r3.Vec) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func quatEqual(a, b quat.Number) bool {
	return near(a.Real, b.Real) && near(a.Imag, b.Imag) && near(a.Jmag, b.Jmag) && near(a.Kmag, b.Kmag)
}

// rotate applies the rotation q to v.
func rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// Compose returns the pose b, expressed in the frame of a, in the
// parent frame of a. Composition does not commute.
func Compose(a, b Pose) Pose {
	return Pose{
		Position: r3.Add(a.Position, rotate(a.Rotation, b.Position)),
		Rotation: quat.Mul(a.Rotation, b.Rotation),
	}
}

// Compose is the method form of Compose(p, q).
func (p Pose) Compose(q Pose) Pose {
	return Compose(p, q)
}

// Inverse returns the pose that undoes p, so that p composed with its
// inverse, in either order, is the identity.
func (p Pose) Inverse() Pose {
	c := quat.Conj(p.Rotation)
	return Pose{
		Position: rotate(c, r3.Scale(-1, p.Position)),
		Rotation: c,
	}
}

// TransformVector maps v from the frame of p into p's parent frame.
func (p Pose) TransformVector(v r3.Vec) r3.Vec {
	return r3.Add(p.Position, rotate(p.Rotation, v))
}

// InverseTransformVector maps v from p's parent frame into the frame
// of p.
func (p Pose) InverseTransformVector(v r3.Vec) r3.Vec {
	return p.Inverse().TransformVector(v)
}

// AddPose expresses q, given in the frame of p, in the parent frame
// of p.
func (p Pose) AddPose(q Pose) Pose {
	return Pose{
		Position: p.TransformVector(q.Position),
		Rotation: quat.Mul(p.Rotation, q.Rotation),
	}
}

// RemovePose removes q from p. The position is p applied to the
// negated position of q and the rotation is p's rotation followed by
// the inverse of q's. This is not the composition inverse of AddPose
// and callers depend on it as it is.
func (p Pose) RemovePose(q Pose) Pose {
	return Pose{
		Position: p.TransformVector(r3.Scale(-1, q.Position)),
		Rotation: quat.Mul(p.Rotation, quat.Inv(q.Rotation)),
	}
}

// Interpolate moves from p (t=0) to target (t=1). Position is linearly
// interpolated and rotation follows the spherical path.
func (p Pose) Interpolate(t float64, target Pose) (Pose, error) {
	if !(t >= 0 && t <= 1) {
		return Pose{}, fmt.Errorf("pose interpolation at %g: %w", t, ErrControlInput)
	}
	return Pose{
		Position: InterpolateVec(p.Position, target.Position, t),
		Rotation: Slerp(p.Rotation, target.Rotation, t),
	}, nil
}

// Slerp interpolates from a (t=0) to b (t=1) along the shorter great
// arc. Nearly parallel quaternions fall back to a linear blend.
func Slerp(a, b quat.Number, t float64) quat.Number {
	const one = 1 - 0x1p-52
	d := qdot(a, b)
	absD := math.Abs(d)

	var scale0, scale1 float64
	if absD >= one {
		scale0 = 1 - t
		scale1 = t
	} else {
		theta := math.Acos(absD)
		sinTheta := math.Sin(theta)
		scale0 = math.Sin((1-t)*theta) / sinTheta
		scale1 = math.Sin(t*theta) / sinTheta
	}
	if d < 0 {
		scale1 = -scale1
	}
	return quat.Add(quat.Scale(scale0, a), quat.Scale(scale1, b))
}

// Normalize scales q to unit norm. The zero quaternion is returned
// unchanged.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return q
	}
	return quat.Scale(1/n, q)
}

// OptionalPose is a pose that may not have been assigned yet.
type OptionalPose struct {
	pose Pose
	ok   bool
}

// Some wraps an assigned pose.
func Some(p Pose) OptionalPose {
	return OptionalPose{pose: p, ok: true}
}

// None returns the unassigned OptionalPose.
func None() OptionalPose {
	return OptionalPose{}
}

// Get returns the pose and whether it has been assigned.
func (o OptionalPose) Get() (Pose, bool) {
	return o.pose, o.ok
}

// IsValid reports whether o holds a pose.
func (o OptionalPose) IsValid() bool {
	return o.ok
}

// OrElse returns the assigned pose, or fallback if there is none.
func (o OptionalPose) OrElse(fallback Pose) Pose {
	if o.ok {
		return o.pose
	}
	return fallback
}

func (o OptionalPose) String() string {
	if !o.ok {
		return "Pose{undefined}"
	}
	return o.pose.String()
}
