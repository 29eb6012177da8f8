package hexapod

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position on the wire.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is a rotation on the wire. W is the scalar part.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// PoseMsg is the message form of a pose.
type PoseMsg struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// TransformMsg is the message form of a transform between frames. It
// carries the same information as PoseMsg.
type TransformMsg struct {
	Translation Point      `json:"translation"`
	Rotation    Quaternion `json:"rotation"`
}

func (p Point) vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

func pointOf(v r3.Vec) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

func (q Quaternion) number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func quaternionOf(q quat.Number) Quaternion {
	return Quaternion{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// FromPoseMsg converts a message to a pose. A message carrying the
// unassigned sentinel converts to None.
func FromPoseMsg(m PoseMsg) OptionalPose {
	return optional(Pose{Position: m.Position.vec(), Rotation: m.Orientation.number()})
}

// FromTransformMsg converts a transform message to a pose. A message
// carrying the unassigned sentinel converts to None.
func FromTransformMsg(m TransformMsg) OptionalPose {
	return optional(Pose{Position: m.Translation.vec(), Rotation: m.Rotation.number()})
}

func optional(p Pose) OptionalPose {
	if !p.IsValid() {
		return None()
	}
	return Some(p)
}

// PoseMsg converts p to its message form.
func (p Pose) PoseMsg() PoseMsg {
	return PoseMsg{Position: pointOf(p.Position), Orientation: quaternionOf(p.Rotation)}
}

// TransformMsg converts p to a transform message.
func (p Pose) TransformMsg() TransformMsg {
	return TransformMsg{Translation: pointOf(p.Position), Rotation: quaternionOf(p.Rotation)}
}

// PoseMsg converts o to its message form; an unassigned pose becomes
// the Undefined sentinel.
func (o OptionalPose) PoseMsg() PoseMsg {
	return o.OrElse(Undefined()).PoseMsg()
}

// Transform offsets p by a transform message: the translation is added
// to the position directly and the rotation is applied after p's.
func (p Pose) Transform(m TransformMsg) Pose {
	return Pose{
		Position: r3.Add(p.Position, m.Translation.vec()),
		Rotation: quat.Mul(p.Rotation, m.Rotation.number()),
	}
}
