package hexapod

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"zappem.net/pub/math/geom"
)

// Link holds one actuated link of a leg: the range of the joint that
// moves it and the DH parameters from that joint to the next joint
// (or to the tip, for the last link). The joint angle adds to the
// DH theta.
type Link struct {
	Min, Max geom.Angle
	DH       DH
}

// Chain holds the kinematic chain of one leg and its current joint
// angles.
//
// Frames are numbered from the first joint, frame 0, which sits at a
// fixed transform (the base) from the robot body. Frame i+1 follows
// link i, so for n links frame n is the tip of the leg.
type Chain struct {
	base  DH
	links []Link
	j     []geom.Angle
	tip   Pose
}

// Err* are the errors exported for chains.
var (
	ErrBadJoint = errors.New("invalid joint")
	ErrLimit    = errors.New("parameter outside joint range")
	ErrSingular = errors.New("transform is not invertible")
)

// NewChain specifies a leg from its base transform and actuated
// links. Its default pose has all joint angles at zero.
func NewChain(base DH, links ...Link) (*Chain, error) {
	if len(links) == 0 {
		return nil, fmt.Errorf("a chain needs at least one link: %w", ErrBadJoint)
	}
	c := &Chain{
		base:  base,
		links: links,
		j:     make([]geom.Angle, len(links)),
	}
	if err := c.fwd(); err != nil {
		return nil, err
	}
	return c, nil
}

// Links returns the number of actuated links in the chain.
func (c *Chain) Links() int {
	return len(c.links)
}

// J returns the current angle of joint i.
func (c *Chain) J(i int) geom.Angle {
	if i < 0 || i >= len(c.j) {
		return 0
	}
	return c.j[i]
}

// Tip returns the pose of the tip of the leg in the robot frame for
// the current joint angles.
func (c *Chain) Tip() Pose {
	return c.tip
}

// SetJ sets joint i to angle a. An error is returned if the joint
// cannot adopt that angle because of a range limit. A joint with
// Min == Max is unconstrained.
func (c *Chain) SetJ(i int, a geom.Angle) error {
	if i < 0 || i >= len(c.links) {
		return fmt.Errorf("joint %d: %w", i, ErrBadJoint)
	}
	if l := c.links[i]; l.Min != l.Max && (a < l.Min || a > l.Max) {
		return fmt.Errorf("joint %d to %.4f rad: %w", i, a.Rad(), ErrLimit)
	}
	prev := c.j[i]
	c.j[i] = a
	if err := c.fwd(); err != nil {
		c.j[i] = prev
		return err
	}
	return nil
}

// fwd refreshes the tip pose from the current joint angles. Call it
// after changing the joints.
func (c *Chain) fwd() error {
	tip, err := c.Forward(c.j)
	if err != nil {
		return err
	}
	c.tip = tip
	return nil
}

// transforms returns the transform from the robot frame to every frame
// of the chain for joint angles js.
func (c *Chain) transforms(js []geom.Angle) ([]*mat.Dense, error) {
	if len(js) != len(c.links) {
		return nil, fmt.Errorf("%d joint angles for %d links: %w", len(js), len(c.links), ErrBadJoint)
	}
	ms := make([]*mat.Dense, len(c.links)+1)
	ms[0] = c.base.Matrix()
	for i, l := range c.links {
		dh := l.DH
		dh.Theta += js[i]
		var m mat.Dense
		m.Mul(ms[i], dh.Matrix())
		ms[i+1] = &m
	}
	return ms, nil
}

// Forward evaluates the forward kinematics for a set of joint angles
// and returns the pose of the tip in the robot frame. It does not
// alter the joint angles of the chain and does not check joint
// limits.
func (c *Chain) Forward(js []geom.Angle) (Pose, error) {
	ms, err := c.transforms(js)
	if err != nil {
		return Pose{}, err
	}
	return Identity().ApplyTransform(ms[len(ms)-1]), nil
}

// Transform returns the transform from the robot frame to frame i for
// the current joint angles.
func (c *Chain) Transform(i int) (*mat.Dense, error) {
	if i < 0 || i > len(c.links) {
		return nil, fmt.Errorf("frame %d: %w", i, ErrBadJoint)
	}
	ms, err := c.transforms(c.j)
	if err != nil {
		return nil, err
	}
	return ms[i], nil
}

// RobotFrame returns p, given relative to frame i, in the robot frame.
// Use Identity() for the origin of frame i.
func (c *Chain) RobotFrame(i int, p Pose) (Pose, error) {
	m, err := c.Transform(i)
	if err != nil {
		return Pose{}, err
	}
	return p.ApplyTransform(m), nil
}

// JointFrame returns p, given in the robot frame, relative to frame i.
func (c *Chain) JointFrame(i int, p Pose) (Pose, error) {
	m, err := c.Transform(i)
	if err != nil {
		return Pose{}, err
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Pose{}, fmt.Errorf("frame %d: %w", i, ErrSingular)
	}
	return p.ApplyTransform(&inv), nil
}
