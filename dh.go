package hexapod

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"zappem.net/pub/math/geom"
)

// DH holds the classical Denavit-Hartenberg parameters of one link.
type DH struct {
	// D is the offset along the previous z axis to the common normal.
	D float64
	// Theta is the angle about the previous z axis from the old x
	// axis to the new one.
	Theta geom.Angle
	// R is the length of the common normal.
	R float64
	// Alpha is the angle about the common normal from the old z axis
	// to the new one.
	Alpha geom.Angle
}

// Matrix returns the homogeneous transform of the link.
func (p DH) Matrix() *mat.Dense {
	return DHMatrix(p.D, p.Theta, p.R, p.Alpha)
}

// DHMatrix builds the 4x4 homogeneous transform for one link from its
// DH parameters: a rotation of theta about z, a translation d along
// z, a translation r along the new x and a rotation alpha about it.
func DHMatrix(d float64, theta geom.Angle, r float64, alpha geom.Angle) *mat.Dense {
	st, ct := theta.S(), theta.C()
	sa, ca := alpha.S(), alpha.C()
	return mat.NewDense(4, 4, []float64{
		ct, -st * ca, st * sa, r * ct,
		st, ct * ca, -ct * sa, r * st,
		0, sa, ca, d,
		0, 0, 0, 1,
	})
}

// rotationBlock extracts the upper left 3x3 of a homogeneous
// transform.
func rotationBlock(m mat.Matrix) [3][3]float64 {
	var b [3][3]float64
	for i := range b {
		for j := range b[i] {
			b[i][j] = m.At(i, j)
		}
	}
	return b
}

// ApplyTransform maps p through the homogeneous transform m. The
// position is transformed as a point and the rotation block of m is
// applied ahead of p's rotation. The result is renormalized since
// long chains of matrix products drift off unit length.
func (p Pose) ApplyTransform(m mat.Matrix) Pose {
	if r, c := m.Dims(); r != 4 || c != 4 {
		panic(mat.ErrShape)
	}
	h := mat.NewVecDense(4, []float64{p.Position.X, p.Position.Y, p.Position.Z, 1})
	var out mat.VecDense
	out.MulVec(m, h)

	rot := MatrixToQuaternion(rotationBlock(m))
	return Pose{
		Position: r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)},
		Rotation: Normalize(quat.Mul(rot, p.Rotation)),
	}
}

// PoseMatrix returns the homogeneous transform equivalent to p.
func PoseMatrix(p Pose) *mat.Dense {
	r := RotationMatrix(p.Rotation)
	return mat.NewDense(4, 4, []float64{
		r[0][0], r[0][1], r[0][2], p.Position.X,
		r[1][0], r[1][1], r[1][2], p.Position.Y,
		r[2][0], r[2][1], r[2][2], p.Position.Z,
		0, 0, 0, 1,
	})
}
