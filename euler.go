package hexapod

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Unit rotation axes.
var (
	UnitX = r3.Vec{X: 1}
	UnitY = r3.Vec{Y: 1}
	UnitZ = r3.Vec{Z: 1}
)

// AxisAngle returns the unit quaternion rotating by angle radians
// about axis. The axis is normalized.
func AxisAngle(angle float64, axis r3.Vec) quat.Number {
	return quat.Number(r3.NewRotation(angle, axis))
}

// EulerToQuaternion converts roll, pitch and yaw (e.X, e.Y, e.Z) to a
// unit quaternion. Intrinsic rotations apply roll, then pitch, then
// yaw about the rotated axes; extrinsic rotations apply them about the
// fixed axes.
func EulerToQuaternion(e r3.Vec, intrinsic bool) quat.Number {
	qx := AxisAngle(e.X, UnitX)
	qy := AxisAngle(e.Y, UnitY)
	qz := AxisAngle(e.Z, UnitZ)
	if intrinsic {
		return quat.Mul(quat.Mul(qx, qy), qz)
	}
	return quat.Mul(quat.Mul(qz, qy), qx)
}

// QuaternionToEuler converts a rotation to roll, pitch and yaw,
// returned as (X, Y, Z), each in [-π, π].
func QuaternionToEuler(q quat.Number, intrinsic bool) r3.Vec {
	m := RotationMatrix(q)

	var r [3]float64
	if intrinsic {
		r = eulerAngles(m, 0, 1, 2)
	} else {
		r = eulerAngles(m, 2, 1, 0)
	}

	// The raw decomposition keeps the first angle in [0, π]. A rotation
	// below zero about the first axis therefore comes back pointing that
	// axis the other way and flipped round by π on the second and third
	// axes. Detect the flip from those two angles and map all three back
	// into range.
	if math.Abs(r[1]) > math.Pi/2 || math.Abs(r[2]) > math.Pi/2 {
		r[0] -= math.Pi
		if r[1] > math.Pi/2 {
			r[1] = -r[1] + math.Pi
		} else if r[1] < math.Pi/2 {
			r[1] = -r[1] - math.Pi
		}
		if r[2] > math.Pi/2 {
			r[2] -= math.Pi
		} else if r[2] < math.Pi/2 {
			r[2] += math.Pi
		}
	}

	if intrinsic {
		return r3.Vec{X: r[0], Y: r[1], Z: r[2]}
	}
	return r3.Vec{X: r[2], Y: r[1], Z: r[0]}
}

// eulerAngles decomposes the rotation matrix m into three angles about
// the distinct axes a0, a1, a2 such that m = R(a0)·R(a1)·R(a2). The
// first angle is in [0, π], the others in [-π, π].
func eulerAngles(m [3][3]float64, a0, a1, a2 int) [3]float64 {
	odd := 1
	if (a0+1)%3 == a1 {
		odd = 0
	}
	i := a0
	j := (a0 + 1 + odd) % 3
	k := (a0 + 2 - odd) % 3

	var res [3]float64
	res[0] = math.Atan2(m[j][k], m[k][k])
	c2 := math.Hypot(m[i][i], m[i][j])
	if (odd == 1 && res[0] < 0) || (odd == 0 && res[0] > 0) {
		if res[0] > 0 {
			res[0] -= math.Pi
		} else {
			res[0] += math.Pi
		}
		res[1] = math.Atan2(-m[i][k], -c2)
	} else {
		res[1] = math.Atan2(-m[i][k], c2)
	}
	s1, c1 := math.Sincos(res[0])
	res[2] = math.Atan2(s1*m[k][i]-c1*m[j][i], c1*m[j][j]-s1*m[k][j])

	if odd == 0 {
		res[0], res[1], res[2] = -res[0], -res[1], -res[2]
	}
	return res
}

// RotationMatrix returns the row-major 3x3 rotation matrix of the
// unit quaternion q.
func RotationMatrix(q quat.Number) [3][3]float64 {
	rm := r3.Rotation(q).Mat()
	var m [3][3]float64
	for i := range m {
		for j := range m[i] {
			m[i][j] = rm.At(i, j)
		}
	}
	return m
}

// MatrixToQuaternion converts a row-major 3x3 rotation matrix to a
// quaternion. The largest of the trace and the diagonal picks which
// component is recovered first, keeping the square root well away
// from zero.
func MatrixToQuaternion(m [3][3]float64) quat.Number {
	trace := m[0][0] + m[1][1] + m[2][2]
	if trace > 0 {
		t := math.Sqrt(trace + 1)
		w := 0.5 * t
		t = 0.5 / t
		return quat.Number{
			Real: w,
			Imag: (m[2][1] - m[1][2]) * t,
			Jmag: (m[0][2] - m[2][0]) * t,
			Kmag: (m[1][0] - m[0][1]) * t,
		}
	}

	i := 0
	if m[1][1] > m[0][0] {
		i = 1
	}
	if m[2][2] > m[i][i] {
		i = 2
	}
	j := (i + 1) % 3
	k := (j + 1) % 3

	var v [3]float64
	t := math.Sqrt(m[i][i] - m[j][j] - m[k][k] + 1)
	v[i] = 0.5 * t
	t = 0.5 / t
	v[j] = (m[j][i] + m[i][j]) * t
	v[k] = (m[k][i] + m[i][k]) * t
	return quat.Number{
		Real: (m[k][j] - m[j][k]) * t,
		Imag: v[0],
		Jmag: v[1],
		Kmag: v[2],
	}
}
