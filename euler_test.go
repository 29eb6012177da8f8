package hexapod

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEulerRoundTrip(t *testing.T) {
	angles := []float64{-1.4, -0.7, -0.2, 0, 0.3, 1.1, 1.5}
	for _, intrinsic := range []bool{true, false} {
		for _, roll := range angles {
			for _, pitch := range angles {
				for _, yaw := range angles {
					e := r3.Vec{X: roll, Y: pitch, Z: yaw}
					got := QuaternionToEuler(EulerToQuaternion(e, intrinsic), intrinsic)
					name := fmt.Sprintf("intrinsic=%v %v", intrinsic, e)
					assert.InDelta(t, e.X, got.X, 1e-9, name)
					assert.InDelta(t, e.Y, got.Y, 1e-9, name)
					assert.InDelta(t, e.Z, got.Z, 1e-9, name)
				}
			}
		}
	}
}

func TestEulerLargeYaw(t *testing.T) {
	// Only the first decomposed angle is restricted to [0, π] before
	// correction; a pure yaw either side of that still comes back.
	for _, yaw := range []float64{3.0, -3.0, -math.Pi/2 - 0.1} {
		got := QuaternionToEuler(EulerToQuaternion(r3.Vec{Z: yaw}, false), false)
		assert.InDelta(t, 0, got.X, 1e-9, "yaw %v", yaw)
		assert.InDelta(t, 0, got.Y, 1e-9, "yaw %v", yaw)
		assert.InDelta(t, yaw, got.Z, 1e-9, "yaw %v", yaw)
	}
}

func TestEulerOrder(t *testing.T) {
	e := r3.Vec{X: 0.3, Y: -0.4, Z: 0.9}
	v := r3.Vec{X: 0.2, Y: -1, Z: 0.7}

	// Intrinsic roll-pitch-yaw about the moving axes applies yaw to a
	// vector first; extrinsic about the fixed axes applies roll first.
	want := r3.Rotate(r3.Rotate(r3.Rotate(v, e.Z, UnitZ), e.Y, UnitY), e.X, UnitX)
	assertVecInDelta(t, want, rotate(EulerToQuaternion(e, true), v), 1e-12)

	want = r3.Rotate(r3.Rotate(r3.Rotate(v, e.X, UnitX), e.Y, UnitY), e.Z, UnitZ)
	assertVecInDelta(t, want, rotate(EulerToQuaternion(e, false), v), 1e-12)

	assert.False(t, quatEqual(EulerToQuaternion(e, true), EulerToQuaternion(e, false)))

	yaw := EulerToQuaternion(r3.Vec{Z: 0.5}, true)
	assert.True(t, quatEqual(AxisAngle(0.5, UnitZ), yaw))
	assert.True(t, quatEqual(yaw, EulerToQuaternion(r3.Vec{Z: 0.5}, false)))
}

func TestRotationMatrixRoundTrip(t *testing.T) {
	for _, q := range []struct {
		angle float64
		axis  r3.Vec
	}{
		{0, UnitX},
		{0.4, UnitY},
		{math.Pi, UnitZ},
		{math.Pi, UnitX},
		{2.8, r3.Vec{X: 0.3, Y: -0.5, Z: 0.8}},
		{-2.2, r3.Vec{X: -1, Y: 0.1, Z: 0.2}},
	} {
		want := AxisAngle(q.angle, q.axis)
		got := MatrixToQuaternion(RotationMatrix(want))
		assert.True(t, sameRotation(want, got), "%v: want %v, got %v", q, want, got)
	}
}

func TestRotationMatrixRotates(t *testing.T) {
	axis := r3.Vec{X: 2, Y: -1, Z: 0.5}
	q := AxisAngle(1.2, axis)
	assert.InDelta(t, 1, quat.Abs(q), 1e-15, "axis is not normalized")

	m := RotationMatrix(q)
	v := r3.Vec{X: 0.4, Y: 0.9, Z: -1.3}
	got := r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
	assertVecInDelta(t, r3.Rotate(v, 1.2, axis), got, 1e-12)
}
