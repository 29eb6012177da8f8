package hexapod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVecInDelta(t *testing.T, want, got r3.Vec, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

var (
	swing = Quartic{
		{X: 0, Y: 0, Z: 0},
		{X: 0.02, Y: 0.01, Z: 0.06},
		{X: 0.05, Y: 0.00, Z: 0.09},
		{X: 0.08, Y: -0.01, Z: 0.06},
		{X: 0.10, Y: 0, Z: 0},
	}
	stance = Cubic{
		{X: 0.10, Z: 0},
		{X: 0.07, Z: -0.005},
		{X: 0.03, Z: -0.005},
		{X: 0.00, Z: 0},
	}
	arch = Quadratic{{}, {X: 1, Y: 1}, {X: 2}}
)

func TestQuadraticMidpoint(t *testing.T) {
	got, err := arch.At(0.5)
	require.NoError(t, err)
	assertVecInDelta(t, r3.Vec{X: 1, Y: 0.5}, got, 1e-12)

	d, err := arch.Derivative(0.5)
	require.NoError(t, err)
	assertVecInDelta(t, r3.Vec{X: 2}, d, 1e-12)
}

func TestCurveEndpoints(t *testing.T) {
	for _, c := range []Curve{arch, stance, swing} {
		ps := c.Points()
		require.Len(t, ps, c.Degree()+1)

		start, err := c.At(0)
		require.NoError(t, err)
		assertVecInDelta(t, ps[0], start, 1e-15, "degree %d start", c.Degree())

		end, err := c.At(1)
		require.NoError(t, err)
		assertVecInDelta(t, ps[len(ps)-1], end, 1e-15, "degree %d end", c.Degree())

		// The end tangents point along the first and last legs of the
		// polygon.
		d0, err := c.Derivative(0)
		require.NoError(t, err)
		assertVecInDelta(t, r3.Scale(float64(c.Degree()), r3.Sub(ps[1], ps[0])), d0, 1e-12)
		d1, err := c.Derivative(1)
		require.NoError(t, err)
		assertVecInDelta(t, r3.Scale(float64(c.Degree()), r3.Sub(ps[len(ps)-1], ps[len(ps)-2])), d1, 1e-12)
	}
}

func TestDerivativeMatchesDifference(t *testing.T) {
	const h = 1e-6
	for _, c := range []Curve{arch, stance, swing} {
		for _, u := range []float64{0.1, 0.35, 0.5, 0.8} {
			a, err := c.At(u - h)
			require.NoError(t, err)
			b, err := c.At(u + h)
			require.NoError(t, err)
			d, err := c.Derivative(u)
			require.NoError(t, err)
			assertVecInDelta(t, r3.Scale(1/(2*h), r3.Sub(b, a)), d, 1e-6, "degree %d at %g", c.Degree(), u)
		}
	}
}

func TestCubicThrough(t *testing.T) {
	for _, i := range []int{1, 2} {
		for _, u := range []float64{0.25, 0.5, 0.6} {
			c, err := stance.Through(i, u)
			require.NoError(t, err)
			got, err := c.At(u)
			require.NoError(t, err)
			assertVecInDelta(t, stance[i], got, 1e-12, "point %d at %g", i, u)

			p, err := stance.ControlPoint(i, u)
			require.NoError(t, err)
			assert.Equal(t, p, c[i])
		}
	}
}

func TestQuarticThrough(t *testing.T) {
	for _, i := range []int{1, 2, 3} {
		for _, u := range []float64{0.25, 0.5, 0.75} {
			c, err := swing.Through(i, u)
			require.NoError(t, err)
			got, err := c.At(u)
			require.NoError(t, err)
			assertVecInDelta(t, swing[i], got, 1e-12, "point %d at %g", i, u)
		}
	}
}

func TestThroughNearEnds(t *testing.T) {
	// Small basis weights push the solved point far out, but the curve
	// still passes through the replaced point.
	tests := []struct {
		name string
		c    Curve
		i    int
		t    float64
	}{
		{"cubic point 2 near start", stance, 2, 1e-4},
		{"cubic point 1 near end", stance, 1, 0.9999},
		{"quartic point 3 near start", swing, 3, 0.002},
		{"quadratic near start", arch, 1, 1e-5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.c.ControlPoint(tc.i, tc.t)
			require.NoError(t, err)
			ps := tc.c.Points()
			want := ps[tc.i]
			ps[tc.i] = p
			c, err := NewCurve(ps)
			require.NoError(t, err)
			got, err := c.At(tc.t)
			require.NoError(t, err)
			assertVecInDelta(t, want, got, 1e-6)
		})
	}
}

func TestQuadraticThrough(t *testing.T) {
	c, err := arch.Through(1, 0.5)
	require.NoError(t, err)
	assertVecInDelta(t, r3.Vec{X: 1, Y: 2}, c[1], 1e-12)
	got, err := c.At(0.5)
	require.NoError(t, err)
	assertVecInDelta(t, arch[1], got, 1e-12)
}

func TestControlPointErrors(t *testing.T) {
	tests := []struct {
		name string
		c    Curve
		i    int
		t    float64
		err  error
	}{
		{"cubic start point", stance, 0, 0.5, ErrControlPoint},
		{"cubic end point", stance, 3, 0.5, ErrControlPoint},
		{"quadratic end point", arch, 2, 0.5, ErrControlPoint},
		{"quartic end point", swing, 4, 0.5, ErrControlPoint},
		{"quartic negative", swing, -1, 0.5, ErrControlPoint},
		{"cubic at 0", stance, 1, 0, ErrDegenerate},
		{"cubic at 1", stance, 2, 1, ErrDegenerate},
		{"quartic at 1", swing, 3, 1, ErrDegenerate},
		{"quartic outside", swing, 2, 1.2, ErrDegenerate},
		{"quartic weight underflow", swing, 3, 1e-200, ErrDegenerate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.c.ControlPoint(tc.i, tc.t)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, r3.Vec{}, p)
		})
	}
}

func TestCurveInputRange(t *testing.T) {
	for _, c := range []Curve{arch, stance, swing} {
		_, err := c.At(-0.5)
		assert.ErrorIs(t, err, ErrControlInput)
		_, err = c.Derivative(1.01)
		assert.ErrorIs(t, err, ErrControlInput)
	}
}

func TestNewCurve(t *testing.T) {
	c, err := NewCurve(swing.Points())
	require.NoError(t, err)
	assert.Equal(t, swing, c)

	c, err = NewCurve(stance[:])
	require.NoError(t, err)
	assert.Equal(t, 3, c.Degree())

	_, err = NewCurve(make([]r3.Vec, 2))
	assert.ErrorIs(t, err, ErrControlPolygon)
	_, err = NewCurve(make([]r3.Vec, 6))
	assert.ErrorIs(t, err, ErrControlPolygon)

	// The polygon is copied, not aliased.
	ps := arch.Points()
	ps[0] = r3.Vec{X: 9}
	assert.Equal(t, r3.Vec{}, arch[0])
}
