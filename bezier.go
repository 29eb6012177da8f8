package hexapod

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is a Bezier curve in Bernstein form over a fixed control
// polygon. The curve starts at the first control point (t=0) and ends
// at the last (t=1).
type Curve interface {
	// Degree is the polynomial order, one less than the number of
	// control points.
	Degree() int
	// Points returns a copy of the control polygon.
	Points() []r3.Vec
	// At evaluates the curve at t in [0,1].
	At(t float64) (r3.Vec, error)
	// Derivative evaluates the derivative with respect to t.
	Derivative(t float64) (r3.Vec, error)
	// ControlPoint treats control point i as a point the curve must
	// pass through at t and solves for the control point that makes
	// it do so. Only interior points can be solved for, and t must
	// be strictly between 0 and 1.
	ControlPoint(i int, t float64) (r3.Vec, error)
}

// Quadratic is the control polygon of a 2nd order Bezier curve.
type Quadratic [3]r3.Vec

// Cubic is the control polygon of a 3rd order Bezier curve.
type Cubic [4]r3.Vec

// Quartic is the control polygon of a 4th order Bezier curve.
type Quartic [5]r3.Vec

// NewCurve builds the curve matching the length of points.
func NewCurve(points []r3.Vec) (Curve, error) {
	switch len(points) {
	case 3:
		return Quadratic([3]r3.Vec(points)), nil
	case 4:
		return Cubic([4]r3.Vec(points)), nil
	case 5:
		return Quartic([5]r3.Vec(points)), nil
	}
	return nil, fmt.Errorf("%d points: %w", len(points), ErrControlPolygon)
}

// bernstein returns the Bernstein basis polynomials of order n at t.
func bernstein(n int, t float64) []float64 {
	s := 1 - t
	switch n {
	case 1:
		return []float64{s, t}
	case 2:
		return []float64{s * s, 2 * t * s, t * t}
	case 3:
		return []float64{s * s * s, 3 * t * s * s, 3 * t * t * s, t * t * t}
	case 4:
		return []float64{s * s * s * s, 4 * t * s * s * s, 6 * t * t * s * s, 4 * t * t * t * s, t * t * t * t}
	}
	panic(fmt.Sprintf("no Bernstein basis of order %d", n))
}

func weighted(ps []r3.Vec, w []float64) r3.Vec {
	var v r3.Vec
	for i, p := range ps {
		v = r3.Add(v, r3.Scale(w[i], p))
	}
	return v
}

func checkInput(t float64) error {
	if !(t >= 0 && t <= 1) {
		return fmt.Errorf("curve evaluated at %g: %w", t, ErrControlInput)
	}
	return nil
}

func eval(ps []r3.Vec, t float64) (r3.Vec, error) {
	if err := checkInput(t); err != nil {
		return r3.Vec{}, err
	}
	return weighted(ps, bernstein(len(ps)-1, t)), nil
}

// derivative is the order n-1 curve over the forward differences of
// the control points, scaled by n.
func derivative(ps []r3.Vec, t float64) (r3.Vec, error) {
	if err := checkInput(t); err != nil {
		return r3.Vec{}, err
	}
	n := len(ps) - 1
	d := make([]r3.Vec, n)
	for i := range d {
		d[i] = r3.Scale(float64(n), r3.Sub(ps[i+1], ps[i]))
	}
	return weighted(d, bernstein(n-1, t)), nil
}

// controlPoint solves B(t) = ps[i] for the i'th control point, holding
// the others fixed.
func controlPoint(ps []r3.Vec, i int, t float64) (r3.Vec, error) {
	n := len(ps) - 1
	if i <= 0 || i >= n {
		return r3.Vec{}, fmt.Errorf("point %d of an order %d curve: %w", i, n, ErrControlPoint)
	}
	if !(t > 0 && t < 1) {
		return r3.Vec{}, fmt.Errorf("pass-through at %g, want strictly between 0 and 1: %w", t, ErrDegenerate)
	}
	w := bernstein(n, t)
	if w[i] == 0 {
		return r3.Vec{}, fmt.Errorf("pass-through at %g: basis weight of point %d underflows: %w", t, i, ErrDegenerate)
	}
	v := ps[i]
	for k, p := range ps {
		if k != i {
			v = r3.Sub(v, r3.Scale(w[k], p))
		}
	}
	return r3.Scale(1/w[i], v), nil
}

// Degree returns 2.
func (Quadratic) Degree() int { return 2 }

// Degree returns 3.
func (Cubic) Degree() int { return 3 }

// Degree returns 4.
func (Quartic) Degree() int { return 4 }

// Points returns a copy of the three control points.
func (c Quadratic) Points() []r3.Vec { return append([]r3.Vec(nil), c[:]...) }

// Points returns a copy of the four control points.
func (c Cubic) Points() []r3.Vec { return append([]r3.Vec(nil), c[:]...) }

// Points returns a copy of the five control points.
func (c Quartic) Points() []r3.Vec { return append([]r3.Vec(nil), c[:]...) }

// At evaluates the curve at t in [0,1].
func (c Quadratic) At(t float64) (r3.Vec, error) { return eval(c[:], t) }

// At evaluates the curve at t in [0,1].
func (c Cubic) At(t float64) (r3.Vec, error) { return eval(c[:], t) }

// At evaluates the curve at t in [0,1].
func (c Quartic) At(t float64) (r3.Vec, error) { return eval(c[:], t) }

// Derivative evaluates dB/dt at t in [0,1].
func (c Quadratic) Derivative(t float64) (r3.Vec, error) { return derivative(c[:], t) }

// Derivative evaluates dB/dt at t in [0,1].
func (c Cubic) Derivative(t float64) (r3.Vec, error) { return derivative(c[:], t) }

// Derivative evaluates dB/dt at t in [0,1].
func (c Quartic) Derivative(t float64) (r3.Vec, error) { return derivative(c[:], t) }

// ControlPoint solves for the middle control point; only i=1 is
// supported.
func (c Quadratic) ControlPoint(i int, t float64) (r3.Vec, error) {
	return controlPoint(c[:], i, t)
}

// ControlPoint solves for control point 1 or 2.
func (c Cubic) ControlPoint(i int, t float64) (r3.Vec, error) {
	return controlPoint(c[:], i, t)
}

// ControlPoint solves for control point 1, 2 or 3. Solving for one
// point of a quartic can produce a sharply bent curve when the other
// points are far from it; split such curves into lower orders.
func (c Quartic) ControlPoint(i int, t float64) (r3.Vec, error) {
	return controlPoint(c[:], i, t)
}

// Through returns the polygon with point i replaced so that the curve
// passes through the point previously at index i at t.
func (c Quadratic) Through(i int, t float64) (Quadratic, error) {
	p, err := c.ControlPoint(i, t)
	if err != nil {
		return c, err
	}
	c[i] = p
	return c, nil
}

// Through returns the polygon with point i replaced so that the curve
// passes through the point previously at index i at t.
func (c Cubic) Through(i int, t float64) (Cubic, error) {
	p, err := c.ControlPoint(i, t)
	if err != nil {
		return c, err
	}
	c[i] = p
	return c, nil
}

// Through returns the polygon with point i replaced so that the curve
// passes through the point previously at index i at t.
func (c Quartic) Through(i int, t float64) (Quartic, error) {
	p, err := c.ControlPoint(i, t)
	if err != nil {
		return c, err
	}
	c[i] = p
	return c, nil
}
