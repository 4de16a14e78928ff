// Package numeric provides the small numerical kernel used by the physics
// library: Simpson quadrature, local quadratic interpolation and integer
// powers.
package numeric

import (
	"errors"
	"math"
	"sort"
)

// Endpoint selects where the single trapezoid-like correction goes when
// Simpson's rule is applied to an even number of samples.
type Endpoint int

const (
	SimpsonFirst Endpoint = -1 // correct at the first interval
	SimpsonNone  Endpoint = 0  // odd sample counts only
	SimpsonLast  Endpoint = 1  // correct at the last interval
)

var (
	// ErrSimpsonInput reports an empty sample slice, or an even sample
	// count without an endpoint choice.
	ErrSimpsonInput = errors.New("simpson integrator: wrong inputs")

	// ErrOutOfRangeLow and ErrOutOfRangeHigh report interpolation points
	// farther than 10% of the edge spacing outside the table.
	ErrOutOfRangeLow  = errors.New("interpolation: out of range (low)")
	ErrOutOfRangeHigh = errors.New("interpolation: out of range (high)")

	// ErrTooFewPoints reports a table with fewer than three points.
	ErrTooFewPoints = errors.New("interpolation: need at least three points")
)

// Simpson integrates the samples ys taken at spacing dx.
//
// An odd number of samples uses the composite rule directly. For an even
// count, end picks which boundary interval receives the correction.
func Simpson(ys []float64, dx float64, end Endpoint) (float64, error) {
	n := len(ys)
	odd := n&1 == 1
	if n == 0 || (!odd && end != SimpsonFirst && end != SimpsonLast) {
		return 0, ErrSimpsonInput
	}

	start := 0
	if !odd && end == SimpsonLast {
		start = 1
	}

	var sum float64
	for i := start; i < n-2; i += 2 {
		sum += ys[i] + 2*ys[i+1]
	}
	sum *= 2

	switch {
	case odd:
		sum += ys[n-1] - ys[0]
	case end == SimpsonLast:
		sum += 0.5*ys[1] + 1.5*ys[0] + ys[n-1]
	case end == SimpsonFirst:
		sum += 1.5*ys[n-1] + 2.5*ys[n-2] - ys[0]
	}
	return sum * dx / 3, nil
}

// Point is one (x, y) sample of a tabulated function.
type Point struct {
	X, Y float64
}

// SortByX sorts pts by ascending X.
func SortByX(pts []Point) {
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
}

// InterpolateL2 evaluates the quadratic Lagrange polynomial through the three
// table points nearest to x. pts must be sorted by X.
//
// Values of x beyond the table edge are accepted when they lie within 10% of
// the spacing between the two outermost points on that side.
func InterpolateL2(pts []Point, x float64) (float64, error) {
	n := len(pts)
	if n < 3 {
		return 0, ErrTooFewPoints
	}

	// first index with pts[i].X >= x
	i := sort.Search(n, func(k int) bool { return pts[k].X >= x })

	switch {
	case i == n:
		if math.Abs(x-pts[n-1].X) > 0.1*math.Abs(pts[n-1].X-pts[n-2].X) {
			return 0, ErrOutOfRangeHigh
		}
		i = n - 2
	case i == 0:
		if math.Abs(x-pts[0].X) > 0.1*math.Abs(pts[0].X-pts[1].X) {
			return 0, ErrOutOfRangeLow
		}
		i = 1
	case i == n-1:
		i--
	case i != 1 && 2*x < pts[i].X+pts[i-1].X:
		i--
	}

	x0, x1, x2 := pts[i-1].X, pts[i].X, pts[i+1].X
	y0, y1, y2 := pts[i-1].Y, pts[i].Y, pts[i+1].Y
	return (x-x1)*(x-x2)/((x0-x1)*(x0-x2))*y0 +
		(x-x0)*(x-x2)/((x1-x0)*(x1-x2))*y1 +
		(x-x0)*(x-x1)/((x2-x0)*(x2-x1))*y2, nil
}

// PowInt returns base**exp by binary exponentiation.
// Negative exponents return the reciprocal of the positive power.
func PowInt(base float64, exp int32) float64 {
	abs := uint32(exp)
	if exp < 0 {
		abs = uint32(-int64(exp))
	}

	result := 1.0
	for abs != 0 {
		if abs&1 == 1 {
			result *= base
		}
		base *= base
		abs >>= 1
	}

	if exp < 0 {
		return 1 / result
	}
	return result
}
