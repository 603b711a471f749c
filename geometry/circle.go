package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type Circle struct {
	Center Point
	Radius float64
}

// vertexSnap is how close a segment parameter must be to an end of the
// segment to be treated as that vertex.
const vertexSnap = 1e-9

// segmentCircle intersects segment a-b with c, keeping parameters in [0, 1).
// Parameters within vertexSnap of 0 or 1 are snapped first, so a vertex on the
// circle is reported by exactly one of its edges. A tangent edge yields a
// single point.
func segmentCircle(a, b Point, c Circle) []Point {
	d := r2.Sub(b.vec(), a.vec())
	f := r2.Sub(a.vec(), c.Center.vec())

	qa := r2.Dot(d, d)
	if qa == 0 {
		return nil
	}
	qb := 2 * r2.Dot(f, d)
	qc := r2.Dot(f, f) - c.Radius*c.Radius

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}

	var ts []float64
	if disc == 0 {
		ts = []float64{-qb / (2 * qa)}
	} else {
		root := math.Sqrt(disc)
		ts = []float64{(-qb - root) / (2 * qa), (-qb + root) / (2 * qa)}
	}

	var points []Point
	for _, t := range ts {
		switch {
		case math.Abs(t) < vertexSnap:
			points = append(points, a)
		case t > 0 && t < 1-vertexSnap:
			points = append(points, fromVec(r2.Add(a.vec(), r2.Scale(t, d))))
		}
	}
	return points
}
