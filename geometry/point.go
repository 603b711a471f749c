package geometry

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a planar coordinate (x right, y up). It is a plain value and is
// safe to use as a map key.
type Point struct {
	X float64
	Y float64
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// MarshalJSON encodes a point as an [x, y] pair, the layout used by course files.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be an [x, y] pair: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(q.vec(), p.vec()))
}

// SquaredDistance avoids the square root when only an ordering is needed.
func SquaredDistance(p, q Point) float64 {
	return r2.Norm2(r2.Sub(q.vec(), p.vec()))
}

// Bearing returns the angle in radians of the vector from -> to.
func Bearing(from, to Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

func Midpoint(p, q Point) Point {
	return fromVec(r2.Scale(0.5, r2.Add(p.vec(), q.vec())))
}

// Polar returns the point reached from origin after travelling distance along angle.
func Polar(origin Point, distance, angle float64) Point {
	heading := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	return fromVec(r2.Add(origin.vec(), r2.Scale(distance, heading)))
}

// SegmentDistance returns the distance from p to the closest point of segment a-b.
func SegmentDistance(a, b, p Point) float64 {
	ab := r2.Sub(b.vec(), a.vec())
	length2 := r2.Norm2(ab)
	if length2 == 0 {
		return Distance(a, p)
	}
	t := r2.Dot(r2.Sub(p.vec(), a.vec()), ab) / length2
	t = math.Max(0, math.Min(1, t))
	return Distance(fromVec(r2.Add(a.vec(), r2.Scale(t, ab))), p)
}
