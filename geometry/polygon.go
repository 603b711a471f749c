package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDegeneratePolygon = errors.New("polygon needs at least three distinct vertices and a non-zero area")
	ErrSelfIntersecting  = errors.New("polygon edges intersect")
)

// Course is the capability the shot planner needs from a playable area.
// Any geometry backend that answers these two queries can be substituted.
type Course interface {
	Contains(p Point) bool
	IntersectCircle(c Circle) []Point
}

// Polygon is a simple closed polygon. The closing edge from the last vertex
// back to the first is implicit.
type Polygon struct {
	vertices []Point
	min      Point
	max      Point
}

// NewPolygon validates vertices and returns the polygon they enclose. A
// repeated closing vertex and consecutive duplicates are dropped.
func NewPolygon(vertices []Point) (*Polygon, error) {
	cleaned := make([]Point, 0, len(vertices))
	for _, v := range vertices {
		if n := len(cleaned); n > 0 && cleaned[n-1] == v {
			continue
		}
		cleaned = append(cleaned, v)
	}
	if n := len(cleaned); n > 1 && cleaned[0] == cleaned[n-1] {
		cleaned = cleaned[:n-1]
	}

	if len(cleaned) < 3 || signedArea(cleaned) == 0 {
		return nil, fmt.Errorf("%d vertices: %w", len(cleaned), ErrDegeneratePolygon)
	}
	if i, j, ok := findCrossing(cleaned); ok {
		return nil, fmt.Errorf("edge %d crosses edge %d: %w", i, j, ErrSelfIntersecting)
	}

	p := &Polygon{vertices: cleaned}
	p.min, p.max = bounds(cleaned)
	return p, nil
}

// Vertices returns a copy of the polygon's vertices.
func (p *Polygon) Vertices() []Point {
	return append([]Point(nil), p.vertices...)
}

// BoundingBox returns the lower-left and upper-right corners.
func (p *Polygon) BoundingBox() (Point, Point) {
	return p.min, p.max
}

func (p *Polygon) Area() float64 {
	return math.Abs(signedArea(p.vertices))
}

func (p *Polygon) edge(i int) (Point, Point) {
	return p.vertices[i], p.vertices[(i+1)%len(p.vertices)]
}

// Contains reports whether pt lies inside the polygon. See PointInPolygon
// for the boundary rule.
func (p *Polygon) Contains(pt Point) bool {
	return PointInPolygon(p.vertices, pt.X, pt.Y)
}

// PointInPolygon is a crossing-number test with half-open edges: an edge is
// counted when exactly one of its endpoints lies strictly above y, and the
// crossing counts when x is strictly left of it. On an axis-aligned course
// points on the left and bottom edges are inside, points on the right and top
// edges are outside.
func PointInPolygon(vertices []Point, x, y float64) bool {
	inside := false
	n := len(vertices)
	j := n - 1
	for i := 0; i < n; i++ {
		if crosses(vertices[i], vertices[j], x, y) {
			inside = !inside
		}
		j = i
	}
	return inside
}

func crosses(a, b Point, x, y float64) bool {
	if (a.Y > y) == (b.Y > y) {
		return false
	}
	xints := (y-a.Y)*(b.X-a.X)/(b.Y-a.Y) + a.X
	return x < xints
}

// IntersectCircle returns every point where the polygon boundary meets c.
// Edges are treated as half-open so a vertex on the circle is reported once.
func (p *Polygon) IntersectCircle(c Circle) []Point {
	var points []Point
	for i := range p.vertices {
		a, b := p.edge(i)
		points = append(points, segmentCircle(a, b, c)...)
	}
	return points
}

func signedArea(vertices []Point) float64 {
	sum := 0.0
	n := len(vertices)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func bounds(vertices []Point) (Point, Point) {
	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, v := range vertices {
		lo.X, lo.Y = math.Min(lo.X, v.X), math.Min(lo.Y, v.Y)
		hi.X, hi.Y = math.Max(hi.X, v.X), math.Max(hi.Y, v.Y)
	}
	return lo, hi
}

// findCrossing returns the first pair of non-adjacent edges that touch.
func findCrossing(vertices []Point) (int, int, bool) {
	n := len(vertices)
	for i := 0; i < n; i++ {
		a1, a2 := vertices[i], vertices[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 { // Shares the first vertex
				continue
			}
			b1, b2 := vertices[j], vertices[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment assumes p is collinear with a-b.
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}
