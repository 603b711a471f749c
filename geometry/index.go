package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// edgePad keeps horizontal and vertical edges from producing zero-length
// boxes, which rtreego rejects.
const edgePad = 1e-9

type edgeEntry struct {
	id     int
	a, b   Point
	bounds rtreego.Rect
}

func (e *edgeEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// Index is the per-game representation of a course: the polygon plus an
// R-tree over its edges, so containment and circle queries only visit the
// edges near the query. It answers exactly as the underlying Polygon does.
type Index struct {
	polygon *Polygon
	tree    *rtreego.Rtree
}

func NewIndex(polygon *Polygon) (*Index, error) {
	entries := make([]rtreego.Spatial, 0, len(polygon.vertices))
	for i := range polygon.vertices {
		a, b := polygon.edge(i)
		bounds, err := paddedRect(a, b)
		if err != nil {
			return nil, fmt.Errorf("failed to index edge %d: %w", i, err)
		}
		entries = append(entries, &edgeEntry{id: i, a: a, b: b, bounds: bounds})
	}

	return &Index{
		polygon: polygon,
		tree:    rtreego.NewTree(2, 4, 16, entries...),
	}, nil
}

// Prepare validates vertices and builds their Index in one step.
func Prepare(vertices []Point) (*Index, error) {
	polygon, err := NewPolygon(vertices)
	if err != nil {
		return nil, err
	}
	return NewIndex(polygon)
}

func (ix *Index) Polygon() *Polygon {
	return ix.polygon
}

func (ix *Index) Contains(p Point) bool {
	lo, hi := ix.polygon.min, ix.polygon.max
	// Outside the bounding box the crossing count is always even
	if p.X < lo.X || p.X >= hi.X || p.Y < lo.Y || p.Y >= hi.Y {
		return false
	}

	// Every edge the ray can cross overlaps the box from p to the right side
	ray, err := rtreego.NewRect(
		rtreego.Point{p.X, p.Y - edgePad},
		[]float64{hi.X - p.X + edgePad, 2 * edgePad},
	)
	if err != nil {
		return ix.polygon.Contains(p)
	}

	inside := false
	for _, s := range ix.tree.SearchIntersect(ray) {
		e := s.(*edgeEntry)
		if crosses(e.a, e.b, p.X, p.Y) {
			inside = !inside
		}
	}
	return inside
}

func (ix *Index) IntersectCircle(c Circle) []Point {
	r := math.Abs(c.Radius)
	box, err := rtreego.NewRect(
		rtreego.Point{c.Center.X - r - edgePad, c.Center.Y - r - edgePad},
		[]float64{2*r + 2*edgePad, 2*r + 2*edgePad},
	)
	if err != nil {
		return ix.polygon.IntersectCircle(c)
	}

	found := ix.tree.SearchIntersect(box)
	edges := make([]*edgeEntry, len(found))
	for i, s := range found {
		edges[i] = s.(*edgeEntry)
	}
	// Report in boundary order, matching Polygon.IntersectCircle
	sort.Slice(edges, func(i, j int) bool { return edges[i].id < edges[j].id })

	var points []Point
	for _, e := range edges {
		points = append(points, segmentCircle(e.a, e.b, c)...)
	}
	return points
}

func paddedRect(a, b Point) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{math.Min(a.X, b.X) - edgePad, math.Min(a.Y, b.Y) - edgePad},
		[]float64{math.Abs(b.X-a.X) + 2*edgePad, math.Abs(b.Y-a.Y) + 2*edgePad},
	)
}
