package searcher

import (
	"errors"
	"fmt"
	"sort"

	"golf/geometry"
)

var ErrNoCandidates = errors.New("no candidate aim points")

// CandidateSet holds alternative aim points for strokes of length Radius from
// Origin, closest to the target first.
type CandidateSet struct {
	Origin geometry.Point
	Radius float64
	Points []geometry.Point
}

// Generator proposes aim points halfway between two places where the circle
// of reach crosses the course boundary. Such midpoints sit in the middle of
// the corridor the ball would travel into.
type Generator struct {
	maxCandidates int
}

func NewGenerator(maxCandidates int) *Generator {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Generator{maxCandidates: maxCandidates}
}

func (g *Generator) Generate(course geometry.Course, origin, target geometry.Point, radius float64) (*CandidateSet, error) {
	crossings := course.IntersectCircle(geometry.Circle{Center: origin, Radius: radius})

	seen := make(map[geometry.Point]bool)
	var all, closer []geometry.Point
	current := geometry.SquaredDistance(origin, target)
	for i := 0; i < len(crossings); i++ {
		for j := i + 1; j < len(crossings); j++ {
			mid := geometry.Midpoint(crossings[i], crossings[j])
			if seen[mid] || !course.Contains(mid) {
				continue
			}
			seen[mid] = true
			all = append(all, mid)
			if geometry.SquaredDistance(mid, target) < current {
				closer = append(closer, mid)
			}
		}
	}

	points := closer
	if len(points) == 0 {
		points = all
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%d boundary crossings at radius %.3f from %v: %w", len(crossings), radius, origin, ErrNoCandidates)
	}

	rank(points, target)
	if len(points) > g.maxCandidates {
		points = points[:g.maxCandidates]
	}
	return &CandidateSet{Origin: origin, Radius: radius, Points: points}, nil
}

// rank orders points by distance to target, breaking ties on X then Y.
func rank(points []geometry.Point, target geometry.Point) {
	sort.Slice(points, func(i, j int) bool {
		di := geometry.SquaredDistance(points[i], target)
		dj := geometry.SquaredDistance(points[j], target)
		if di != dj {
			return di < dj
		}
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})
}

// CandidateCache keeps the last candidate set of a game. Candidates are
// absolute aim points, so a set stays usable after the ball moves. With
// Strict set, a set is only served again from the origin and radius it was
// generated for.
type CandidateCache struct {
	Strict bool

	set *CandidateSet
}

// Get returns the cached set when the previous stroke stayed on the course.
// An inadmissible previous stroke drops the cache. A set with no point closer
// to the target than a new origin has been outrun and is not served.
func (c *CandidateCache) Get(origin, target geometry.Point, radius float64, previousAdmissible bool) (*CandidateSet, bool) {
	if !previousAdmissible {
		c.Invalidate()
		return nil, false
	}
	if c.set == nil {
		return nil, false
	}
	same := c.set.Origin == origin && c.set.Radius == radius
	if c.Strict && !same {
		return nil, false
	}
	if !same && !c.set.Ahead(origin, target) {
		return nil, false
	}
	return c.set, true
}

func (c *CandidateCache) Put(set *CandidateSet) {
	c.set = set
}

func (c *CandidateCache) Invalidate() {
	c.set = nil
}

// Ahead reports whether any point is strictly closer to the target than origin.
func (s *CandidateSet) Ahead(origin, target geometry.Point) bool {
	current := geometry.SquaredDistance(origin, target)
	for _, p := range s.Points {
		if geometry.SquaredDistance(p, target) < current {
			return true
		}
	}
	return false
}
