package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func square(size float64) []Point {
	return []Point{{0, 0}, {size, 0}, {size, size}, {0, size}}
}

// dogleg is an L-shaped fairway: a corridor along the x axis that turns north.
func dogleg() []Point {
	return []Point{{0, 0}, {400, 0}, {400, 600}, {240, 600}, {240, 60}, {0, 60}}
}

func TestNewPolygon(t *testing.T) {
	t.Run("accepts a square and drops the closing vertex", func(t *testing.T) {
		p, err := NewPolygon(append(square(10), Point{0, 0}))
		require.NoError(t, err)
		require.Len(t, p.Vertices(), 4, "Closing vertex should be dropped")
		require.Equal(t, 100.0, p.Area())
	})

	t.Run("rejects fewer than three vertices", func(t *testing.T) {
		_, err := NewPolygon([]Point{{0, 0}, {1, 1}, {1, 1}})
		require.ErrorIs(t, err, ErrDegeneratePolygon)
	})

	t.Run("rejects collinear vertices", func(t *testing.T) {
		_, err := NewPolygon([]Point{{0, 0}, {1, 0}, {2, 0}})
		require.ErrorIs(t, err, ErrDegeneratePolygon)
	})

	t.Run("rejects a bow-tie", func(t *testing.T) {
		_, err := NewPolygon([]Point{{0, 0}, {10, 10}, {10, 0}, {0, 10}})
		require.ErrorIs(t, err, ErrSelfIntersecting)
	})

	t.Run("accepts a concave dogleg", func(t *testing.T) {
		p, err := NewPolygon(dogleg())
		require.NoError(t, err)
		lo, hi := p.BoundingBox()
		require.Equal(t, Point{0, 0}, lo)
		require.Equal(t, Point{400, 600}, hi)
	})
}

func TestPointInPolygon(t *testing.T) {
	t.Run("strictly interior points of convex polygons are inside", func(t *testing.T) {
		convex := [][]Point{
			square(100),
			{{0, 0}, {50, -20}, {100, 0}, {80, 60}, {20, 60}},
			{{-5, -5}, {5, -5}, {0, 8}},
		}
		rng := rand.New(rand.NewSource(7))
		for _, vertices := range convex {
			p, err := NewPolygon(vertices)
			require.NoError(t, err)
			for i := 0; i < 200; i++ {
				// Convex combination of three vertices with positive weights
				w := []float64{rng.Float64() + 0.01, rng.Float64() + 0.01, rng.Float64() + 0.01}
				sum := w[0] + w[1] + w[2]
				a, b, c := vertices[0], vertices[1], vertices[2]
				pt := Point{
					X: (w[0]*a.X + w[1]*b.X + w[2]*c.X) / sum,
					Y: (w[0]*a.Y + w[1]*b.Y + w[2]*c.Y) / sum,
				}
				require.True(t, p.Contains(pt), "Interior point %v should be inside", pt)
			}
		}
	})

	t.Run("points outside the bounding box are outside", func(t *testing.T) {
		p, err := NewPolygon([]Point{{0, 0}, {50, -20}, {100, 0}, {80, 60}, {20, 60}})
		require.NoError(t, err)
		lo, hi := p.BoundingBox()
		rng := rand.New(rand.NewSource(11))
		for i := 0; i < 200; i++ {
			pt := Point{X: lo.X - 1 - rng.Float64()*100, Y: rng.Float64()*200 - 100}
			require.False(t, p.Contains(pt))
			pt = Point{X: rng.Float64()*200 - 100, Y: hi.Y + 1 + rng.Float64()*100}
			require.False(t, p.Contains(pt))
		}
	})

	t.Run("left and bottom edges are inside, right and top edges are outside", func(t *testing.T) {
		vertices := square(10)
		require.True(t, PointInPolygon(vertices, 0, 5), "Left edge")
		require.True(t, PointInPolygon(vertices, 5, 0), "Bottom edge")
		require.False(t, PointInPolygon(vertices, 10, 5), "Right edge")
		require.False(t, PointInPolygon(vertices, 5, 10), "Top edge")
	})

	t.Run("the notch of a dogleg is outside", func(t *testing.T) {
		p, err := NewPolygon(dogleg())
		require.NoError(t, err)
		require.False(t, p.Contains(Point{100, 300}))
		require.True(t, p.Contains(Point{100, 30}))
		require.True(t, p.Contains(Point{300, 500}))
	})
}

func TestIntersectCircle(t *testing.T) {
	t.Run("circle centred in a square crosses each side twice", func(t *testing.T) {
		p, err := NewPolygon(square(10))
		require.NoError(t, err)
		points := p.IntersectCircle(Circle{Center: Point{5, 5}, Radius: 6})
		require.Len(t, points, 8)
		for _, pt := range points {
			require.InDelta(t, 6, Distance(Point{5, 5}, pt), 1e-9)
		}
	})

	t.Run("circle inside the course does not touch the boundary", func(t *testing.T) {
		p, err := NewPolygon(square(10))
		require.NoError(t, err)
		require.Empty(t, p.IntersectCircle(Circle{Center: Point{5, 5}, Radius: 2}))
	})

	t.Run("a circle through a vertex reports it once", func(t *testing.T) {
		p, err := NewPolygon(square(10))
		require.NoError(t, err)
		points := p.IntersectCircle(Circle{Center: Point{0, 0}, Radius: 10})
		// (10, 0) and (0, 10) are vertices shared by two edges each
		require.Len(t, points, 2)
	})

	t.Run("a vertex reached with rounding error is reported once", func(t *testing.T) {
		v := Point{0.1, 0.7}
		p, err := NewPolygon([]Point{v, {2, 2}, {2, -2}})
		require.NoError(t, err)
		points := p.IntersectCircle(Circle{Center: Point{0, 0}, Radius: math.Hypot(v.X, v.Y)})
		require.Len(t, points, 2)
		require.Contains(t, points, v)
		require.Greater(t, Distance(points[0], points[1]), 0.1)

		index, err := Prepare(p.Vertices())
		require.NoError(t, err)
		require.ElementsMatch(t, points, index.IntersectCircle(Circle{Center: Point{0, 0}, Radius: math.Hypot(v.X, v.Y)}))
	})

	t.Run("reach circle in a dogleg meets the corridor walls", func(t *testing.T) {
		p, err := NewPolygon(dogleg())
		require.NoError(t, err)
		points := p.IntersectCircle(Circle{Center: Point{30, 30}, Radius: 210})
		require.Len(t, points, 2)
		x := 30 + math.Sqrt(210*210-30*30)
		require.InDelta(t, x, points[0].X, 1e-9)
		require.InDelta(t, 0, points[0].Y, 1e-9)
		require.InDelta(t, x, points[1].X, 1e-9)
		require.InDelta(t, 60, points[1].Y, 1e-9)
	})
}
