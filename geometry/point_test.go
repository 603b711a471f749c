package geometry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestDistance(t *testing.T) {
	t.Run("distance is symmetric and zero on the diagonal", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 500; i++ {
			a := Point{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
			b := Point{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
			require.Equal(t, Distance(a, b), Distance(b, a))
			require.Equal(t, 0.0, Distance(a, a))
			require.InDelta(t, Distance(a, b)*Distance(a, b), SquaredDistance(a, b), 1e-6)
		}
	})

	t.Run("3-4-5 triangle", func(t *testing.T) {
		require.Equal(t, 5.0, Distance(Point{1, 1}, Point{4, 5}))
		require.Equal(t, 25.0, SquaredDistance(Point{1, 1}, Point{4, 5}))
	})
}

func TestBearing(t *testing.T) {
	t.Run("distinguishes all four quadrants", func(t *testing.T) {
		origin := Point{0, 0}
		require.InDelta(t, math.Pi/4, Bearing(origin, Point{1, 1}), 1e-12)
		require.InDelta(t, 3*math.Pi/4, Bearing(origin, Point{-1, 1}), 1e-12)
		require.InDelta(t, -3*math.Pi/4, Bearing(origin, Point{-1, -1}), 1e-12)
		require.InDelta(t, -math.Pi/4, Bearing(origin, Point{1, -1}), 1e-12)
	})

	t.Run("polar inverts bearing and distance", func(t *testing.T) {
		from := Point{10, -3}
		to := Point{-7, 22}
		got := Polar(from, Distance(from, to), Bearing(from, to))
		require.InDelta(t, to.X, got.X, 1e-9)
		require.InDelta(t, to.Y, got.Y, 1e-9)
	})
}

func TestSegmentDistance(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	require.Equal(t, 3.0, SegmentDistance(a, b, Point{5, 3}), "Projection inside the segment")
	require.Equal(t, 5.0, SegmentDistance(a, b, Point{13, 4}), "Projection past the end")
	require.Equal(t, 5.0, SegmentDistance(a, a, Point{3, 4}), "Degenerate segment")
}

func TestPointJSON(t *testing.T) {
	data, err := json.Marshal(Point{1.5, -2})
	require.NoError(t, err)
	require.JSONEq(t, `[1.5, -2]`, string(data))

	var p Point
	require.NoError(t, json.Unmarshal([]byte(`[3, 4]`), &p))
	require.Equal(t, Point{3, 4}, p)

	require.Error(t, json.Unmarshal([]byte(`{"x": 1}`), &p))
}
