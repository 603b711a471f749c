package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

const sectorSteps = 32

// AnnularSector approximates the ring sector between radii inner and outer,
// spanning heading ± halfWidth around center, as a polygon.
func AnnularSector(center Point, heading, halfWidth, inner, outer float64) []Point {
	inner = math.Max(0, inner)
	outer = math.Max(inner, outer)
	start := heading - halfWidth
	step := 2 * halfWidth / sectorSteps

	region := make([]Point, 0, 2*(sectorSteps+1))
	for i := 0; i <= sectorSteps; i++ {
		region = append(region, Polar(center, outer, start+float64(i)*step))
	}
	if inner == 0 {
		return append(region, center)
	}
	for i := sectorSteps; i >= 0; i-- {
		region = append(region, Polar(center, inner, start+float64(i)*step))
	}
	return region
}

// Coverage returns the fraction of region's area lying inside the course.
// A region without area is judged by its first vertex.
func Coverage(course *Polygon, region []Point) float64 {
	if len(region) == 0 {
		return 0
	}
	total := math.Abs(signedArea(region))
	if total == 0 {
		if course.Contains(region[0]) {
			return 1
		}
		return 0
	}

	subject := polyclip.Polygon{toContour(region)}
	clipping := polyclip.Polygon{toContour(course.vertices)}
	result := subject.Construct(polyclip.INTERSECTION, clipping)

	covered := 0.0
	for _, contour := range result {
		covered += math.Abs(contourArea(contour))
	}
	return math.Min(1, covered/total)
}

func toContour(points []Point) polyclip.Contour {
	contour := make(polyclip.Contour, len(points))
	for i, p := range points {
		contour[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return contour
}

func contourArea(contour polyclip.Contour) float64 {
	points := make([]Point, len(contour))
	for i, p := range contour {
		points[i] = Point{X: p.X, Y: p.Y}
	}
	return signedArea(points)
}
