package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golf/geometry"
)

var ErrInvalidHole = errors.New("invalid hole")

// Hole is a course polygon with a start and a target, in the course file
// layout: {"map": [[x, y], ...], "start": [x, y], "target": [x, y]}.
type Hole struct {
	Course []geometry.Point `json:"map"`
	Start  geometry.Point   `json:"start"`
	Target geometry.Point   `json:"target"`
}

func LoadHole(path string) (Hole, error) {
	var hole Hole

	data, err := os.ReadFile(path)
	if err != nil {
		return hole, fmt.Errorf("failed to read hole file: %w", err)
	}
	if err := json.Unmarshal(data, &hole); err != nil {
		return hole, fmt.Errorf("failed to parse hole file %s: %w", path, err)
	}
	if err := hole.Validate(); err != nil {
		return hole, fmt.Errorf("hole file %s: %w", path, err)
	}
	return hole, nil
}

// Validate checks the course is a simple polygon holding both start and target.
func (h Hole) Validate() error {
	polygon, err := geometry.NewPolygon(h.Course)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHole, err)
	}
	if !polygon.Contains(h.Start) {
		return fmt.Errorf("start %v is off the course: %w", h.Start, ErrInvalidHole)
	}
	if !polygon.Contains(h.Target) {
		return fmt.Errorf("target %v is off the course: %w", h.Target, ErrInvalidHole)
	}
	return nil
}

// CreateFairway returns a straight open hole.
func CreateFairway() Hole {
	return Hole{
		Course: []geometry.Point{{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 1000}, {X: 0, Y: 1000}},
		Start:  geometry.Point{X: 100, Y: 500},
		Target: geometry.Point{X: 1900, Y: 500},
	}
}

// CreateDogleg returns a narrow L-shaped hole whose target cannot be reached
// in a straight line from the start.
func CreateDogleg() Hole {
	return Hole{
		Course: []geometry.Point{
			{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 600},
			{X: 240, Y: 600}, {X: 240, Y: 60}, {X: 0, Y: 60},
		},
		Start:  geometry.Point{X: 30, Y: 30},
		Target: geometry.Point{X: 320, Y: 570},
	}
}
