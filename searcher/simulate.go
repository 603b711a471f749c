package searcher

import (
	"golf/game"
	"golf/geometry"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Outcome is where one simulated stroke comes down and where it stops.
type Outcome struct {
	Landing    geometry.Point
	Final      geometry.Point
	Admissible bool
}

// Simulator draws stroke outcomes for a player of fixed skill. It keeps no
// state between calls; all randomness comes from the caller's source.
type Simulator struct {
	skill float64
	rules game.Rules
}

func NewSimulator(skill float64, rules game.Rules) *Simulator {
	return &Simulator{skill: skill, rules: rules}
}

func (s *Simulator) Skill() float64 {
	return s.skill
}

func (s *Simulator) Rules() game.Rules {
	return s.rules
}

// DistanceSigma is the standard deviation of the carried distance.
func (s *Simulator) DistanceSigma(distance float64) float64 {
	return distance / s.skill
}

// AngleSigma is the standard deviation of the direction, in radians.
func (s *Simulator) AngleSigma() float64 {
	return angleSpread / s.skill
}

// Simulate plays one stroke. Putts stop where they land; full shots roll on
// along the same line by ExtraRoll of the carried distance.
func (s *Simulator) Simulate(rng *rand.Rand, shot game.Shot, origin geometry.Point, course geometry.Course) Outcome {
	distance := distuv.Normal{Mu: shot.Distance, Sigma: s.DistanceSigma(shot.Distance), Src: rng}.Rand()
	angle := distuv.Normal{Mu: shot.Angle, Sigma: s.AngleSigma(), Src: rng}.Rand()
	return s.Resolve(shot, origin, distance, angle, course)
}

// Resolve places a stroke whose actual distance and angle are already known.
func (s *Simulator) Resolve(shot game.Shot, origin geometry.Point, distance, angle float64, course geometry.Course) Outcome {
	landing := geometry.Polar(origin, distance, angle)
	final := landing
	if !s.rules.IsPutt(shot.Distance) {
		final = geometry.Polar(origin, distance*(1+s.rules.ExtraRoll), angle)
	}
	return Outcome{
		Landing:    landing,
		Final:      final,
		Admissible: course.Contains(landing) && course.Contains(final),
	}
}

// LandingRegion is the two-sigma region the ball is expected to stop in.
func (s *Simulator) LandingRegion(shot game.Shot, origin geometry.Point) []geometry.Point {
	spread := 2 * s.DistanceSigma(shot.Distance)
	inner, outer := shot.Distance-spread, shot.Distance+spread
	if !s.rules.IsPutt(shot.Distance) {
		inner *= 1 + s.rules.ExtraRoll
		outer *= 1 + s.rules.ExtraRoll
	}
	return geometry.AnnularSector(origin, shot.Angle, 2*s.AngleSigma(), inner, outer)
}
