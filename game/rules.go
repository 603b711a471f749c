package game

import (
	"errors"
	"fmt"
)

var ErrInvalidRules = errors.New("invalid rules")

// Rules holds the engine constants a shot is played under. Variants of the
// game differ only in these values.
type Rules struct {
	MinPutterDist float64 `yaml:"min_putter_dist"`
	ExtraRoll     float64 `yaml:"extra_roll"`
	MaxDist       float64 `yaml:"max_dist"`
	TargetRadius  float64 `yaml:"target_radius"`
}

func (r Rules) Validate() error {
	switch {
	case r.MinPutterDist < 0:
		return fmt.Errorf("min_putter_dist %v is negative: %w", r.MinPutterDist, ErrInvalidRules)
	case r.ExtraRoll < 0:
		return fmt.Errorf("extra_roll %v is negative: %w", r.ExtraRoll, ErrInvalidRules)
	case r.MaxDist <= 0:
		return fmt.Errorf("max_dist %v must be positive: %w", r.MaxDist, ErrInvalidRules)
	case r.TargetRadius <= 0:
		return fmt.Errorf("target_radius %v must be positive: %w", r.TargetRadius, ErrInvalidRules)
	}
	return nil
}

// MaxReach is the longest shot a player of the given skill may command.
func (r Rules) MaxReach(skill float64) float64 {
	return r.MaxDist + skill
}

// IsPutt reports whether a shot of this distance is played without roll.
func (r Rules) IsPutt(distance float64) bool {
	return distance < r.MinPutterDist
}

// RollAdjustment converts a distance to cover into the distance to command:
// 1 within putting range, otherwise 1 + ExtraRoll.
func (r Rules) RollAdjustment(required float64) float64 {
	if r.IsPutt(required) {
		return 1.0
	}
	return 1.0 + r.ExtraRoll
}
