// meta/meta.go
package meta

// MinPutterDist is the shot distance below which a stroke is a putt and does not roll.
const MinPutterDist = 20.0

// ExtraRoll is the fraction of the carried distance a full shot rolls after landing.
const ExtraRoll = 0.1

// MaxDist is the longest carry before skill is added.
const MaxDist = 200.0

// TargetRadius is how close the ball must pass to the target to be holed.
const TargetRadius = 0.054

// Trials is the number of simulated strokes per risk assessment.
const Trials = 100

// RiskBudget is the accepted fraction of inadmissible simulated strokes.
const RiskBudget = 0.10

// MaxCandidates caps the alternative aim points tested per turn.
const MaxCandidates = 64

// MaxTurns ends a hole that has not been finished.
const MaxTurns = 100
