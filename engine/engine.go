package engine

import (
	"golf/experiments/metrics"
	"golf/game"
)

// Player answers the turns of one game.
type Player interface {
	// Decide returns the command for a turn and the metrics of deciding it, if collected
	Decide(turn game.Turn) (game.Shot, metrics.TurnMetric, error)
}

type Engine interface {
	// Run plays the hole until the ball is holed or the turn limit is reached
	Run() (gameMetric metrics.GameMetric, turnMetrics []metrics.TurnMetric, err error)
}
