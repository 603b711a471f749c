package engine

import (
	"fmt"
	"math"
	"time"

	"golf/experiments/metrics"
	"golf/game"
	"golf/geometry"
	"golf/meta"
	"golf/searcher"
	"golf/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// LocalEngine plays a hole with real stroke outcomes drawn from the same
// model the agent plans with.
type LocalEngine struct {
	name      string
	hole      game.Hole
	rules     game.Rules
	course    *geometry.Index
	simulator *searcher.Simulator
	rng       *rand.Rand
	player    Player
	maxTurns  int
}

func NewLocalEngine(name string, hole game.Hole, rules game.Rules, skill float64, seed uint64, player Player) (*LocalEngine, error) {
	if err := hole.Validate(); err != nil {
		return nil, err
	}
	course, err := geometry.Prepare(hole.Course)
	if err != nil {
		return nil, err
	}
	return &LocalEngine{
		name:      name,
		hole:      hole,
		rules:     rules,
		course:    course,
		simulator: searcher.NewSimulator(skill, rules),
		rng:       rand.New(rand.NewSource(seed)),
		player:    player,
		maxTurns:  meta.MaxTurns,
	}, nil
}

// Run executes strokes until the ball is holed. A stroke that leaves the
// course counts but the ball is returned to where it was played from.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.TurnMetric, error) {
	gameMetric := metrics.GameMetric{
		Hole:      e.name,
		Skill:     e.simulator.Skill(),
		StartTime: time.Now(),
	}
	var turnMetrics []metrics.TurnMetric

	turn := game.Turn{
		Course:  e.hole.Course,
		Target:  e.hole.Target,
		Current: e.hole.Start,
	}

	log.Info().Msgf("starting hole %s from %v", e.name, e.hole.Start)

	for turn.Score < e.maxTurns && !gameMetric.Holed {
		shot, turnMetric, err := e.player.Decide(turn)
		if err != nil {
			return gameMetric, turnMetrics, fmt.Errorf("turn %d: %w", turn.Score+1, err)
		}
		turnMetrics = append(turnMetrics, turnMetric)

		shot.Distance = math.Max(0, math.Min(shot.Distance, e.rules.MaxReach(e.simulator.Skill())))
		outcome := e.simulator.Simulate(e.rng, shot, turn.Current, e.course)

		origin := turn.Current
		turn.Score++
		if outcome.Admissible {
			gameMetric.Holed = e.holed(shot, origin, outcome)
			turn.Current = outcome.Final
		} else {
			gameMetric.Resets++
			log.Debug().Msgf("stroke %d left the course at %v, replaying from %v", turn.Score, outcome.Final, origin)
		}

		admissible := outcome.Admissible
		landing := outcome.Landing
		turn.Previous = &origin
		turn.PreviousLanding = &landing
		turn.PreviousAdmissible = &admissible
	}

	gameMetric.Strokes = turn.Score
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	if gameMetric.Holed {
		log.Info().Msgf("holed %s in %d strokes (%d reset)", e.name, gameMetric.Strokes, gameMetric.Resets)
	} else {
		log.Info().Msgf("stopped %s after %d strokes without holing", e.name, gameMetric.Strokes)
	}
	return gameMetric, turnMetrics, nil
}

// holed reports whether the ball passed over the target while on the ground:
// the whole path of a putt, or the roll after a full shot lands.
func (e *LocalEngine) holed(shot game.Shot, origin geometry.Point, outcome searcher.Outcome) bool {
	start := outcome.Landing
	if e.rules.IsPutt(shot.Distance) {
		start = origin
	}
	return geometry.SegmentDistance(start, outcome.Final, e.hole.Target) <= e.rules.TargetRadius
}

// AgentPlayer adapts an in-process agent.
type AgentPlayer struct {
	Agent *agent.Agent
}

func (p AgentPlayer) Decide(turn game.Turn) (game.Shot, metrics.TurnMetric, error) {
	decision, err := p.Agent.Decide(turn)
	if err != nil {
		return game.Shot{}, metrics.TurnMetric{}, err
	}
	return decision.Shot, decision.Metric, nil
}
