package agent

import (
	"errors"
	"math"

	"golf/game"
	"golf/geometry"
	"golf/searcher"
)

// Decide picks the shot for a turn, trying in order: the greedy shot at the
// target, the best safe shot at a candidate aim point of the same length, and
// finally a shorter shot at the closest candidate.
func (a *Agent) Decide(turn game.Turn) (Decision, error) {
	if turn.IsFirst() || a.session == nil {
		s, err := newSession(turn.Course, a.strictCache)
		if err != nil {
			return Decision{}, err
		}
		a.session = s
	}
	s := a.session
	s.turn++
	a.metrics.Start(s.turn)

	evaluator := a.turnEvaluator(turn)
	current := turn.Current

	// Greedy
	greedy := a.aim(current, turn.Target)
	verdict := evaluator.Assess(a.rng, greedy, current, s.course)
	if verdict.Safe {
		return a.decide(current, Decision{Shot: greedy, Tier: Greedy, Verdict: verdict}), nil
	}
	a.logger.Debug().Msgf("greedy shot %.2f@%.3f failed %d of %d trials", greedy.Distance, greedy.Angle, verdict.Failures, verdict.Trials)

	previousAdmissible := !turn.WasReset()
	candidates, cached := s.cache.Get(current, turn.Target, greedy.Distance, previousAdmissible)
	if !cached {
		var err error
		candidates, err = a.generator.Generate(s.course, current, turn.Target, greedy.Distance)
		if errors.Is(err, searcher.ErrNoCandidates) {
			a.logger.Error().Err(err).Int("turn", s.turn).Msg("anomaly: unsafe greedy shot without alternatives")
			return a.decide(current, Decision{Shot: greedy, Tier: Greedy, Anomaly: true, Verdict: verdict}), nil
		}
		if err != nil {
			return Decision{}, err
		}
		s.cache.Put(candidates)
	}
	a.metrics.SetCandidates(len(candidates.Points), cached)

	// Best candidate
	for _, point := range candidates.Points {
		shot := game.Shot{Distance: greedy.Distance, Angle: geometry.Bearing(current, point)}
		verdict = evaluator.Assess(a.rng, shot, current, s.course)
		if verdict.Safe {
			return a.decide(current, Decision{Shot: shot, Tier: BestCandidate, Verdict: verdict}), nil
		}
	}

	// Least bad
	return a.decide(current, Decision{Shot: a.aim(current, candidates.Points[0]), Tier: LeastBad}), nil
}

// aim is the shot that stops at the point, within reach.
func (a *Agent) aim(from, to geometry.Point) game.Shot {
	required := geometry.Distance(from, to)
	distance := math.Min(a.rules.MaxReach(a.skill), required/a.rules.RollAdjustment(required))
	return game.Shot{Distance: distance, Angle: geometry.Bearing(from, to)}
}

func (a *Agent) turnEvaluator(turn game.Turn) *searcher.Evaluator {
	if a.budgetFn == nil {
		return a.evaluator
	}
	budget, err := a.budgetFn.Eval(searcher.BudgetEnv{
		Turn:             a.session.turn,
		Score:            turn.Score,
		Skill:            a.skill,
		DistanceToTarget: geometry.Distance(turn.Current, turn.Target),
	})
	if err != nil {
		a.logger.Warn().Err(err).Msg("falling back to the fixed risk budget")
		return a.evaluator
	}
	return a.evaluator.Budgeted(budget)
}

func (a *Agent) decide(origin geometry.Point, d Decision) Decision {
	s := a.session
	d.Coverage = geometry.Coverage(s.course.Polygon(), a.simulator.LandingRegion(d.Shot, origin))
	d.Metric = a.metrics.Complete(d.Tier.String(), d.Anomaly)

	a.logger.Info().
		Int("turn", s.turn).
		Str("tier", d.Tier.String()).
		Float64("distance", d.Shot.Distance).
		Float64("angle", d.Shot.Angle).
		Int("failures", d.Verdict.Failures).
		Float64("coverage", d.Coverage).
		Bool("anomaly", d.Anomaly).
		Msg("decided shot")
	return d
}
