package searcher

import (
	"sync"

	"golf/experiments/metrics"
	"golf/game"
	"golf/geometry"

	"golang.org/x/exp/rand"
)

type Option func(e *Evaluator)

// Verdict is the result of assessing one shot. Trials counts the simulations
// actually run, which is fewer than requested when the shot was rejected early.
type Verdict struct {
	Safe     bool
	Trials   int
	Failures int
}

func (v Verdict) FailureRate() float64 {
	if v.Trials == 0 {
		return 0
	}
	return float64(v.Failures) / float64(v.Trials)
}

// Evaluator decides whether a shot keeps the chance of leaving the course
// within the risk budget, by Monte Carlo simulation.
type Evaluator struct {
	simulator  *Simulator
	trials     int
	budget     float64
	goroutines int
	metrics    metrics.Collector
}

func WithTrials(trials int) Option {
	return func(e *Evaluator) {
		if trials > 0 {
			e.trials = trials
		}
	}
}

func WithBudget(budget float64) Option {
	return func(e *Evaluator) {
		if budget >= 0 && budget <= 1 {
			e.budget = budget
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(e *Evaluator) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(e *Evaluator) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

func NewEvaluator(simulator *Simulator, options ...Option) *Evaluator {
	e := &Evaluator{ // Default values
		simulator:  simulator,
		trials:     DefaultTrials,
		budget:     DefaultBudget,
		goroutines: 1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Evaluator) Trials() int {
	return e.trials
}

func (e *Evaluator) Budget() float64 {
	return e.budget
}

func (e *Evaluator) Goroutines() int {
	return e.goroutines
}

// Tolerance is the number of failed trials a safe shot may have.
func (e *Evaluator) Tolerance() float64 {
	return float64(e.trials) * e.budget
}

// Budgeted returns a copy of the evaluator with a different risk budget.
func (e *Evaluator) Budgeted(budget float64) *Evaluator {
	c := *e
	WithBudget(budget)(&c)
	return &c
}

func (e *Evaluator) IsSafe(rng *rand.Rand, shot game.Shot, origin geometry.Point, course geometry.Course) bool {
	return e.Assess(rng, shot, origin, course).Safe
}

// Assess simulates the shot and stops as soon as the failures exceed the
// tolerance.
func (e *Evaluator) Assess(rng *rand.Rand, shot game.Shot, origin geometry.Point, course geometry.Course) Verdict {
	e.metrics.AddAssessment()

	var verdict Verdict
	if e.goroutines <= 1 || e.trials < e.goroutines {
		verdict = e.sequential(rng, shot, origin, course)
	} else {
		verdict = e.parallel(rng, shot, origin, course)
	}
	verdict.Safe = float64(verdict.Failures) <= e.Tolerance()

	e.metrics.AddTrials(verdict.Trials)
	return verdict
}

func (e *Evaluator) sequential(rng *rand.Rand, shot game.Shot, origin geometry.Point, course geometry.Course) Verdict {
	tolerance := e.Tolerance()
	var v Verdict
	for v.Trials < e.trials {
		v.Trials++
		if !e.simulator.Simulate(rng, shot, origin, course).Admissible {
			v.Failures++
			if float64(v.Failures) > tolerance {
				break
			}
		}
	}
	return v
}

// parallel splits the trials across goroutines. Each worker draws from its
// own source seeded from rng and returns its own counts, which are summed
// afterwards. A worker whose failures alone exceed the tolerance stops the
// others.
func (e *Evaluator) parallel(rng *rand.Rand, shot game.Shot, origin geometry.Point, course geometry.Course) Verdict {
	tolerance := e.Tolerance()
	sources := make([]*rand.Rand, e.goroutines)
	for i := range sources {
		sources[i] = rand.New(rand.NewSource(rng.Uint64()))
	}

	results := make([]Verdict, e.goroutines)
	done := make(chan any)
	var once sync.Once
	var wg sync.WaitGroup

	for i, src := range sources {
		share := e.trials / e.goroutines
		if i < e.trials%e.goroutines {
			share++
		}

		wg.Add(1)
		go func(i int, src *rand.Rand, share int) {
			defer wg.Done()

			v := &results[i]
			for v.Trials < share {
				select {
				case <-done:
					return
				default:
				}

				v.Trials++
				if !e.simulator.Simulate(src, shot, origin, course).Admissible {
					v.Failures++
					if float64(v.Failures) > tolerance {
						once.Do(func() { close(done) })
						return
					}
				}
			}
		}(i, src, share)
	}
	wg.Wait()

	var total Verdict
	for _, v := range results {
		total.Trials += v.Trials
		total.Failures += v.Failures
	}
	return total
}
