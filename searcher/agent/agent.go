package agent

import (
	"errors"
	"fmt"
	"math"

	"golf/experiments/metrics"
	"golf/game"
	"golf/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var (
	ErrInvalidSkill  = errors.New("skill must be positive")
	ErrInvalidCourse = errors.New("invalid course")
)

// Tier is the fallback level a shot was chosen at.
type Tier int

const (
	Greedy Tier = iota
	BestCandidate
	LeastBad
)

func (t Tier) String() string {
	switch t {
	case Greedy:
		return "greedy"
	case BestCandidate:
		return "best-candidate"
	case LeastBad:
		return "least-bad"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Decision is the shot chosen for a turn and how it was reached. Anomaly is
// set when geometry gave no alternative to an unsafe greedy shot.
type Decision struct {
	Shot     game.Shot
	Tier     Tier
	Anomaly  bool
	Coverage float64 // Fraction of the likely stopping region inside the course
	Verdict  searcher.Verdict
	Metric   metrics.TurnMetric
}

type Option func(a *Agent)

// Agent plays one golfer. It is not safe for concurrent use; a game is a
// sequence of Decide calls starting with a turn that has no previous stroke.
type Agent struct {
	skill         float64
	rules         game.Rules
	rng           *rand.Rand
	logger        zerolog.Logger
	trials        int
	budget        float64
	goroutines    int
	maxCandidates int
	strictCache   bool
	budgetSource  string
	metrics       metrics.Collector

	simulator *searcher.Simulator
	evaluator *searcher.Evaluator
	generator *searcher.Generator
	budgetFn  *searcher.BudgetExpr
	session   *session
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

func WithRules(rules game.Rules) Option {
	return func(a *Agent) {
		a.rules = rules
	}
}

func WithTrials(trials int) Option {
	return func(a *Agent) {
		a.trials = trials
	}
}

func WithBudget(budget float64) Option {
	return func(a *Agent) {
		a.budget = budget
	}
}

func WithGoroutines(goroutines int) Option {
	return func(a *Agent) {
		a.goroutines = goroutines
	}
}

func WithMaxCandidates(n int) Option {
	return func(a *Agent) {
		a.maxCandidates = n
	}
}

// WithStrictCache only reuses candidates from the position they were generated
// for.
func WithStrictCache() Option {
	return func(a *Agent) {
		a.strictCache = true
	}
}

// WithBudgetExpr replaces the fixed risk budget with an expression evaluated
// once per turn.
func WithBudgetExpr(source string) Option {
	return func(a *Agent) {
		a.budgetSource = source
	}
}

func WithMetrics() Option {
	return func(a *Agent) {
		a.metrics = metrics.NewCollector()
	}
}

func New(skill float64, seed uint64, options ...Option) (*Agent, error) {
	if !(skill > 0) || math.IsInf(skill, 1) {
		return nil, fmt.Errorf("skill %v: %w", skill, ErrInvalidSkill)
	}

	a := &Agent{ // Default values
		skill:         skill,
		rules:         game.NewStandardRules(),
		rng:           rand.New(rand.NewSource(seed)),
		logger:        log.Logger,
		trials:        searcher.DefaultTrials,
		budget:        searcher.DefaultBudget,
		goroutines:    1,
		maxCandidates: searcher.DefaultMaxCandidates,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}

	if err := a.rules.Validate(); err != nil {
		return nil, err
	}
	if a.budgetSource != "" {
		fn, err := searcher.CompileBudget(a.budgetSource)
		if err != nil {
			return nil, err
		}
		a.budgetFn = fn
	}

	a.simulator = searcher.NewSimulator(skill, a.rules)
	a.evaluator = searcher.NewEvaluator(a.simulator,
		searcher.WithTrials(a.trials),
		searcher.WithBudget(a.budget),
		searcher.WithGoroutines(a.goroutines),
		searcher.WithMetrics(a.metrics),
	)
	a.generator = searcher.NewGenerator(a.maxCandidates)
	return a, nil
}

func (a *Agent) Skill() float64 {
	return a.skill
}

func (a *Agent) Rules() game.Rules {
	return a.rules
}

// Config describes the agent for experiment records.
func (a *Agent) Config(id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         id,
		Skill:      a.skill,
		Trials:     a.evaluator.Trials(),
		Budget:     a.evaluator.Budget(),
		BudgetExpr: a.budgetSource,
		Goroutines: a.evaluator.Goroutines(),
	}
}

// Play is Decide reduced to the command sent to the host.
func (a *Agent) Play(turn game.Turn) (distance, angle float64, err error) {
	decision, err := a.Decide(turn)
	if err != nil {
		return 0, 0, err
	}
	return decision.Shot.Distance, decision.Shot.Angle, nil
}
