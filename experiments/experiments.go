package experiments

import (
	"fmt"
	"slices"

	"golf/engine"
	"golf/experiments/metrics"
	"golf/game"
	"golf/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/stat"
)

const NumGames = 30 // Per agent config

var DefaultSkills = []float64{1, 2, 5, 10, 20, 50}

// Sweep plays every hole with one agent per skill level.
type Sweep struct {
	Name       string
	Holes      map[string]game.Hole
	Rules      game.Rules
	Skills     []float64
	Games      int
	Seed       uint64
	Trials     int
	Budget     float64
	BudgetExpr string
	Goroutines int
	OutDir     string // No records are written when empty
}

// Result summarises the games of one agent config on one hole.
type Result struct {
	Agent       int
	Hole        string
	Skill       float64
	Games       int
	Holed       int
	MeanStrokes float64
	StdStrokes  float64
	MeanResets  float64
}

func NewSkillSweep() Sweep {
	return Sweep{
		Name: "skill_sweep",
		Holes: map[string]game.Hole{
			"fairway": game.CreateFairway(),
			"dogleg":  game.CreateDogleg(),
		},
		Rules:  game.NewStandardRules(),
		Skills: DefaultSkills,
		Games:  NumGames,
		Seed:   1,
		OutDir: "experiments",
	}
}

func (s Sweep) agentOptions() []agent.Option {
	options := []agent.Option{
		agent.WithLogger(zerolog.Nop()),
		agent.WithRules(s.Rules),
		agent.WithMetrics(),
	}
	if s.Trials > 0 {
		options = append(options, agent.WithTrials(s.Trials))
	}
	if s.Budget > 0 {
		options = append(options, agent.WithBudget(s.Budget))
	}
	if s.BudgetExpr != "" {
		options = append(options, agent.WithBudgetExpr(s.BudgetExpr))
	}
	if s.Goroutines > 0 {
		options = append(options, agent.WithGoroutines(s.Goroutines))
	}
	return options
}

func (s Sweep) Run() ([]Result, error) {
	configs := []metrics.AgentConfig{}
	gameRecords := []metrics.GameRecord{}
	turnRecords := []metrics.TurnRecord{}
	results := []Result{}

	log.Info().Msgf("starting %s experiment...", s.Name)

	count := 0
	for ai, skill := range s.Skills {
		id := ai + 1
		a, err := agent.New(skill, s.Seed+uint64(id), s.agentOptions()...)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", id, err)
		}
		configs = append(configs, a.Config(id))

		for _, name := range sortedHoles(s.Holes) {
			strokes := make([]float64, 0, s.Games)
			resets := make([]float64, 0, s.Games)
			result := Result{Agent: id, Hole: name, Skill: skill, Games: s.Games}

			for i := 0; i < s.Games; i++ {
				count++
				seed := s.Seed*1_000_003 + uint64(count)
				e, err := engine.NewLocalEngine(name, s.Holes[name], s.Rules, skill, seed, engine.AgentPlayer{Agent: a})
				if err != nil {
					return nil, fmt.Errorf("hole %s: %w", name, err)
				}
				gameMetric, turnMetrics, err := e.Run()
				if err != nil {
					return nil, fmt.Errorf("hole %s game %d: %w", name, i+1, err)
				}

				gameRecords = append(gameRecords, metrics.GameRecord{ID: count, Agent: id, GameMetric: gameMetric})
				for _, tm := range turnMetrics {
					turnRecords = append(turnRecords, metrics.TurnRecord{Game: count, TurnMetric: tm})
				}
				strokes = append(strokes, float64(gameMetric.Strokes))
				resets = append(resets, float64(gameMetric.Resets))
				if gameMetric.Holed {
					result.Holed++
				}
			}

			result.MeanStrokes, result.StdStrokes = stat.MeanStdDev(strokes, nil)
			result.MeanResets = stat.Mean(resets, nil)
			results = append(results, result)

			log.Info().Msgf("skill %v on %s: %d of %d holed, %.2f ± %.2f strokes",
				skill, name, result.Holed, result.Games, result.MeanStrokes, result.StdStrokes)
		}
	}

	log.Info().Msgf("completed %s experiment", s.Name)

	if s.OutDir == "" {
		return results, nil
	}
	return results, s.store(configs, gameRecords, turnRecords)
}

func (s Sweep) store(configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, turnRecords []metrics.TurnRecord) error {
	writer, err := metrics.NewWriter(s.OutDir, s.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteTurnRecords(turnRecords); err != nil {
		return fmt.Errorf("failed to write turn records: %w", err)
	}
	log.Info().Msgf("stored turn records in %s", writer.Dir())
	return nil
}

func sortedHoles(holes map[string]game.Hole) []string {
	keys := maps.Keys(holes)
	slices.Sort(keys)
	return keys
}
