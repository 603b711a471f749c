package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golf/engine"
	"golf/experiments"
	"golf/game"
	"golf/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type agentFlags struct {
	skill      *float64
	seed       *uint64
	trials     *int
	budget     *float64
	budgetExpr *string
	goroutines *int
	rules      *string
}

func registerAgentFlags(fs *flag.FlagSet) agentFlags {
	return agentFlags{
		skill:      fs.Float64("skill", 10, "Player skill, larger is more accurate"),
		seed:       fs.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed"),
		trials:     fs.Int("trials", 100, "Simulated strokes per risk assessment"),
		budget:     fs.Float64("budget", 0.1, "Accepted fraction of strokes leaving the course"),
		budgetExpr: fs.String("budget-expr", "", "Risk budget expression over Turn, Score, Skill and DistanceToTarget"),
		goroutines: fs.Int("goroutines", 1, "Number of goroutines for parallel trials"),
		rules:      fs.String("rules", "", "YAML file overriding the standard rules"),
	}
}

func (f agentFlags) loadRules() (game.Rules, error) {
	if *f.rules == "" {
		return game.NewStandardRules(), nil
	}
	return game.LoadRules(*f.rules)
}

func (f agentFlags) newAgent(rules game.Rules) (*agent.Agent, error) {
	return agent.New(*f.skill, *f.seed,
		agent.WithRules(rules),
		agent.WithTrials(*f.trials),
		agent.WithBudget(*f.budget),
		agent.WithBudgetExpr(*f.budgetExpr),
		agent.WithGoroutines(*f.goroutines),
		agent.WithMetrics(),
	)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = serve(os.Args[2:])
	case "play":
		err = play(os.Args[2:])
	case "experiment":
		err = experiment(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: golf <serve|play|experiment> [flags]")
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	debug := fs.Bool("debug", false, "Log every assessment")
	af := registerAgentFlags(fs)
	fs.Parse(args)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	rules, err := af.loadRules()
	if err != nil {
		return err
	}
	// Fail on bad flags before listening
	if _, err := af.newAgent(rules); err != nil {
		return err
	}

	// Each game gets its own seed; the server calls the factory under its lock
	return agent.StartAgentServer(*addr, func() (*agent.Agent, error) {
		*af.seed++
		return af.newAgent(rules)
	})
}

func play(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	holeFile := fs.String("hole", "", "Course file; the built-in dogleg when empty")
	remote := fs.String("remote", "", "Agent server URL; a local agent when empty")
	af := registerAgentFlags(fs)
	fs.Parse(args)

	rules, err := af.loadRules()
	if err != nil {
		return err
	}

	name, hole := "dogleg", game.CreateDogleg()
	if *holeFile != "" {
		name = *holeFile
		if hole, err = game.LoadHole(*holeFile); err != nil {
			return err
		}
	}

	var player engine.Player
	if *remote != "" {
		player = engine.NewRemotePlayer(*remote, "")
	} else {
		a, err := af.newAgent(rules)
		if err != nil {
			return err
		}
		player = engine.AgentPlayer{Agent: a}
	}

	e, err := engine.NewLocalEngine(name, hole, rules, *af.skill, *af.seed+1, player)
	if err != nil {
		return err
	}
	gameMetric, turnMetrics, err := e.Run()
	if err != nil {
		return err
	}
	for _, tm := range turnMetrics {
		log.Info().Msgf("turn %d: %s, %d trials, %s", tm.Turn, tm.Tier, tm.Trials, tm.Duration)
	}
	log.Info().Msgf("%s: holed=%v strokes=%d resets=%d", name, gameMetric.Holed, gameMetric.Strokes, gameMetric.Resets)
	return nil
}

func experiment(args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	games := fs.Int("games", experiments.NumGames, "Games per skill and hole")
	out := fs.String("out", "experiments", "Directory for CSV records")
	af := registerAgentFlags(fs)
	fs.Parse(args)

	rules, err := af.loadRules()
	if err != nil {
		return err
	}

	sweep := experiments.NewSkillSweep()
	sweep.Rules = rules
	sweep.Games = *games
	sweep.Seed = *af.seed
	sweep.Trials = *af.trials
	sweep.Budget = *af.budget
	sweep.BudgetExpr = *af.budgetExpr
	sweep.Goroutines = *af.goroutines
	sweep.OutDir = *out

	_, err = sweep.Run()
	return err
}
