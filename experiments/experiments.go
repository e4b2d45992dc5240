package experiments

import (
	"context"
	"fmt"
	"time"

	"punter/engine"
	"punter/experiments/metrics"
	"punter/game"
	"punter/searcher"
	"punter/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 10 // Per match up
	TimeBudget = 50 * time.Millisecond
)

// Experiment pits strategies against each other on one map. Every ordered pair of distinct
// strategies is a match up, so each strategy moves first as often as second.
type Experiment struct {
	Name       string
	MapName    string
	Map        *game.Map
	Settings   game.Settings
	Strategies []string
	Games      int
	Budget     time.Duration
	Seed       uint64
	Parallel   int    // matches played at once
	Out        string // CSV root directory, none if empty
}

type Result struct {
	Dir   string
	Wins  map[string]int
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

type match struct {
	strategies []string
	seeds      []uint64
}

func Run(ctx context.Context, exp Experiment) (Result, error) {
	if exp.Games <= 0 {
		exp.Games = NumGames
	}
	if exp.Budget <= 0 {
		exp.Budget = TimeBudget
	}
	if exp.Parallel <= 0 {
		exp.Parallel = 1
	}
	for _, name := range exp.Strategies {
		if utils.FindIndex(searcher.Names(), name) < 0 {
			return Result{}, fmt.Errorf("unknown strategy %q", name)
		}
	}

	matches := schedule(exp)
	log.Info().Msgf("starting %s experiment: %d games on %s", exp.Name, len(matches), exp.MapName)

	games := make([]metrics.GameRecord, len(matches))
	moves := make([][]metrics.MoveRecord, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exp.Parallel)
	for i, m := range matches {
		g.Go(func() error {
			record, mms, err := runGame(ctx, exp, m)
			if err != nil {
				return fmt.Errorf("game %d (%v): %w", i+1, m.strategies, err)
			}
			games[i] = record
			for _, mm := range mms {
				moves[i] = append(moves[i], metrics.MoveRecord{Game: record.ID, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d of %d between %v with scores %v", i+1, len(matches), m.strategies, record.Scores)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Wins: make(map[string]int), Games: games}
	for i, record := range games {
		if winner := winner(record.Scores); winner >= 0 {
			result.Wins[record.Strategies[winner]]++
		}
		result.Moves = append(result.Moves, moves[i]...)
	}
	log.Info().Msgf("completed %s experiment: wins %v", exp.Name, result.Wins)

	if exp.Out == "" {
		return result, nil
	}
	writer, err := metrics.NewWriter(exp.Out, exp.Name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return Result{}, err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return Result{}, err
	}
	log.Info().Msg("stored move records")
	result.Dir = writer.Dir()
	return result, nil
}

// schedule lists the games of every match up. A single strategy plays itself.
func schedule(exp Experiment) []match {
	rng := rand.New(rand.NewSource(exp.Seed))
	var matchUps [][]string
	for i, a := range exp.Strategies {
		for j, b := range exp.Strategies {
			if i != j {
				matchUps = append(matchUps, []string{a, b})
			}
		}
	}
	if len(exp.Strategies) == 1 {
		matchUps = append(matchUps, []string{exp.Strategies[0], exp.Strategies[0]})
	}

	var matches []match
	for _, matchUp := range matchUps {
		for n := 0; n < exp.Games; n++ {
			matches = append(matches, match{
				strategies: matchUp,
				seeds:      []uint64{rng.Uint64(), rng.Uint64()},
			})
		}
	}
	return matches
}

func runGame(ctx context.Context, exp Experiment, m match) (metrics.GameRecord, []metrics.MoveMetric, error) {
	punters := make([]engine.Connector, len(m.strategies))
	for p, name := range m.strategies {
		strategy, err := searcher.Lookup(name, m.seeds[p])
		if err != nil {
			return metrics.GameRecord{}, nil, err
		}
		punters[p] = engine.NewLocal(name, searcher.WithStrategy(strategy), searcher.WithBudget(exp.Budget))
	}

	e := engine.NewEngine(exp.MapName, exp.Map, punters, engine.WithSettings(exp.Settings))
	if _, err := e.Run(ctx); err != nil {
		return metrics.GameRecord{}, nil, err
	}
	gameMetric, moveMetrics := e.Metrics()
	return metrics.GameRecord{Strategies: m.strategies, GameMetric: gameMetric}, moveMetrics, nil
}

// winner is the punter with the strictly highest score, or -1 on a tie.
func winner(scores []int) int {
	winner, tied := -1, false
	for p, s := range scores {
		switch {
		case winner < 0 || s > scores[winner]:
			winner, tied = p, false
		case s == scores[winner]:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return winner
}
