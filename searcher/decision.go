package searcher

import (
	"context"
	"time"

	"punter/experiments/metrics"
	"punter/game"
	"punter/meta"
	"punter/utils"

	"github.com/rs/zerolog/log"
)

type Option func(d *Decider)

// Decider picks one move per turn within a wall-clock budget by racing a chokepoint search
// against a ranking strategy.
type Decider struct {
	budget      time.Duration
	strategy    Strategy
	chokepoints bool
	metrics     metrics.Collector
	last        metrics.SearchMetric
}

func WithBudget(budget time.Duration) Option {
	return func(d *Decider) {
		if budget > 0 {
			d.budget = budget
		}
	}
}

func WithStrategy(strategy Strategy) Option {
	return func(d *Decider) {
		if strategy != nil {
			d.strategy = strategy
		}
	}
}

// WithChokepoints toggles the background chokepoint search.
func WithChokepoints(enabled bool) Option {
	return func(d *Decider) {
		d.chokepoints = enabled
	}
}

func WithMetrics() Option {
	return func(d *Decider) {
		d.metrics = metrics.NewCollector()
	}
}

func NewDecider(options ...Option) *Decider {
	d := &Decider{ // Default values
		budget:      meta.TurnBudget,
		strategy:    Lightning,
		chokepoints: true,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

type chokepointMove struct {
	move  game.Move
	found bool
	pairs int
}

// Decide returns the move for the punter to play on b. It never returns later than the budget
// plus the time the strategy needs, and falls back to a pass when nothing can be claimed.
func (d *Decider) Decide(ctx context.Context, b *Board) game.Move {
	d.metrics.Start(d.budget)
	ctx, cancel := context.WithTimeout(ctx, d.budget)
	defer cancel()

	// Buffered so an abandoned search can still deliver and exit.
	found := make(chan chokepointMove, 1)
	if d.chokepoints {
		go func() {
			found <- searchChokepoints(ctx, b)
		}()
	}

	ranked := d.strategy(b)
	d.metrics.AddCandidates(len(ranked))

	move := game.Pass(b.Me)
	if len(ranked) > 0 {
		move = ranked[0].Move
	}

	if d.chokepoints {
		if c, ok := awaitChokepoint(ctx, found); ok {
			d.metrics.AddPairs(c.pairs)
			if c.found {
				log.Debug().Msgf("playing chokepoint %s", c.move)
				move = c.move
			}
			d.metrics.SetChokepoint(c.found, false)
		} else {
			log.Debug().Msg("chokepoint search missed the deadline")
			d.metrics.SetChokepoint(false, true)
		}
	}

	d.last = d.metrics.Complete()
	return move
}

// awaitChokepoint takes a search result that is already in even if the deadline has passed too,
// and otherwise waits for whichever comes first.
func awaitChokepoint(ctx context.Context, found <-chan chokepointMove) (chokepointMove, bool) {
	select {
	case c := <-found:
		return c, true
	default:
	}
	select {
	case c := <-found:
		return c, true
	case <-ctx.Done():
		return chokepointMove{}, false
	}
}

// Budget is the time allowed per decision.
func (d *Decider) Budget() time.Duration {
	return d.budget
}

// Metrics returns the metrics of the last decision, if collection is enabled.
func (d *Decider) Metrics() metrics.SearchMetric {
	return d.last
}

// searchChokepoints looks for a river linking the punter's own components first, then for one
// that would cut each opponent's components, in turn order.
func searchChokepoints(ctx context.Context, b *Board) chokepointMove {
	pairs := 0

	own := append(b.Ledger.Unclaimed(), b.Reclaimable()...)
	chokepoints, n := FindChokepoints(ctx, b.Mine().Components(), b.WorkingGraph(b.Me), own)
	pairs += n
	if len(chokepoints) > 0 {
		return chokepointMove{move: b.moveFor(chokepoints[0].River), found: true, pairs: pairs}
	}

	unclaimed := b.Ledger.Unclaimed()
	for _, opponent := range utils.TurnOrder(b.Me, b.Punters) {
		if ctx.Err() != nil {
			break
		}
		chokepoints, n := FindChokepoints(ctx, b.Forest[opponent].Components(), b.WorkingGraph(opponent), unclaimed)
		pairs += n
		if len(chokepoints) > 0 {
			return chokepointMove{move: b.moveFor(chokepoints[0].River), found: true, pairs: pairs}
		}
	}
	return chokepointMove{pairs: pairs}
}

// moveFor claims r if it is free and buys an option on it otherwise.
func (b *Board) moveFor(r game.River) game.Move {
	if _, claimed := b.Ledger.Owner(r); claimed {
		return game.Option(b.Me, r)
	}
	return game.Claim(b.Me, r)
}
