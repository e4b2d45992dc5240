package searcher

import (
	"fmt"
	"sort"

	"punter/game"
	"punter/meta"

	"golang.org/x/exp/rand"
)

// Strategy ranks the candidate moves of a board, best first. An empty ranking means the punter
// has nothing to claim.
type Strategy func(b *Board) []Candidate

// Lightning prefers merging components, then growth potential, then score.
func Lightning(b *Board) []Candidate {
	ranked := b.EvaluateAll(b.Candidates())
	sortLightning(ranked)
	if b.Settings.Splurges && b.Ledger.Credit(b.Me) > 0 {
		ranked = append(ranked, b.EvaluateAll(extendSplurges(b, ranked))...)
		sortLightning(ranked)
	}
	return ranked
}

func sortLightning(ranked []Candidate) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, c := ranked[i], ranked[j]
		if a.Components != c.Components {
			return a.Components < c.Components
		}
		if a.Liberty != c.Liberty {
			return a.Liberty > c.Liberty
		}
		return a.Score > c.Score
	})
}

// Greedy takes whatever scores most right now.
func Greedy(b *Board) []Candidate {
	ranked := b.EvaluateAll(b.Candidates())
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Random shuffles the candidates with its own seeded source.
func Random(seed uint64) Strategy {
	r := rand.New(rand.NewSource(seed))
	return func(b *Board) []Candidate {
		moves := b.Candidates()
		r.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
		ranked := make([]Candidate, len(moves))
		for i, m := range moves {
			ranked[i] = Candidate{Move: m}
		}
		return ranked
	}
}

// extendSplurges grows the best claims by one more unclaimed river from either end.
func extendSplurges(b *Board, ranked []Candidate) []game.Move {
	var out []game.Move
	extended := 0
	for _, c := range ranked {
		if extended == meta.SplurgeFanout {
			break
		}
		if c.Move.Kind != game.ClaimMove {
			continue
		}
		extended++
		ends := [][2]int{{c.Move.Source, c.Move.Target}, {c.Move.Target, c.Move.Source}}
		for _, e := range ends {
			from, to := e[0], e[1]
			for _, next := range b.available.Neighbors(to) {
				if next == from || next == to {
					continue
				}
				out = append(out, game.Splurge(b.Me, []int{from, to, next}))
			}
		}
	}
	return out
}

// Lookup returns the strategy registered under name. Random strategies are seeded with seed.
func Lookup(name string, seed uint64) (Strategy, error) {
	switch name {
	case "", "lightning":
		return Lightning, nil
	case "greedy":
		return Greedy, nil
	case "random":
		return Random(seed), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Names lists the registered strategies.
func Names() []string {
	return []string{"lightning", "greedy", "random"}
}
