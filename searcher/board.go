package searcher

import (
	"punter/game"
	"punter/meta"
)

// Candidate is a legal move together with the position it would lead to.
type Candidate struct {
	Move       game.Move
	Components int
	Liberty    int
	Score      int
}

// Board is a read-only snapshot of a match from one punter's point of view. It is built once per
// turn and may be shared by concurrent readers.
type Board struct {
	Map       *game.Map
	Graph     game.Adjacency
	Distances game.DistanceTable
	Me        int
	Punters   int
	Settings  game.Settings
	Ledger    *game.Ledger
	Forest    game.Forest

	// LibertyDepth is the hop radius of Candidate.Liberty.
	LibertyDepth int

	available game.Adjacency
}

// NewBoard replays the move history on top of the setup. A nil distance table is computed from the
// map.
func NewBoard(setup game.Setup, distances game.DistanceTable, moves []game.Move) *Board {
	graph := game.NewAdjacency(setup.Map.Rivers)
	if distances == nil {
		distances = game.NewDistanceTable(setup.Map.Mines, graph)
	}
	ledger := game.NewLedger(setup.Map, setup.Settings)
	for _, m := range moves {
		ledger.Play(m)
	}
	return &Board{
		Map:          setup.Map,
		Graph:        graph,
		Distances:    distances,
		Me:           setup.Punter,
		Punters:      setup.Punters,
		Settings:     setup.Settings,
		Ledger:       ledger,
		Forest:       game.NewForest(setup.Map, setup.Punters, moves),
		LibertyDepth: meta.LibertyDepth,
		available:    game.NewAdjacency(ledger.Unclaimed()),
	}
}

// Mine is the connectivity of the punter to move.
func (b *Board) Mine() game.Trees {
	return b.Forest[b.Me]
}

// Available is the graph of unclaimed rivers.
func (b *Board) Available() game.Graph {
	return b.available
}

// Reclaimable lists the opponent rivers the punter to move could still buy an option on.
func (b *Board) Reclaimable() []game.River {
	return b.Ledger.Optionable(b.Me)
}

// WorkingGraph is every river punter could still route through: unclaimed rivers, its own rivers
// and rivers it could buy an option on.
func (b *Board) WorkingGraph(punter int) game.Graph {
	rivers := b.Ledger.Unclaimed()
	for _, r := range b.Map.Rivers {
		if b.Ledger.Owns(punter, r) {
			rivers = append(rivers, r)
		}
	}
	rivers = append(rivers, b.Ledger.Optionable(punter)...)
	return game.NewAdjacency(rivers)
}

// Candidates lists the legal claims and options for the punter to move, restricted to rivers
// touching its components unless none do.
func (b *Board) Candidates() []game.Move {
	var all []game.Move
	for _, r := range b.Ledger.Unclaimed() {
		all = append(all, game.Claim(b.Me, r))
	}
	for _, r := range b.Reclaimable() {
		all = append(all, game.Option(b.Me, r))
	}

	mine := b.Mine()
	var touching []game.Move
	for _, m := range all {
		if mine.Contains(m.Source) || mine.Contains(m.Target) {
			touching = append(touching, m)
		}
	}
	if len(touching) == 0 {
		return all
	}
	return touching
}

// Evaluate plays m hypothetically and measures the resulting partition.
func (b *Board) Evaluate(m game.Move) Candidate {
	trees := b.Mine()
	rivers := m.Rivers()
	for _, r := range rivers {
		trees = trees.AddRiver(r)
	}
	return Candidate{
		Move:       m,
		Components: trees.Len(),
		Liberty:    trees.Liberty(game.Without(b.available, rivers...), b.LibertyDepth),
		Score:      trees.Score(b.Distances),
	}
}

// EvaluateAll evaluates every move, keeping their order.
func (b *Board) EvaluateAll(moves []game.Move) []Candidate {
	candidates := make([]Candidate, 0, len(moves))
	for _, m := range moves {
		candidates = append(candidates, b.Evaluate(m))
	}
	return candidates
}
