package game

// Forest holds every punter's partition seeded with all mines, so that mine singletons are
// components from the first turn.
type Forest []Trees

// NewForest replays moves for each of the punters.
func NewForest(m *Map, punters int, moves []Move) Forest {
	forest := make(Forest, punters)
	for p := range forest {
		forest[p] = ReplayTrees(moves, p, m.Mines...)
	}
	return forest
}

// Scores returns every punter's score, indexed by punter id.
func (f Forest) Scores(distances DistanceTable) []int {
	scores := make([]int, len(f))
	for p, ts := range f {
		scores[p] = ts.Score(distances)
	}
	return scores
}
