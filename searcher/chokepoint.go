package searcher

import (
	"context"
	"sort"

	"punter/game"
	"punter/meta"
)

// Chokepoint is a river whose loss stretches the shortest paths between anchor sets.
type Chokepoint struct {
	River game.River
	Ratio float64 // summed path stretch over every anchor pair the river separates
}

type anchorPair struct {
	a, b []int
	path []int
}

// FindChokepoints ranks the candidate rivers that most lengthen the shortest paths between pairs of
// anchor sets when removed from working. Pairs are examined shortest path first. The search stops
// as soon as ctx is done and returns what it has ranked so far, together with the number of pairs
// it fully examined.
func FindChokepoints(ctx context.Context, anchors [][]int, working game.Graph, candidates []game.River) ([]Chokepoint, int) {
	isCandidate := make(map[game.River]game.River, len(candidates))
	for _, r := range candidates {
		isCandidate[r.Canonical()] = r
	}

	var pairs []anchorPair
	for i := 0; i < len(anchors); i++ {
		for j := i + 1; j < len(anchors); j++ {
			if ctx.Err() != nil {
				return nil, 0
			}
			path := game.ShortestPath(anchors[i], anchors[j], working)
			if len(path) < 2 {
				continue
			}
			pairs = append(pairs, anchorPair{a: anchors[i], b: anchors[j], path: path})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].path) < len(pairs[j].path)
	})

	sums := make(map[game.River]float64)
	var order []game.River
	examined := 0
search:
	for _, pair := range pairs {
		original := float64(len(pair.path) - 1)
		// Removing a river off the current shortest path leaves its length unchanged.
		for _, r := range game.PathRivers(pair.path) {
			river, ok := isCandidate[r.Canonical()]
			if !ok {
				continue
			}
			if ctx.Err() != nil {
				break search
			}
			length := meta.Disconnected
			if detour := game.ShortestPath(pair.a, pair.b, game.Without(working, r)); detour != nil {
				length = len(detour) - 1
			}
			ratio := float64(length) / original
			if ratio <= meta.ChokepointThreshold {
				continue
			}
			key := r.Canonical()
			if _, seen := sums[key]; !seen {
				order = append(order, river)
			}
			sums[key] += ratio
		}
		examined++
	}

	chokepoints := make([]Chokepoint, 0, len(order))
	for _, r := range order {
		chokepoints = append(chokepoints, Chokepoint{River: r, Ratio: sums[r.Canonical()]})
	}
	sort.SliceStable(chokepoints, func(i, j int) bool {
		return chokepoints[i].Ratio > chokepoints[j].Ratio
	})
	return chokepoints, examined
}
