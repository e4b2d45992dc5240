package game

import "iter"

// Visit is one site reached by a BFS.
type Visit struct {
	Site        int
	Predecessor int // NoSite for sources
	Distance    int
}

// BFS walks g level by level from every source at once. Each reachable site is yielded exactly once,
// in non-decreasing distance order, and nothing farther than maxDepth is yielded. The sequence is
// single pass; ranging over it again restarts the traversal.
func BFS(sources []int, g Graph, maxDepth int) iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		if maxDepth < 0 {
			return
		}
		seen := make(map[int]bool, len(sources))
		queue := make([]Visit, 0, len(sources))
		for _, s := range sources {
			if seen[s] {
				continue
			}
			seen[s] = true
			queue = append(queue, Visit{Site: s, Predecessor: NoSite})
		}

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			if !yield(v) {
				return
			}
			if v.Distance >= maxDepth {
				continue
			}
			for _, n := range g.Neighbors(v.Site) {
				if seen[n] {
					continue
				}
				seen[n] = true
				queue = append(queue, Visit{Site: n, Predecessor: v.Site, Distance: v.Distance + 1})
			}
		}
	}
}

// ShortestPath returns the sites of a shortest path from any source to any target, source first.
// It returns nil when no target is reachable.
func ShortestPath(sources, targets []int, g Graph) []int {
	isTarget := make(map[int]bool, len(targets))
	for _, t := range targets {
		isTarget[t] = true
	}

	predecessors := make(map[int]int)
	for v := range BFS(sources, g, Unbounded) {
		predecessors[v.Site] = v.Predecessor
		if !isTarget[v.Site] {
			continue
		}
		path := []int{v.Site}
		for at := v.Predecessor; at != NoSite; at = predecessors[at] {
			path = append(path, at)
		}
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		return path
	}
	return nil
}

// PathRivers lists the rivers walked by a site path.
func PathRivers(path []int) []River {
	if len(path) < 2 {
		return nil
	}
	rivers := make([]River, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		rivers = append(rivers, River{Source: path[i-1], Target: path[i]})
	}
	return rivers
}
