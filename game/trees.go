package game

import (
	"fmt"
	"slices"
)

type tree map[int]struct{}

func (t tree) clone() tree {
	c := make(tree, len(t)+2)
	for site := range t {
		c[site] = struct{}{}
	}
	return c
}

// Trees partitions the sites touched by one punter's rivers into connected components.
// A Trees value is immutable: AddRiver returns a new value and copies only the components it
// changes, so callers can branch hypothetical moves off a shared state.
type Trees struct {
	trees []tree
}

// NewTrees returns a partition holding one singleton component per seed site.
func NewTrees(seed ...int) Trees {
	var ts Trees
	for _, site := range seed {
		if ts.Contains(site) {
			continue
		}
		ts.trees = append(ts.trees, tree{site: {}})
	}
	return ts
}

// ReplayTrees builds punter's partition from a move history. Splurges are expanded into their
// rivers and options count as ordinary rivers of the punter who bought them.
func ReplayTrees(moves []Move, punter int, seed ...int) Trees {
	ts := NewTrees(seed...)
	for _, m := range moves {
		if m.Punter != punter {
			continue
		}
		for _, r := range m.Rivers() {
			ts = ts.AddRiver(r)
		}
	}
	return ts
}

// AddRiver returns the partition with r added. It panics if the river's endpoints lie in more than
// two components, which can only happen if the partition itself is corrupt.
func (ts Trees) AddRiver(r River) Trees {
	var matching []int
	for i, t := range ts.trees {
		_, hasSource := t[r.Source]
		_, hasTarget := t[r.Target]
		if hasSource || hasTarget {
			matching = append(matching, i)
		}
	}

	next := Trees{trees: slices.Clone(ts.trees)}
	switch len(matching) {
	case 0:
		next.trees = append(next.trees, tree{r.Source: {}, r.Target: {}})
	case 1:
		t := ts.trees[matching[0]]
		_, hasSource := t[r.Source]
		_, hasTarget := t[r.Target]
		if hasSource && hasTarget {
			return ts
		}
		grown := t.clone()
		grown[r.Source] = struct{}{}
		grown[r.Target] = struct{}{}
		next.trees[matching[0]] = grown
	case 2:
		first, second := ts.trees[matching[0]], ts.trees[matching[1]]
		merged := first.clone()
		for site := range second {
			merged[site] = struct{}{}
		}
		next.trees[matching[0]] = merged
		next.trees = slices.Delete(next.trees, matching[1], matching[1]+1)
	default:
		panic(fmt.Sprintf("river %s touches %d components", r, len(matching)))
	}
	return next
}

// Contains reports whether any component holds site.
func (ts Trees) Contains(site int) bool {
	for _, t := range ts.trees {
		if _, ok := t[site]; ok {
			return true
		}
	}
	return false
}

// Len is the number of components.
func (ts Trees) Len() int {
	return len(ts.trees)
}

// Size is the number of sites held by all components.
func (ts Trees) Size() int {
	n := 0
	for _, t := range ts.trees {
		n += len(t)
	}
	return n
}

// Sites lists every owned site, unordered.
func (ts Trees) Sites() []int {
	sites := make([]int, 0, ts.Size())
	for _, t := range ts.trees {
		for site := range t {
			sites = append(sites, site)
		}
	}
	return sites
}

// Components returns each component's sites sorted ascending, components ordered by their
// smallest site.
func (ts Trees) Components() [][]int {
	out := make([][]int, 0, len(ts.trees))
	for _, t := range ts.trees {
		sites := make([]int, 0, len(t))
		for site := range t {
			sites = append(sites, site)
		}
		slices.Sort(sites)
		out = append(out, sites)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

// Score sums, for each mine of the table and each component containing it, the squared distance
// from the mine to every site of the component. Sites unreachable from the mine count as 0.
func (ts Trees) Score(distances DistanceTable) int {
	score := 0
	for mine, table := range distances {
		for _, t := range ts.trees {
			if _, ok := t[mine]; !ok {
				continue
			}
			for site := range t {
				d := table[site]
				score += d * d
			}
		}
	}
	return score
}

// Liberty estimates growth potential: the owned sites plus every other site reachable within depth
// hops through available.
func (ts Trees) Liberty(available Graph, depth int) int {
	owned := ts.Sites()
	liberty := 0
	for range BFS(owned, available, depth) {
		liberty++
	}
	return liberty
}
