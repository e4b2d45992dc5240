package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func lineMap() *Map {
	return &Map{
		Sites:  []Site{{ID: 0}, {ID: 1}, {ID: 2}},
		Rivers: []River{{Source: 0, Target: 1}, {Source: 1, Target: 2}},
		Mines:  []int{0},
	}
}

func TestTreesAddRiver(t *testing.T) {
	t.Run("disjoint river creates a component", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 1, Target: 2})

		require.Equal(t, [][]int{{1, 2}}, ts.Components())
	})

	t.Run("touching river extends a component", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 1, Target: 2}).AddRiver(River{Source: 2, Target: 3})

		require.Equal(t, [][]int{{1, 2, 3}}, ts.Components())
	})

	t.Run("inner river is idempotent", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 1, Target: 2})
		again := ts.AddRiver(River{Source: 2, Target: 1})

		require.Equal(t, ts.Components(), again.Components())
	})

	t.Run("bridging river merges two components", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 1, Target: 2}).AddRiver(River{Source: 3, Target: 4})
		require.Equal(t, 2, ts.Len())

		merged := ts.AddRiver(River{Source: 2, Target: 3})

		require.Equal(t, [][]int{{1, 2, 3, 4}}, merged.Components())
	})

	t.Run("mine seeds are singleton components", func(t *testing.T) {
		ts := NewTrees(5, 7, 5)

		require.Equal(t, [][]int{{5}, {7}}, ts.Components())
		require.True(t, ts.Contains(7))
		require.False(t, ts.Contains(6))
	})

	t.Run("adding does not modify the receiver", func(t *testing.T) {
		base := NewTrees(0).AddRiver(River{Source: 0, Target: 1})
		_ = base.AddRiver(River{Source: 1, Target: 2})
		_ = base.AddRiver(River{Source: 5, Target: 6})

		require.Equal(t, [][]int{{0, 1}}, base.Components(), "Hypothetical branches should not leak into the base")
	})

	t.Run("corrupt partition panics", func(t *testing.T) {
		corrupt := Trees{trees: []tree{{1: {}}, {1: {}}, {2: {}}}}

		require.Panics(t, func() {
			corrupt.AddRiver(River{Source: 1, Target: 2})
		}, "A site held by two components is an invariant violation")
	})
}

func TestTreesComponentCount(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	ts := NewTrees()
	for i := 0; i < 500; i++ {
		river := River{Source: r.Intn(60), Target: r.Intn(60)}
		if river.Source == river.Target {
			continue
		}
		before := ts.Len()
		hasSource, hasTarget := ts.Contains(river.Source), ts.Contains(river.Target)
		sameTree := false
		for _, c := range ts.Components() {
			if contains(c, river.Source) && contains(c, river.Target) {
				sameTree = true
			}
		}

		ts = ts.AddRiver(river)

		switch {
		case !hasSource && !hasTarget:
			require.Equal(t, before+1, ts.Len(), "Fresh pair should add a component")
		case hasSource && hasTarget && !sameTree:
			require.Equal(t, before-1, ts.Len(), "Merge should remove exactly one component")
		default:
			require.Equal(t, before, ts.Len(), "Extension should keep the component count")
		}
		requirePartition(t, ts)
	}
}

func TestTreesScore(t *testing.T) {
	m := lineMap()
	distances := NewDistanceTable(m.Mines, NewAdjacency(m.Rivers))

	t.Run("scenario A", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 0, Target: 1})
		require.Equal(t, [][]int{{0, 1}}, ts.Components())
		d, ok := distances.Distance(0, 1)
		require.True(t, ok)
		require.Equal(t, 1, d)
		require.Equal(t, 1, ts.Score(distances))

		ts = ts.AddRiver(River{Source: 1, Target: 2})
		require.Equal(t, [][]int{{0, 1, 2}}, ts.Components())
		require.Equal(t, map[int]int{0: 0, 1: 1, 2: 2}, distances[0])
		require.Equal(t, 5, ts.Score(distances))
	})

	t.Run("components without a mine score nothing", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 1, Target: 2})

		require.Equal(t, 0, ts.Score(distances))
	})

	t.Run("unreachable sites count as zero", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 0, Target: 1}).AddRiver(River{Source: 1, Target: 9})

		require.Equal(t, 1, ts.Score(distances))
	})

	t.Run("insertion order does not matter", func(t *testing.T) {
		rivers := []River{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {1, 5}, {5, 6}, {7, 8}}
		g := NewAdjacency(rivers)
		table := NewDistanceTable([]int{0, 4}, g)
		expected := replay(rivers).Score(table)

		r := rand.New(rand.NewSource(3))
		for i := 0; i < 20; i++ {
			shuffled := append([]River(nil), rivers...)
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			require.Equal(t, expected, replay(shuffled).Score(table))
		}
	})
}

func TestTreesLiberty(t *testing.T) {
	// 0-1-2-3-4 with a spur 1-5
	rivers := []River{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {1, 5}}
	g := NewAdjacency(rivers)

	t.Run("counts owned and nearby sites", func(t *testing.T) {
		ts := NewTrees(0)

		require.Equal(t, 2, ts.Liberty(g, 1), "Owned {0} reaches 1 at one hop")
		require.Equal(t, 4, ts.Liberty(g, 2), "Owned {0} reaches 2 and 5 at two hops")
	})

	t.Run("only available rivers are walked", func(t *testing.T) {
		ts := NewTrees(0)
		available := Without(g, River{Source: 1, Target: 0})

		require.Equal(t, 1, ts.Liberty(available, 2))
	})

	t.Run("zero depth counts owned sites", func(t *testing.T) {
		ts := NewTrees().AddRiver(River{Source: 2, Target: 3})

		require.Equal(t, 2, ts.Liberty(g, 0))
	})
}

func TestReplayTrees(t *testing.T) {
	moves := []Move{
		Claim(0, River{Source: 0, Target: 1}),
		Claim(1, River{Source: 1, Target: 2}),
		Pass(0),
		Splurge(0, []int{3, 4, 5}),
		Option(0, River{Source: 1, Target: 2}),
	}

	ts := ReplayTrees(moves, 0, 9)

	require.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {9}}, ts.Components())
	require.Equal(t, [][]int{{1, 2}}, ReplayTrees(moves, 1).Components())
}

func replay(rivers []River) Trees {
	ts := NewTrees()
	for _, r := range rivers {
		ts = ts.AddRiver(r)
	}
	return ts
}

func requirePartition(t *testing.T, ts Trees) {
	t.Helper()
	seen := map[int]bool{}
	for _, c := range ts.Components() {
		for _, site := range c {
			require.False(t, seen[site], "Site %d should belong to one component", site)
			seen[site] = true
		}
	}
}

func contains(sites []int, site int) bool {
	for _, s := range sites {
		if s == site {
			return true
		}
	}
	return false
}
