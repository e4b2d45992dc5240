package searcher

import (
	"testing"

	"punter/game"

	"github.com/stretchr/testify/require"
)

func TestLightning(t *testing.T) {
	t.Run("prefers merging components", func(t *testing.T) {
		m := newMap([]int{0, 3}, river(0, 1), river(3, 4), river(1, 3), river(1, 2), river(4, 5), river(2, 5))
		b := newBoard(m, 0, 2, game.Settings{},
			game.Claim(0, river(0, 1)), game.Claim(1, river(2, 5)), game.Claim(0, river(3, 4)))

		ranked := Lightning(b)

		require.Equal(t, game.Claim(0, river(1, 3)), ranked[0].Move)
		require.Equal(t, 1, ranked[0].Components)
		require.Len(t, ranked, 3, "Only rivers touching own components are ranked")
	})

	t.Run("falls back to any river", func(t *testing.T) {
		m := newMap([]int{0}, river(0, 1), river(2, 3))
		b := newBoard(m, 0, 2, game.Settings{}, game.Claim(1, river(0, 1)))

		ranked := Lightning(b)

		require.Len(t, ranked, 1)
		require.Equal(t, game.Claim(0, river(2, 3)), ranked[0].Move)
	})

	t.Run("liberty breaks ties between extensions", func(t *testing.T) {
		// mine 0 with a dead end 0-1 and an open branch 0-2-3-4
		m := newMap([]int{0}, river(0, 1), river(0, 2), river(2, 3), river(3, 4))
		b := newBoard(m, 0, 2, game.Settings{})

		ranked := Lightning(b)

		require.Equal(t, game.Claim(0, river(0, 2)), ranked[0].Move)
		require.Greater(t, ranked[0].Liberty, ranked[1].Liberty)
	})

	t.Run("offers options on opponent rivers", func(t *testing.T) {
		m := newMap([]int{0}, river(0, 1), river(2, 3))
		b := newBoard(m, 0, 2, game.Settings{Options: true}, game.Claim(1, river(0, 1)))

		ranked := Lightning(b)

		require.Len(t, ranked, 1)
		require.Equal(t, game.OptionMove, ranked[0].Move.Kind)
		require.Equal(t, 2, ranked[0].Liberty)
	})

	t.Run("extends the best claim into a splurge when credit allows", func(t *testing.T) {
		m := newMap([]int{0}, river(0, 1), river(1, 2))
		b := newBoard(m, 0, 2, game.Settings{Splurges: true}, game.Pass(0), game.Pass(1))

		ranked := Lightning(b)

		require.Equal(t, game.Splurge(0, []int{0, 1, 2}), ranked[0].Move)
		require.Equal(t, 5, ranked[0].Score)
		require.Equal(t, game.Claim(0, river(0, 1)), ranked[1].Move)
	})

	t.Run("no splurges without credit", func(t *testing.T) {
		m := newMap([]int{0}, river(0, 1), river(1, 2))
		b := newBoard(m, 0, 2, game.Settings{Splurges: true})

		for _, c := range Lightning(b) {
			require.NotEqual(t, game.SplurgeMove, c.Move.Kind)
		}
	})

	t.Run("nothing left to claim", func(t *testing.T) {
		m := newMap([]int{0}, river(0, 1))
		b := newBoard(m, 0, 2, game.Settings{}, game.Claim(1, river(0, 1)))

		require.Empty(t, Lightning(b))
	})
}

func TestGreedy(t *testing.T) {
	// mine 0, site 2 is two hops away through 1
	m := newMap([]int{0}, river(0, 1), river(1, 2), river(0, 3))
	b := newBoard(m, 0, 2, game.Settings{}, game.Claim(0, river(0, 1)))

	ranked := Greedy(b)

	require.Equal(t, game.Claim(0, river(1, 2)), ranked[0].Move)
	require.Equal(t, 1+4, ranked[0].Score)
}

func TestRandom(t *testing.T) {
	m := newMap([]int{0}, river(0, 1), river(0, 2), river(0, 3), river(0, 4))
	b := newBoard(m, 0, 2, game.Settings{})

	first := Random(42)(b)
	second := Random(42)(b)

	require.Equal(t, first, second, "Equal seeds should rank equally")
	moves := make([]game.Move, len(first))
	for i, c := range first {
		moves[i] = c.Move
	}
	require.ElementsMatch(t, b.Candidates(), moves)
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		s, err := Lookup(name, 1)
		require.NoError(t, err)
		require.NotNil(t, s)
	}

	_, err := Lookup("minimax", 1)
	require.Error(t, err)
}
