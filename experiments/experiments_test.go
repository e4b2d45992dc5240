package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"punter/game"

	"github.com/stretchr/testify/require"
)

func smallMap() *game.Map {
	m := &game.Map{Mines: []int{0, 3}}
	for i := 0; i < 4; i++ {
		m.Sites = append(m.Sites, game.Site{ID: i})
	}
	m.Rivers = []game.River{{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 0}}
	return m
}

func TestRun(t *testing.T) {
	t.Run("plays every match up and writes the records", func(t *testing.T) {
		out := t.TempDir()
		result, err := Run(context.Background(), Experiment{
			Name:       "square",
			MapName:    "square",
			Map:        smallMap(),
			Strategies: []string{"greedy", "random"},
			Games:      2,
			Budget:     20 * time.Millisecond,
			Seed:       1,
			Parallel:   2,
			Out:        out,
		})
		require.NoError(t, err)
		require.Len(t, result.Games, 4, "two match ups of two games")
		require.Len(t, result.Moves, 4*len(smallMap().Rivers))
		require.Equal(t, []string{"greedy", "random"}, result.Games[0].Strategies)
		require.Equal(t, []string{"random", "greedy"}, result.Games[2].Strategies)

		wins := 0
		for _, n := range result.Wins {
			wins += n
		}
		require.LessOrEqual(t, wins, 4)

		require.DirExists(t, result.Dir)
		require.FileExists(t, filepath.Join(result.Dir, "games.csv"))
		data, err := os.ReadFile(filepath.Join(result.Dir, "moves.csv"))
		require.NoError(t, err)
		require.Contains(t, string(data), result.Games[0].ID)
	})

	t.Run("single strategy plays itself", func(t *testing.T) {
		result, err := Run(context.Background(), Experiment{
			Name:       "self",
			MapName:    "square",
			Map:        smallMap(),
			Strategies: []string{"lightning"},
			Games:      1,
			Budget:     20 * time.Millisecond,
		})
		require.NoError(t, err)
		require.Len(t, result.Games, 1)
		require.Empty(t, result.Dir, "nothing is written without an output directory")
	})

	t.Run("rejects unknown strategies", func(t *testing.T) {
		_, err := Run(context.Background(), Experiment{Map: smallMap(), Strategies: []string{"minimax"}})
		require.Error(t, err)
	})
}

func TestWinner(t *testing.T) {
	require.Equal(t, 0, winner([]int{5, 3}))
	require.Equal(t, 2, winner([]int{3, 3, 5}))
	require.Equal(t, -1, winner([]int{4, 4}))
	require.Equal(t, -1, winner(nil))
}
