package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "unit")
	require.NoError(t, err)

	err = w.WriteGameRecords([]GameRecord{{
		Strategies: []string{"lightning", "greedy"},
		GameMetric: GameMetric{ID: "g1", Map: "sample", Punters: 2, Scores: []int{5, 1}, TotalMoves: 12},
	}})
	require.NoError(t, err)
	err = w.WriteMoveRecords([]MoveRecord{{Game: "g1", MoveMetric: MoveMetric{Turn: 1, Kind: "claim", Legal: true, Duration: time.Millisecond}}})
	require.NoError(t, err)

	games := readCSV(t, filepath.Join(w.Dir(), "games.csv"))
	require.Len(t, games, 2, "Header plus one row")
	require.Equal(t, "lightning;greedy", games[1][2])
	require.Equal(t, "5;1", games[1][4])

	moves := readCSV(t, filepath.Join(w.Dir(), "moves.csv"))
	require.Equal(t, []string{"g1", "1", "0", "claim", "true", "1ms"}, moves[1])
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(time.Second)
	c.AddCandidates(3)
	c.AddPairs(2)
	c.SetChokepoint(true, false)

	m := c.Complete()
	require.Equal(t, 3, m.Candidates)
	require.Equal(t, 2, m.Pairs)
	require.True(t, m.Chokepoint)
	require.Equal(t, time.Second, m.Budget)

	c.Start(time.Second)
	require.Zero(t, c.Complete().Candidates, "Start should reset the counters")
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
