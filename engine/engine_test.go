package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"punter/communication"
	"punter/game"
	"punter/searcher"
	"punter/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func river(s, t int) game.River {
	return game.River{Source: s, Target: t}
}

// twoTriangles joins the triangles 0-1-2 and 3-4-5 by the bridge 2-3, with mines 0 and 5.
func twoTriangles() *game.Map {
	m := &game.Map{
		Rivers: []game.River{river(0, 1), river(1, 2), river(2, 0), river(2, 3), river(3, 4), river(4, 5), river(5, 3)},
		Mines:  []int{0, 5},
	}
	for i := 0; i < 6; i++ {
		m.Sites = append(m.Sites, game.Site{ID: i})
	}
	return m
}

// scripted answers every request with the same move.
type scripted struct {
	move    communication.Move
	failing bool
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) Exchange(ctx context.Context, request communication.ServerMessage, reply any) error {
	if s.failing {
		return ErrPunterFailed
	}
	switch r := reply.(type) {
	case *communication.Ready:
		r.Ready = *request.Punter
	case *communication.Move:
		*r = s.move
		r.State = request.State
	}
	return nil
}

func TestEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("plays a match between in-process punters", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		m := twoTriangles()
		budget := searcher.WithBudget(50 * time.Millisecond)
		e := NewEngine("triangles", m, []Connector{
			NewLocal("lightning", budget),
			NewLocal("greedy", budget, searcher.WithStrategy(searcher.Greedy)),
		})

		output, err := e.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, "triangles", output.Map)
		require.Equal(t, e.ID, output.ID)
		require.Len(t, output.Scores, 2)
		require.Equal(t, utils.Sign(output.Scores[0]-output.Scores[1]), output.Score)
		require.Len(t, output.Verbose.Moves, 2+len(m.Rivers), "seed passes and one move per river")

		claimed := make(map[game.River]bool)
		moves, err := communication.ToMoves(output.Verbose.Moves)
		require.NoError(t, err)
		for _, move := range moves {
			for _, r := range move.Rivers() {
				require.False(t, claimed[r.Canonical()], "river %s claimed twice", r)
				claimed[r.Canonical()] = true
			}
		}

		gameMetric, moveMetrics := e.Metrics()
		require.Equal(t, output.ID, gameMetric.ID)
		require.Equal(t, output.Scores, gameMetric.Scores)
		require.Len(t, moveMetrics, len(m.Rivers))
		for _, mm := range moveMetrics {
			require.True(t, mm.Legal, "turn %d should be legal", mm.Turn)
		}
	})

	t.Run("replaces illegal moves by passes", func(t *testing.T) {
		claim := communication.FromMove(game.Claim(0, river(0, 1)))
		e := NewEngine("triangles", twoTriangles(), []Connector{
			&scripted{move: claim},
			&scripted{move: communication.FromMove(game.Pass(1))},
		}, WithID("fixed"))

		output, err := e.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, "fixed", output.ID)

		moves, err := communication.ToMoves(output.Verbose.Moves)
		require.NoError(t, err)
		require.Equal(t, game.Claim(0, river(0, 1)), moves[2])
		require.Equal(t, game.Pass(0), moves[4], "the river is already taken")

		_, moveMetrics := e.Metrics()
		require.True(t, moveMetrics[0].Legal)
		require.False(t, moveMetrics[2].Legal)
		require.Equal(t, []int{1, 0}, output.Scores)
		require.Equal(t, 1, output.Score)
	})

	t.Run("aborts when a punter fails", func(t *testing.T) {
		e := NewEngine("triangles", twoTriangles(), []Connector{
			&scripted{move: communication.FromMove(game.Pass(0))},
			&scripted{failing: true},
		})
		_, err := e.Run(ctx)
		require.True(t, errors.Is(err, ErrPunterFailed), "got %v", err)
	})

	t.Run("aborts on an empty move", func(t *testing.T) {
		e := NewEngine("triangles", twoTriangles(), []Connector{
			&scripted{},
			&scripted{},
		})
		_, err := e.Run(ctx)
		require.ErrorIs(t, err, communication.ErrEmptyMove)
	})

	t.Run("needs two punters", func(t *testing.T) {
		require.Panics(t, func() {
			NewEngine("triangles", twoTriangles(), []Connector{&scripted{}})
		})
	})
}

func TestProcess(t *testing.T) {
	t.Run("splits the identifier", func(t *testing.T) {
		p := NewProcess("./bin/punter --strategy greedy")
		require.Equal(t, "./bin/punter", p.Command)
		require.Equal(t, []string{"--strategy", "greedy"}, p.Args)
		require.Equal(t, "punter", p.Name())
	})

	t.Run("a missing executable fails the punter", func(t *testing.T) {
		p := NewProcess("/nonexistent/punter")
		err := p.Exchange(context.Background(), communication.ServerMessage{}, nil)
		require.ErrorIs(t, err, ErrPunterFailed)
	})

	t.Run("an empty identifier fails the punter", func(t *testing.T) {
		err := NewProcess("").Exchange(context.Background(), communication.ServerMessage{}, nil)
		require.ErrorIs(t, err, ErrPunterFailed)
	})
}
