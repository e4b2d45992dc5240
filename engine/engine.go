package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"punter/communication"
	"punter/experiments/metrics"
	"punter/game"
	"punter/gamemaster"
	"punter/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrPunterFailed reports a punter that could not be run or did not answer.
var ErrPunterFailed = errors.New("punter failed")

// Connector carries one request to a punter and decodes its answer into reply. A nil reply means
// the punter is not expected to answer.
type Connector interface {
	Name() string
	Exchange(ctx context.Context, request communication.ServerMessage, reply any) error
}

// Output is the match result document.
type Output struct {
	ID      string  `json:"id"`
	Score   int     `json:"score"`
	Scores  []int   `json:"scores"`
	Map     string  `json:"map"`
	Verbose Verbose `json:"verbose"`
}

type Verbose struct {
	Moves []communication.Move `json:"moves,omitempty"`
}

type Option func(e *Engine)

func WithSettings(settings game.Settings) Option {
	return func(e *Engine) {
		e.Settings = settings
	}
}

// WithID fixes the match id instead of generating one.
func WithID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.ID = id
		}
	}
}

// Engine runs a whole match, one punter request at a time.
type Engine struct {
	ID       string
	MapName  string
	Map      *game.Map
	Settings game.Settings
	Punters  []Connector

	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

func NewEngine(name string, m *game.Map, punters []Connector, options ...Option) *Engine {
	if len(punters) < 2 {
		panic("need at least two punters")
	}
	e := &Engine{
		ID:      uuid.New().String(),
		MapName: name,
		Map:     m,
		Punters: punters,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run sets every punter up, plays one turn per river and tells each punter the final scores.
func (e *Engine) Run(ctx context.Context) (Output, error) {
	start := time.Now()
	gm := gamemaster.NewGameMaster(e.Map, len(e.Punters), e.Settings)
	e.moveMetrics = nil

	log.Info().Msgf("match %s on %s: %d punters, %d rivers", e.ID, e.MapName, len(e.Punters), len(e.Map.Rivers))

	states := make([]json.RawMessage, len(e.Punters))
	for p, punter := range e.Punters {
		var ready communication.Ready
		if err := punter.Exchange(ctx, communication.NewSetup(gm.Setup(p)), &ready); err != nil {
			return Output{}, fmt.Errorf("setup punter %d: %w", p, err)
		}
		if ready.Ready != p {
			log.Warn().Msgf("punter %d (%s) answered ready as %d", p, punter.Name(), ready.Ready)
		}
		states[p] = ready.State
	}

	for !gm.Over() {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}
		turn, p := gm.Turn(), gm.Current()
		log.Info().Msgf("turn %d", turn)

		request := communication.ServerMessage{
			Move:  &communication.Moves{Moves: communication.FromMoves(gm.Pending())},
			State: states[p],
		}
		var reply communication.Move
		moveStart := time.Now()
		if err := e.Punters[p].Exchange(ctx, request, &reply); err != nil {
			return Output{}, fmt.Errorf("turn %d of punter %d: %w", turn, p, err)
		}
		elapsed := time.Since(moveStart)
		states[p] = reply.State

		move, err := reply.ToMove()
		if err != nil {
			return Output{}, fmt.Errorf("turn %d of punter %d: %w", turn, p, err)
		}
		played, err := gm.Play(move)
		if err != nil {
			log.Warn().Msgf("punter %d (%s) passes instead: %v", p, e.Punters[p].Name(), err)
		}
		e.moveMetrics = append(e.moveMetrics, metrics.MoveMetric{
			Turn:     turn,
			Punter:   p,
			Kind:     played.Kind.String(),
			Legal:    err == nil,
			Duration: elapsed,
		})
	}

	scores := gm.Scores()
	moves := communication.FromMoves(gm.Moves())
	for p, punter := range e.Punters {
		stop := communication.ServerMessage{Stop: &communication.Stop{Moves: moves, Scores: communication.ScoresOf(scores)}}
		if err := punter.Exchange(ctx, stop, nil); err != nil {
			return Output{}, fmt.Errorf("stop punter %d: %w", p, err)
		}
	}

	end := time.Now()
	e.gameMetric = metrics.GameMetric{
		ID:         e.ID,
		Map:        e.MapName,
		Punters:    len(e.Punters),
		Scores:     scores,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: gm.Turn(),
	}
	log.Info().Msgf("match %s finished in %v with scores %v", e.ID, e.gameMetric.Duration, scores)

	return Output{
		ID:      e.ID,
		Score:   utils.Sign(scores[0] - scores[1]),
		Scores:  scores,
		Map:     e.MapName,
		Verbose: Verbose{Moves: moves},
	}, nil
}

// Metrics describes the last match played.
func (e *Engine) Metrics() (metrics.GameMetric, []metrics.MoveMetric) {
	return e.gameMetric, e.moveMetrics
}

// exchange drives a single offline session: handshake, request, end of input, reply.
func exchange(conn communication.Communicator, closeInput func() error, request communication.ServerMessage, reply any) error {
	if _, err := communication.Welcome(conn); err != nil {
		return err
	}
	if err := conn.Send(request); err != nil {
		return err
	}
	if err := closeInput(); err != nil {
		return fmt.Errorf("failed to close punter input: %w", err)
	}
	if reply == nil {
		return nil
	}
	return conn.Receive(reply)
}
