package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"punter/communication"
	"punter/game"
	"punter/searcher"

	"github.com/rs/zerolog/log"
)

// State is what a punter hands to the runner after every reply and gets back with the next
// request. The runner never looks inside.
type State struct {
	Punter    int                  `json:"punter"`
	Punters   int                  `json:"punters"`
	Map       *game.Map            `json:"map,omitempty"`
	Settings  game.Settings        `json:"settings"`
	Distances game.DistanceTable   `json:"distances,omitempty"`
	Moves     []communication.Move `json:"moves,omitempty"`
}

func NewState(setup game.Setup) State {
	return State{
		Punter:    setup.Punter,
		Punters:   setup.Punters,
		Map:       setup.Map,
		Settings:  setup.Settings,
		Distances: game.NewDistanceTable(setup.Map.Mines, game.NewAdjacency(setup.Map.Rivers)),
	}
}

func (s State) Setup() game.Setup {
	return game.Setup{Punter: s.Punter, Punters: s.Punters, Map: s.Map, Settings: s.Settings}
}

// Player answers the runner: setup, then one move per request until stopped.
type Player struct {
	Name string

	comm    communication.Communicator
	decider *searcher.Decider
	turn    int
	clock   func() time.Time
}

func NewPlayer(name string, comm communication.Communicator, decider *searcher.Decider) *Player {
	return &Player{
		Name:    name,
		comm:    comm,
		decider: decider,
		clock:   time.Now,
	}
}

// Play performs the handshake and serves requests until a stop message or the end of the stream.
// Offline, the stream ends after the first request.
func (p *Player) Play(ctx context.Context) error {
	if err := communication.Greet(p.comm, p.Name); err != nil {
		return err
	}
	for {
		var msg communication.ServerMessage
		err := p.comm.Receive(&msg)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		reply, err := p.Handle(ctx, msg)
		if err != nil {
			return err
		}
		if reply == nil {
			return nil
		}
		if err := p.comm.Send(reply); err != nil {
			return err
		}
	}
}

// Handle answers a single runner message. A stop yields a nil reply.
func (p *Player) Handle(ctx context.Context, msg communication.ServerMessage) (any, error) {
	switch {
	case msg.IsSetup():
		setup, err := msg.Setup()
		if err != nil {
			return nil, err
		}
		return p.ready(setup)
	case msg.Move != nil:
		return p.move(ctx, msg.Move.Moves, msg.State)
	case msg.Stop != nil:
		for _, s := range msg.Stop.Scores {
			log.Info().Msgf("punter %d scored %d", s.Punter, s.Score)
		}
		return nil, nil
	default:
		return nil, errors.New("message is neither setup, move nor stop")
	}
}

func (p *Player) ready(setup game.Setup) (communication.Ready, error) {
	log.Info().Msgf("%s is punter %d of %d on %d sites, %d rivers, %d mines",
		p.Name, setup.Punter, setup.Punters, len(setup.Map.Sites), len(setup.Map.Rivers), len(setup.Map.Mines))
	state, err := json.Marshal(NewState(setup))
	if err != nil {
		return communication.Ready{}, fmt.Errorf("failed to encode state: %w", err)
	}
	return communication.Ready{Ready: setup.Punter, State: state}, nil
}

func (p *Player) move(ctx context.Context, moves []communication.Move, blob json.RawMessage) (communication.Move, error) {
	// The budget runs from the arrival of the request, so decoding and board setup count against it.
	ctx, cancel := context.WithDeadline(ctx, p.clock().Add(p.decider.Budget()))
	defer cancel()

	var state State
	if err := json.Unmarshal(blob, &state); err != nil {
		return communication.Move{}, fmt.Errorf("failed to decode state: %w", err)
	}
	if state.Map == nil {
		return communication.Move{}, errors.New("state has no map")
	}
	state.Moves = append(state.Moves, moves...)

	history, err := communication.ToMoves(state.Moves)
	if err != nil {
		return communication.Move{}, err
	}
	board := searcher.NewBoard(state.Setup(), state.Distances, history)
	move := p.decider.Decide(ctx, board)

	p.turn++
	m := p.decider.Metrics()
	log.Debug().Msgf("turn %d: %s after %v (%d candidates, %d chokepoint pairs)",
		p.turn, move, m.Duration, m.Candidates, m.Pairs)

	reply := communication.FromMove(move)
	if reply.State, err = json.Marshal(state); err != nil {
		return communication.Move{}, fmt.Errorf("failed to encode state: %w", err)
	}
	return reply, nil
}
