package communication

import (
	"encoding/json"
	"errors"
	"fmt"

	"punter/game"
)

// ErrEmptyMove reports a move message with none of claim, pass, splurge or option set.
var ErrEmptyMove = errors.New("move has no claim, pass, splurge or option")

type Me struct {
	Me string `json:"me"`
}

type You struct {
	You string `json:"you"`
}

// ServerMessage is anything the runner sends after the handshake: a setup, a move request or a stop.
// Which one it is follows from the populated fields.
type ServerMessage struct {
	Punter   *int           `json:"punter,omitempty"`
	Punters  *int           `json:"punters,omitempty"`
	Map      *game.Map      `json:"map,omitempty"`
	Settings *game.Settings `json:"settings,omitempty"`

	Move *Moves `json:"move,omitempty"`
	Stop *Stop  `json:"stop,omitempty"`

	State json.RawMessage `json:"state,omitempty"`
}

type Moves struct {
	Moves []Move `json:"moves,omitempty"`
}

type Stop struct {
	Moves  []Move  `json:"moves,omitempty"`
	Scores []Score `json:"scores,omitempty"`
}

type Score struct {
	Punter int `json:"punter"`
	Score  int `json:"score"`
}

// Ready answers a setup.
type Ready struct {
	Ready int             `json:"ready"`
	State json.RawMessage `json:"state,omitempty"`
}

// NewSetup builds the setup message for one punter.
func NewSetup(setup game.Setup) ServerMessage {
	settings := setup.Settings
	return ServerMessage{
		Punter:   &setup.Punter,
		Punters:  &setup.Punters,
		Map:      setup.Map,
		Settings: &settings,
	}
}

// IsSetup reports whether the message carries the initial setup.
func (m ServerMessage) IsSetup() bool {
	return m.Punter != nil && m.Punters != nil && m.Map != nil
}

func (m ServerMessage) Setup() (game.Setup, error) {
	if !m.IsSetup() {
		return game.Setup{}, errors.New("message is not a setup")
	}
	setup := game.Setup{Punter: *m.Punter, Punters: *m.Punters, Map: m.Map}
	if m.Settings != nil {
		setup.Settings = *m.Settings
	}
	return setup, nil
}

type ClaimMove struct {
	Punter int `json:"punter"`
	Source int `json:"source"`
	Target int `json:"target"`
}

type PassMove struct {
	Punter int `json:"punter"`
}

type SplurgeMove struct {
	Punter int   `json:"punter"`
	Route  []int `json:"route,omitempty"`
}

// Move is the wire form of a game.Move: exactly one of the variant fields is set. A move sent by a
// punter also carries its state.
type Move struct {
	Claim   *ClaimMove   `json:"claim,omitempty"`
	Pass    *PassMove    `json:"pass,omitempty"`
	Splurge *SplurgeMove `json:"splurge,omitempty"`
	Option  *ClaimMove   `json:"option,omitempty"`

	State json.RawMessage `json:"state,omitempty"`
}

func FromMove(m game.Move) Move {
	switch m.Kind {
	case game.ClaimMove:
		return Move{Claim: &ClaimMove{Punter: m.Punter, Source: m.Source, Target: m.Target}}
	case game.OptionMove:
		return Move{Option: &ClaimMove{Punter: m.Punter, Source: m.Source, Target: m.Target}}
	case game.SplurgeMove:
		return Move{Splurge: &SplurgeMove{Punter: m.Punter, Route: append([]int(nil), m.Route...)}}
	case game.PassMove:
		return Move{Pass: &PassMove{Punter: m.Punter}}
	default:
		panic(fmt.Sprintf("unknown move kind %v", m.Kind))
	}
}

// ToMove maps the first populated variant, in the order claim, pass, splurge, option.
func (m Move) ToMove() (game.Move, error) {
	switch {
	case m.Claim != nil:
		return game.Claim(m.Claim.Punter, game.River{Source: m.Claim.Source, Target: m.Claim.Target}), nil
	case m.Pass != nil:
		return game.Pass(m.Pass.Punter), nil
	case m.Splurge != nil:
		return game.Splurge(m.Splurge.Punter, m.Splurge.Route), nil
	case m.Option != nil:
		return game.Option(m.Option.Punter, game.River{Source: m.Option.Source, Target: m.Option.Target}), nil
	default:
		return game.Move{}, ErrEmptyMove
	}
}

func FromMoves(moves []game.Move) []Move {
	wire := make([]Move, 0, len(moves))
	for _, m := range moves {
		wire = append(wire, FromMove(m))
	}
	return wire
}

func ToMoves(wire []Move) ([]game.Move, error) {
	moves := make([]game.Move, 0, len(wire))
	for i, w := range wire {
		m, err := w.ToMove()
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// ScoresOf numbers scores by punter.
func ScoresOf(scores []int) []Score {
	result := make([]Score, len(scores))
	for p, s := range scores {
		result[p] = Score{Punter: p, Score: s}
	}
	return result
}
