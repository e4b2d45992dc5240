package gamemaster

import (
	"errors"
	"fmt"

	"punter/game"
)

var ErrWrongPunter = errors.New("not this punter's turn")

// GameMaster adjudicates a match: whose turn it is, which moves are legal and the final scores.
// Every punter starts with a pass on record, so the first requests carry one move per punter.
type GameMaster struct {
	Map      *game.Map
	Punters  int
	Settings game.Settings

	ledger    *game.Ledger
	distances game.DistanceTable
	moves     []game.Move
	turn      int
}

func NewGameMaster(m *game.Map, punters int, settings game.Settings) *GameMaster {
	gm := &GameMaster{
		Map:       m,
		Punters:   punters,
		Settings:  settings,
		ledger:    game.NewLedger(m, settings),
		distances: game.NewDistanceTable(m.Mines, game.NewAdjacency(m.Rivers)),
	}
	for p := 0; p < punters; p++ {
		gm.record(game.Pass(p))
	}
	return gm
}

// Setup is what punter learns before the first move.
func (gm *GameMaster) Setup(punter int) game.Setup {
	return game.Setup{Punter: punter, Punters: gm.Punters, Map: gm.Map, Settings: gm.Settings}
}

// Current is the punter to move.
func (gm *GameMaster) Current() int {
	return gm.turn % gm.Punters
}

func (gm *GameMaster) Turn() int {
	return gm.turn
}

// Over reports whether every turn has been played. A match lasts one turn per river.
func (gm *GameMaster) Over() bool {
	return gm.turn >= len(gm.Map.Rivers)
}

// Pending lists the moves made since the current punter's previous turn, its own included.
func (gm *GameMaster) Pending() []game.Move {
	n := min(gm.Punters, len(gm.moves))
	return append([]game.Move(nil), gm.moves[len(gm.moves)-n:]...)
}

// Play records the current punter's move and advances the turn. A move that is illegal, or made
// on behalf of another punter, is recorded as a pass; the error says why.
func (gm *GameMaster) Play(m game.Move) (game.Move, error) {
	if gm.Over() {
		return game.Move{}, errors.New("match is over")
	}
	current := gm.Current()
	var err error
	if m.Punter != current {
		err = fmt.Errorf("move %s on punter %d's turn: %w", m, current, ErrWrongPunter)
	} else if err = gm.ledger.Check(m); err != nil {
		err = fmt.Errorf("move %s: %w", m, err)
	}
	if err != nil {
		m = game.Pass(current)
	}
	gm.record(m)
	gm.turn++
	return m, err
}

func (gm *GameMaster) record(m game.Move) {
	gm.ledger.Play(m)
	gm.moves = append(gm.moves, m)
}

// Moves is the full history, seed passes included.
func (gm *GameMaster) Moves() []game.Move {
	return append([]game.Move(nil), gm.moves...)
}

// Ledger returns a copy of the ownership records.
func (gm *GameMaster) Ledger() *game.Ledger {
	return gm.ledger.Copy()
}

// Scores are the current scores indexed by punter.
func (gm *GameMaster) Scores() []int {
	return game.NewForest(gm.Map, gm.Punters, gm.moves).Scores(gm.distances)
}
