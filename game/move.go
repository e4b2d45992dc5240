package game

import "fmt"

// MoveKind tags the variant held by a Move.
type MoveKind int

const (
	ClaimMove MoveKind = iota
	PassMove
	SplurgeMove
	OptionMove
)

func (k MoveKind) String() string {
	switch k {
	case ClaimMove:
		return "claim"
	case PassMove:
		return "pass"
	case SplurgeMove:
		return "splurge"
	case OptionMove:
		return "option"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// Move is one punter action. Source and Target are set for claims and options, Route for splurges.
type Move struct {
	Kind   MoveKind
	Punter int
	Source int
	Target int
	Route  []int
}

func Claim(punter int, r River) Move {
	return Move{Kind: ClaimMove, Punter: punter, Source: r.Source, Target: r.Target}
}

func Pass(punter int) Move {
	return Move{Kind: PassMove, Punter: punter}
}

func Option(punter int, r River) Move {
	return Move{Kind: OptionMove, Punter: punter, Source: r.Source, Target: r.Target}
}

func Splurge(punter int, route []int) Move {
	return Move{Kind: SplurgeMove, Punter: punter, Route: append([]int(nil), route...)}
}

// Rivers decomposes the move into the rivers it claims, in order.
func (m Move) Rivers() []River {
	switch m.Kind {
	case ClaimMove, OptionMove:
		return []River{{Source: m.Source, Target: m.Target}}
	case SplurgeMove:
		if len(m.Route) < 2 {
			return nil
		}
		rivers := make([]River, 0, len(m.Route)-1)
		for i := 1; i < len(m.Route); i++ {
			rivers = append(rivers, River{Source: m.Route[i-1], Target: m.Route[i]})
		}
		return rivers
	default:
		return nil
	}
}

func (m Move) String() string {
	switch m.Kind {
	case ClaimMove, OptionMove:
		return fmt.Sprintf("%s(%d, %d-%d)", m.Kind, m.Punter, m.Source, m.Target)
	case SplurgeMove:
		return fmt.Sprintf("%s(%d, %v)", m.Kind, m.Punter, m.Route)
	default:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Punter)
	}
}
