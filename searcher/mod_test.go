package searcher

import "punter/game"

func river(s, t int) game.River {
	return game.River{Source: s, Target: t}
}

func newMap(mines []int, rivers ...game.River) *game.Map {
	seen := map[int]bool{}
	m := &game.Map{Rivers: rivers, Mines: mines}
	for _, r := range rivers {
		for _, s := range []int{r.Source, r.Target} {
			if !seen[s] {
				seen[s] = true
				m.Sites = append(m.Sites, game.Site{ID: s})
			}
		}
	}
	return m
}

func newBoard(m *game.Map, me, punters int, settings game.Settings, moves ...game.Move) *Board {
	return NewBoard(game.Setup{Punter: me, Punters: punters, Map: m, Settings: settings}, nil, moves)
}
