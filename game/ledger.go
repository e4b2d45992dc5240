package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRiver  = errors.New("no such river")
	ErrRiverTaken    = errors.New("river already claimed")
	ErrNotOptionable = errors.New("river cannot be optioned")
	ErrNoQuota       = errors.New("option quota exhausted")
	ErrNoCredit      = errors.New("not enough splurge credit")
	ErrBadRoute      = errors.New("splurge route too short")
	ErrDisabled      = errors.New("rule extension disabled")
)

// Ledger records who owns which river. It is the bookkeeping half of a match state; connectivity is
// derived separately from the same history.
type Ledger struct {
	Map      *Map
	Settings Settings

	owner       map[River]int
	optioner    map[River]int
	optionsUsed map[int]int
	credit      map[int]int
}

// NewLedger returns an empty ledger for m.
func NewLedger(m *Map, settings Settings) *Ledger {
	return &Ledger{
		Map:         m,
		Settings:    settings,
		owner:       make(map[River]int, len(m.Rivers)),
		optioner:    make(map[River]int),
		optionsUsed: make(map[int]int),
		credit:      make(map[int]int),
	}
}

// Owner returns the punter that claimed r, if any.
func (l *Ledger) Owner(r River) (int, bool) {
	p, ok := l.owner[r.Canonical()]
	return p, ok
}

// Optioner returns the punter that bought an option on r, if any.
func (l *Ledger) Optioner(r River) (int, bool) {
	p, ok := l.optioner[r.Canonical()]
	return p, ok
}

// Owns reports whether punter may use r, either as its claimer or its optioner.
func (l *Ledger) Owns(punter int, r River) bool {
	if p, ok := l.Owner(r); ok && p == punter {
		return true
	}
	p, ok := l.Optioner(r)
	return ok && p == punter
}

// OptionsLeft is the number of options punter may still buy.
func (l *Ledger) OptionsLeft(punter int) int {
	if !l.Settings.Options {
		return 0
	}
	return OptionQuota(l.Map) - l.optionsUsed[punter]
}

// Credit is the number of banked passes punter may spend on a splurge.
func (l *Ledger) Credit(punter int) int {
	return l.credit[punter]
}

// Unclaimed lists the rivers nobody has claimed, in map order.
func (l *Ledger) Unclaimed() []River {
	var rivers []River
	for _, r := range l.Map.Rivers {
		if _, ok := l.owner[r.Canonical()]; !ok {
			rivers = append(rivers, r)
		}
	}
	return rivers
}

// Owned lists the rivers punter may use, in map order.
func (l *Ledger) Owned(punter int) []River {
	var rivers []River
	for _, r := range l.Map.Rivers {
		if l.Owns(punter, r) {
			rivers = append(rivers, r)
		}
	}
	return rivers
}

// Optionable lists rivers claimed by someone other than punter that carry no option yet.
func (l *Ledger) Optionable(punter int) []River {
	if l.OptionsLeft(punter) <= 0 {
		return nil
	}
	var rivers []River
	for _, r := range l.Map.Rivers {
		key := r.Canonical()
		owner, claimed := l.owner[key]
		if !claimed || owner == punter {
			continue
		}
		if _, optioned := l.optioner[key]; optioned {
			continue
		}
		rivers = append(rivers, r)
	}
	return rivers
}

// Check reports why m would be illegal for the current state, or nil.
func (l *Ledger) Check(m Move) error {
	switch m.Kind {
	case PassMove:
		return nil
	case ClaimMove:
		return l.checkClaim(River{Source: m.Source, Target: m.Target})
	case OptionMove:
		return l.checkOption(m.Punter, River{Source: m.Source, Target: m.Target})
	case SplurgeMove:
		if !l.Settings.Splurges {
			return fmt.Errorf("splurge: %w", ErrDisabled)
		}
		rivers := m.Rivers()
		if len(rivers) == 0 {
			return ErrBadRoute
		}
		if need := len(rivers) - 1; l.credit[m.Punter] < need {
			return fmt.Errorf("splurge of %d rivers needs %d: %w", len(rivers), need, ErrNoCredit)
		}
		seen := make(map[River]bool, len(rivers))
		for _, r := range rivers {
			if seen[r.Canonical()] {
				return fmt.Errorf("river %s repeated: %w", r, ErrRiverTaken)
			}
			seen[r.Canonical()] = true
			if err := l.checkClaim(r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown move kind %s", m.Kind)
	}
}

func (l *Ledger) checkClaim(r River) error {
	if !l.Map.HasRiver(r) {
		return fmt.Errorf("river %s: %w", r, ErrUnknownRiver)
	}
	if _, ok := l.owner[r.Canonical()]; ok {
		return fmt.Errorf("river %s: %w", r, ErrRiverTaken)
	}
	return nil
}

func (l *Ledger) checkOption(punter int, r River) error {
	if !l.Settings.Options {
		return fmt.Errorf("option: %w", ErrDisabled)
	}
	if !l.Map.HasRiver(r) {
		return fmt.Errorf("river %s: %w", r, ErrUnknownRiver)
	}
	key := r.Canonical()
	owner, claimed := l.owner[key]
	if !claimed || owner == punter {
		return fmt.Errorf("river %s: %w", r, ErrNotOptionable)
	}
	if _, ok := l.optioner[key]; ok {
		return fmt.Errorf("river %s: %w", r, ErrNotOptionable)
	}
	if l.OptionsLeft(punter) <= 0 {
		return ErrNoQuota
	}
	return nil
}

// Play records m without checking it.
func (l *Ledger) Play(m Move) {
	switch m.Kind {
	case PassMove:
		l.credit[m.Punter]++
	case ClaimMove:
		l.owner[River{Source: m.Source, Target: m.Target}.Canonical()] = m.Punter
	case OptionMove:
		l.optioner[River{Source: m.Source, Target: m.Target}.Canonical()] = m.Punter
		l.optionsUsed[m.Punter]++
	case SplurgeMove:
		rivers := m.Rivers()
		for _, r := range rivers {
			l.owner[r.Canonical()] = m.Punter
		}
		if spent := len(rivers) - 1; spent > 0 {
			l.credit[m.Punter] -= spent
		}
	}
}

// Copy returns an independent ledger with the same records.
func (l *Ledger) Copy() *Ledger {
	c := NewLedger(l.Map, l.Settings)
	for k, v := range l.owner {
		c.owner[k] = v
	}
	for k, v := range l.optioner {
		c.optioner[k] = v
	}
	for k, v := range l.optionsUsed {
		c.optionsUsed[k] = v
	}
	for k, v := range l.credit {
		c.credit[k] = v
	}
	return c
}
