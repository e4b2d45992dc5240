package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one turn decision.
type SearchMetric struct {
	Budget     time.Duration
	Duration   time.Duration
	Candidates int
	Pairs      int  // anchor pairs examined by the chokepoint search
	Chokepoint bool // the move came from the chokepoint search
	Late       bool // the chokepoint search missed the deadline
}

// MoveMetric describes one move as seen by the match runner.
type MoveMetric struct {
	Turn     int
	Punter   int
	Kind     string
	Legal    bool
	Duration time.Duration
}

// GameMetric describes a finished match.
type GameMetric struct {
	ID         string
	Map        string
	Punters    int
	Scores     []int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(budget time.Duration)
	AddCandidates(n int)
	AddPairs(n int)
	SetChokepoint(played, late bool)
	Complete() SearchMetric
}

type collector struct {
	budget     time.Duration
	startTime  time.Time
	candidates atomic.Int32
	pairs      atomic.Int32
	chokepoint atomic.Bool
	late       atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget time.Duration) {
	m.startTime = time.Now()
	m.budget = budget
	m.candidates.Store(0)
	m.pairs.Store(0)
	m.chokepoint.Store(false)
	m.late.Store(false)
}

func (m *collector) AddCandidates(n int) {
	m.candidates.Add(int32(n))
}

func (m *collector) AddPairs(n int) {
	m.pairs.Add(int32(n))
}

func (m *collector) SetChokepoint(played, late bool) {
	m.chokepoint.Store(played)
	m.late.Store(late)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:     m.budget,
		Duration:   time.Since(m.startTime),
		Candidates: int(m.candidates.Load()),
		Pairs:      int(m.pairs.Load()),
		Chokepoint: m.chokepoint.Load(),
		Late:       m.late.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget time.Duration)      {}
func (m *dummyCollector) AddCandidates(n int)             {}
func (m *dummyCollector) AddPairs(n int)                  {}
func (m *dummyCollector) SetChokepoint(played, late bool) {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{} }
