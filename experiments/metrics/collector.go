package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	BoardSize    int
	Duration     time.Duration
	Episodes     int // completed iterations, equal to root visits
	Discarded    int // iterations dropped because the expanded move was illegal
	FullPlayouts int // rollouts that ended with two passes rather than the cutoff
	Cutoff       int
	Exploration  float64
}

type MoveMetric struct {
	Step   int
	Player int // 1 black, 2 white
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // 0 on a draw
	BlackScore     float64
	WhiteScore     float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(boardSize, cutoff int, exploration float64)
	AddEpisode()
	AddDiscarded()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	boardSize    int
	cutoff       int
	exploration  float64
	startTime    time.Time
	episodes     atomic.Int32
	discarded    atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(boardSize, cutoff int, exploration float64) {
	m.startTime = time.Now()
	m.boardSize = boardSize
	m.cutoff = cutoff
	m.exploration = exploration
	m.episodes.Store(0)
	m.discarded.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddDiscarded() {
	m.discarded.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		BoardSize:    m.boardSize,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Discarded:    int(m.discarded.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Exploration:  m.exploration,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(boardSize, cutoff int, exploration float64) {}
func (m *dummyCollector) AddEpisode()                                      {}
func (m *dummyCollector) AddDiscarded()                                    {}
func (m *dummyCollector) AddFullPlayout()                                  {}
func (m *dummyCollector) Complete() SearchMetric                           { return SearchMetric{} }
