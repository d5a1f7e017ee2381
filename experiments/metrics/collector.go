package metrics

import (
	"isolation/meta"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Difficulty   string
	Parallelism  int
	Policy       string
	Duration     time.Duration
	Simulations  int
	FullPlayouts int
	MaxDepth     int
	Cutoff       int
	IsTreeReset  bool
}

type MoveMetric struct {
	Step     int
	Player   int // index of the mover
	Action   string
	Fallback bool
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int
	Winner         string // Player ID, "" when the turn cap was hit
	Radius         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector observes a single search. Implementations must be safe for
// concurrent Add* calls.
type Collector interface {
	Start(config meta.Config)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddSimulation()
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	config       meta.Config
	startTime    time.Time
	simulations  atomic.Int32
	fullPlayouts atomic.Int32
	maxDepth     atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

// Start begins a new search and zeroes the counters.
func (m *collector) Start(config meta.Config) {
	m.startTime = time.Now()
	m.config = config
	m.simulations.Store(0)
	m.fullPlayouts.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) ObserveDepth(depth int) {
	d := int32(depth)
	for {
		cur := m.maxDepth.Load()
		if d <= cur || m.maxDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Difficulty:   string(m.config.Difficulty),
		Parallelism:  m.config.Parallelism,
		Policy:       string(m.config.SimulationPolicy),
		Duration:     time.Since(m.startTime),
		Simulations:  int(m.simulations.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
		Cutoff:       m.config.MaxSimulationDepth,
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(config meta.Config)  {}
func (m *dummyCollector) SetTreeReset(value bool)   {}
func (m *dummyCollector) AddFullPlayout()           {}
func (m *dummyCollector) AddSimulation()            {}
func (m *dummyCollector) ObserveDepth(depth int)    {}
func (m *dummyCollector) Complete() SearchMetric    { return SearchMetric{} }
