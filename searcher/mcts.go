package searcher

import (
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// reuseDepth is how many plies below the previous root a reusable node may sit.
const reuseDepth = 2

type Option func(mcts *MCTS)

// MCTS owns one search tree. Search calls are serialized; the previous tree
// is consulted only when the config enables reuse.
type MCTS struct {
	mu          sync.Mutex
	config      meta.Config
	seed        uint64
	rng         *rand.Rand
	evaluate    game.Evaluate
	metrics     metrics.Collector
	logger      zerolog.Logger
	now         func() time.Time
	root        *decision
	stats       Stats
	cacheHits   int
	cacheMisses int
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

// WithClock replaces time.Now for budget checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *MCTS) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMCTS(config meta.Config, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		config:   config,
		seed:     uint64(time.Now().UnixNano()),
		evaluate: game.EvaluateMobility,
		metrics:  metrics.NewDummyCollector(),
		logger:   log.Logger,
		now:      time.Now,
	}
	for _, option := range options {
		option(m)
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	m.logger = m.logger.With().Str("component", "mcts").Logger().Level(logLevel(config.LogLevel))

	for _, warning := range config.Validate() {
		m.logger.Warn().Msgf("config %s: %s", config.Difficulty, warning)
	}
	return m
}

func (m *MCTS) Config() meta.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// SetConfig swaps the search parameters. The current tree is dropped.
func (m *MCTS) SetConfig(config meta.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = config
	m.root = nil
	m.logger = m.logger.Level(logLevel(config.LogLevel))
	for _, warning := range config.Validate() {
		m.logger.Warn().Msgf("config %s: %s", config.Difficulty, warning)
	}
}

// Search runs MCTS from state for playerID, who must be the player to move,
// and returns the chosen move. ErrNoCandidate is returned when no root child
// was ever expanded.
func (m *MCTS) Search(state *game.GameState, playerID string) (game.Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state.CurrentPlayer().ID != playerID {
		return game.Move{}, fmt.Errorf("search for %s: %w", playerID, ErrNotOnTurn)
	}

	start := m.now()
	s := m.newSession(state, playerID)
	m.metrics.Start(m.config)
	m.metrics.SetTreeReset(!s.stats.TreeReused)

	s.run(start, m.now)

	m.metrics.Complete()
	s.stats.Duration = m.now().Sub(start)
	s.stats.RootVisits = s.root.visits
	m.stats = s.stats
	m.root = s.root

	if len(s.root.children) == 0 {
		m.logger.Warn().Msgf("no candidate for %s after %d simulations", playerID, s.stats.Simulations)
		return game.Move{}, ErrNoCandidate
	}

	best := s.root.findBestMove(m.config.FinalMoveSelection)
	m.logSearch(s, best)

	move := best.move
	move.Timestamp = m.now().UnixMilli()
	return move, nil
}

// Stats returns statistics of the last search.
func (m *MCTS) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Policy returns the visit share of each root move after the last search,
// keyed by game.Move.Key. It is empty before the first search.
func (m *MCTS) Policy() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.root == nil {
		return map[string]float64{}
	}
	return m.root.Policy()
}

// Reset discards the tree and all statistics.
func (m *MCTS) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = nil
	m.stats = Stats{}
	m.cacheHits = 0
	m.cacheMisses = 0
}

// session is the state of one Search call.
type session struct {
	root        *decision
	perspective string
	config      meta.Config
	evaluate    game.Evaluate
	rng         *rand.Rand
	metrics     metrics.Collector
	stats       Stats
}

func (m *MCTS) newSession(state *game.GameState, playerID string) *session {
	s := &session{
		perspective: playerID,
		config:      m.config,
		evaluate:    m.evaluate,
		rng:         m.rng,
		metrics:     m.metrics,
	}

	if m.config.ReuseTree && m.root != nil {
		if node := findRoot(m.root, state, playerID); node != nil {
			node.parent = nil
			node.move = game.Move{}
			node.state = state
			s.root = node
			s.stats.TreeReused = true
			m.cacheHits++
		} else {
			m.cacheMisses++
		}
	}
	if s.root == nil {
		s.root = newDecision(nil, game.Move{}, state)
	}
	s.root.untriedMoves()

	s.stats.CacheHits = m.cacheHits
	s.stats.CacheMisses = m.cacheMisses
	return s
}

// findRoot looks for a node matching state within reuseDepth plies of root.
func findRoot(root *decision, state *game.GameState, playerID string) *decision {
	hash := state.Hash()
	level := []*decision{root}
	for depth := 0; depth <= reuseDepth && len(level) > 0; depth++ {
		var next []*decision
		for _, node := range level {
			if node.player == playerID && node.state.ID == state.ID && node.state.Hash() == hash {
				return node
			}
			next = append(next, node.children...)
		}
		level = next
	}
	return nil
}

// run iterates until either budget is spent. The clock is read once per
// iteration, so the time budget can be overrun by one iteration.
func (s *session) run(start time.Time, now func() time.Time) {
	if s.root.isTerminal() {
		return
	}

	budget := s.config.MaxSimulations
	limit := s.config.MaxThinkingTime
	if budget <= 0 && limit <= 0 {
		budget = 1
	}
	deadline := start.Add(limit)

	for (budget <= 0 || s.stats.Simulations < budget) && (limit <= 0 || now().Before(deadline)) {
		s.iterate()
	}
}

func (s *session) iterate() {
	leaf, depth := selectThenExpand(s.root, s.config.ExplorationConstant, s.config.MaxTreeDepth, s.rng)
	s.stats.observeDepth(depth)
	s.metrics.ObserveDepth(depth)

	for _, result := range s.simulate(leaf) {
		backup(leaf, result)
	}
}

// simulate runs Parallelism independent playouts from leaf. Each playout has
// its own clone and RNG; results come back in launch order.
func (s *session) simulate(leaf *decision) []float64 {
	n := max(s.config.Parallelism, 1)
	results := make([]float64, n)
	full := make([]bool, n)

	if n == 1 {
		results[0], full[0] = rollout(leaf.state, leaf.player, s.config.SimulationPolicy, s.config.MaxSimulationDepth, s.evaluate, s.rng)
	} else {
		seeds := make([]uint64, n)
		for i := range seeds {
			seeds[i] = s.rng.Uint64()
		}

		var g errgroup.Group
		for i := 0; i < n; i++ {
			i := i // per-iteration copy (pre-Go 1.22 loop semantics)
			g.Go(func() error {
				rng := rand.New(rand.NewSource(seeds[i]))
				results[i], full[i] = rollout(leaf.state, leaf.player, s.config.SimulationPolicy, s.config.MaxSimulationDepth, s.evaluate, rng)
				return nil
			})
		}
		_ = g.Wait() // playouts never fail
	}

	for _, f := range full {
		s.stats.Simulations++
		s.metrics.AddSimulation()
		if f {
			s.stats.FullPlayouts++
			s.metrics.AddFullPlayout()
		}
	}
	return results
}

func (m *MCTS) logSearch(s *session, best *decision) {
	if m.logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	m.logger.Debug().
		Str("player", s.perspective).
		Int("simulations", s.stats.Simulations).
		Int("full_playouts", s.stats.FullPlayouts).
		Float64("avg_depth", s.stats.AverageDepth).
		Int("max_depth", s.stats.MaxDepth).
		Bool("tree_reused", s.stats.TreeReused).
		Dur("duration", s.stats.Duration).
		Str("move", best.move.Key()).
		Msg("search complete")
	for _, child := range s.root.children {
		m.logger.Debug().
			Str("move", child.move.Key()).
			Int("visits", child.visits).
			Float64("win_rate", valueForParent(child)).
			Msg("root child")
	}
}

func logLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
