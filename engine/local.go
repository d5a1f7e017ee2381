package engine

import (
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

func WithMaxTurns(n int) Option {
	return func(e *Local) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithStartingPlayer picks the seat (0 or 1) that moves first.
func WithStartingPlayer(idx int) Option {
	return func(e *Local) {
		e.start = idx % 2
	}
}

func WithGameID(id string) Option {
	return func(e *Local) {
		if id != "" {
			e.id = id
		}
	}
}

// WithObserver is called with every accepted move, in order.
func WithObserver(observe func(Update)) Option {
	return func(e *Local) {
		e.observe = observe
	}
}

// Local plays two in-process agents against each other.
type Local struct {
	id       string
	agents   [2]agent.Agent
	maxTurns int
	start    int
	observe  func(Update)

	host    *Host
	updates UpdateGetter
}

func NewLocal(agents [2]agent.Agent, config game.Config, options ...Option) *Local {
	e := &Local{
		id:       uuid.NewString(),
		agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}

	if config.StartPositions == nil {
		config.StartPositions = game.OpposedStarts(config.GridRadius)
	}
	players := [2]game.Player{}
	for i, a := range agents {
		players[i] = game.Player{ID: fmt.Sprintf("player%d", i+1), Name: a.Name()}
	}
	state := game.NewGame(e.id, players[0], players[1], config)
	state.Current = e.start
	e.host, e.updates = NewHost(state)
	return e
}

func (e *Local) ID() string {
	return e.id
}

// State is the current authoritative state.
func (e *Local) State() *game.GameState {
	return e.host.State()
}

// Run executes the game loop until a winner is found or maxTurns moves were
// played. An agent move that the host rejects is replaced by the first legal
// action and flagged as a fallback.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	state := e.host.State()
	gameMetric := metrics.GameMetric{
		ID:             e.id,
		StartingPlayer: e.start,
		Radius:         state.Network.Radius,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: %s is starting", e.id, state.CurrentPlayer().Name)

	// Loop until there's a winner
	turn := 1
	for !e.host.Over() && turn <= e.maxTurns {
		state = e.host.State()
		idx := state.Current
		mover := state.CurrentPlayer()

		move := e.agents[idx].GetBestMove(state, mover.ID)
		mm := metrics.MoveMetric{Step: turn, Player: idx}
		if reporter, ok := e.agents[idx].(agent.Reporter); ok {
			mm.SearchMetric, mm.Fallback = reporter.LastSearch()
		}

		if err := e.host.Play(move); err != nil {
			log.Warn().Err(err).Msgf("game %s: %s returned a rejected move, substituting", e.id, mover.Name)
			move = agent.Fallback(state, mover.ID)
			if err := e.host.Play(move); err != nil {
				panic(fmt.Sprintf("fallback move rejected: %v", err))
			}
			mm.Fallback = true
		}
		mm.Action = move.Key()
		moveMetrics = append(moveMetrics, mm)

		for u, ok := e.updates(); ok; u, ok = e.updates() {
			log.Debug().Msgf("game %s: turn %d %s -> %x", e.id, turn, u.Move, u.Hash)
			if e.observe != nil {
				e.observe(u)
			}
		}
		turn++
	}

	state = e.host.State()
	gameMetric.Winner = state.Winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if state.Winner != "" {
		log.Info().Msgf("game %s ended after %d moves, winner: %s", e.id, len(moveMetrics), state.Winner)
	} else {
		log.Info().Msgf("game %s stopped after %d moves without a winner", e.id, len(moveMetrics))
	}

	return state.Winner, gameMetric, moveMetrics
}
