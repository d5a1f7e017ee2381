package agent

import (
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type BotOption func(b *Bot)

// WithConfig replaces the preset parameters. The difficulty label is kept
// from config.
func WithConfig(config meta.Config) BotOption {
	return func(b *Bot) {
		b.config = config
	}
}

// WithSearchOptions passes options through to the search engine.
func WithSearchOptions(options ...searcher.Option) BotOption {
	return func(b *Bot) {
		b.searchOptions = append(b.searchOptions, options...)
	}
}

// WithSink exports searches and fallbacks to Prometheus.
func WithSink(sink *metrics.Sink) BotOption {
	return func(b *Bot) {
		b.sink = sink
	}
}

// WithSleep replaces time.Sleep for the minimum thinking delay.
func WithSleep(sleep func(time.Duration)) BotOption {
	return func(b *Bot) {
		if sleep != nil {
			b.sleep = sleep
		}
	}
}

func WithLogger(logger zerolog.Logger) BotOption {
	return func(b *Bot) {
		b.logger = logger
	}
}

// Bot plays with MCTS. A failed search never reaches the caller: the bot
// substitutes the first legal action instead.
type Bot struct {
	mu            sync.Mutex
	name          string
	config        meta.Config
	searchOptions []searcher.Option
	mcts          *searcher.MCTS
	sink          *metrics.Sink
	sleep         func(time.Duration)
	now           func() time.Time
	logger        zerolog.Logger

	fallbacks int
	last      metrics.SearchMetric
	fellBack  bool
}

// NewBot creates a bot playing at the given difficulty preset.
func NewBot(name string, difficulty meta.Difficulty, options ...BotOption) *Bot {
	b := &Bot{
		name:   name,
		config: meta.Preset(difficulty),
		sleep:  time.Sleep,
		now:    time.Now,
		logger: log.Logger,
	}
	for _, option := range options {
		option(b)
	}
	b.logger = b.logger.With().Str("bot", name).Logger()
	b.mcts = searcher.NewMCTS(b.config, b.engineOptions()...)
	return b
}

func (b *Bot) engineOptions() []searcher.Option {
	options := []searcher.Option{searcher.WithLogger(b.logger)}
	if b.sink != nil {
		options = append(options, searcher.WithCollector(b.sink.Collector()))
	}
	return append(options, b.searchOptions...)
}

func (b *Bot) Name() string {
	return b.name
}

func (b *Bot) Difficulty() meta.Difficulty {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.config.Difficulty
}

// SetDifficulty switches to another preset. The search tree is dropped.
func (b *Bot) SetDifficulty(difficulty meta.Difficulty) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.config = meta.Preset(difficulty)
	b.mcts.SetConfig(b.config)
}

// Fallbacks counts moves that did not come from a successful search.
func (b *Bot) Fallbacks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fallbacks
}

func (b *Bot) Stats() searcher.Stats {
	return b.mcts.Stats()
}

func (b *Bot) Policy() map[string]float64 {
	return b.mcts.Policy()
}

func (b *Bot) LastSearch() (metrics.SearchMetric, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.fellBack
}

// GetBestMove searches for playerID and waits out the minimum thinking time.
func (b *Bot) GetBestMove(state *game.GameState, playerID string) game.Move {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := b.now()
	move, err := b.search(state, playerID)
	b.fellBack = err != nil
	if err != nil {
		b.fallbacks++
		if b.sink != nil {
			b.sink.Fallback(b.config.Difficulty)
		}
		b.logger.Warn().Err(err).Str("player", playerID).Msg("search failed, playing fallback move")
		move = Fallback(state, playerID)
		move.Timestamp = b.now().UnixMilli()
	}
	b.last = searchMetric(b.config, b.mcts.Stats())

	if wait := b.config.MinThinkingTime - b.now().Sub(start); wait > 0 {
		b.sleep(wait)
	}
	return move
}

// search runs the engine and turns a panic into an error.
func (b *Bot) search(state *game.GameState, playerID string) (move game.Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search panicked: %v", r)
		}
	}()
	return b.mcts.Search(state, playerID)
}

func searchMetric(config meta.Config, stats searcher.Stats) metrics.SearchMetric {
	return metrics.SearchMetric{
		Difficulty:   string(config.Difficulty),
		Parallelism:  config.Parallelism,
		Policy:       string(config.SimulationPolicy),
		Duration:     stats.Duration,
		Simulations:  stats.Simulations,
		FullPlayouts: stats.FullPlayouts,
		MaxDepth:     stats.MaxDepth,
		Cutoff:       config.MaxSimulationDepth,
		IsTreeReset:  !stats.TreeReused,
	}
}
