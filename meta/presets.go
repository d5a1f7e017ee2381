package meta

import (
	"fmt"
	"strings"
	"time"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Difficulties lists the presets from weakest to strongest.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

type SimulationPolicy string

const (
	RandomPolicy SimulationPolicy = "random"
	BiasedPolicy SimulationPolicy = "biased"
)

type FinalMoveSelection string

const (
	Robust     FinalMoveSelection = "robust" // most visited child
	MaxWinRate FinalMoveSelection = "max"    // best win rate for the searching player
)

// Config holds every tunable of a search.
type Config struct {
	Difficulty          Difficulty         `yaml:"difficulty"`
	MaxSimulations      int                `yaml:"max_simulations"`
	ExplorationConstant float64            `yaml:"exploration_constant"`
	MaxThinkingTime     time.Duration      `yaml:"max_thinking_time"`
	MinThinkingTime     time.Duration      `yaml:"min_thinking_time"`
	MaxTreeDepth        int                `yaml:"max_tree_depth"`
	SimulationPolicy    SimulationPolicy   `yaml:"simulation_policy"`
	MaxSimulationDepth  int                `yaml:"max_simulation_depth"`
	FinalMoveSelection  FinalMoveSelection `yaml:"final_move_selection"`
	Parallelism         int                `yaml:"parallelism"`
	ReuseTree           bool               `yaml:"reuse_tree"`
	LogLevel            string             `yaml:"log_level"`
}

var presets = map[Difficulty]Config{
	Easy: {
		Difficulty:          Easy,
		MaxSimulations:      200,
		ExplorationConstant: 2.0,
		MaxThinkingTime:     300 * time.Millisecond,
		MinThinkingTime:     DEFAULT_MIN_THINKING,
		MaxTreeDepth:        4,
		SimulationPolicy:    RandomPolicy,
		MaxSimulationDepth:  10,
		FinalMoveSelection:  Robust,
		Parallelism:         1,
		LogLevel:            "warn",
	},
	Medium: {
		Difficulty:          Medium,
		MaxSimulations:      1000,
		ExplorationConstant: 1.41,
		MaxThinkingTime:     time.Second,
		MinThinkingTime:     DEFAULT_MIN_THINKING,
		MaxTreeDepth:        8,
		SimulationPolicy:    BiasedPolicy,
		MaxSimulationDepth:  20,
		FinalMoveSelection:  Robust,
		Parallelism:         1,
		LogLevel:            "info",
	},
	Hard: {
		Difficulty:          Hard,
		MaxSimulations:      4000,
		ExplorationConstant: 1.41,
		MaxThinkingTime:     2 * time.Second,
		MinThinkingTime:     DEFAULT_MIN_THINKING,
		MaxTreeDepth:        12,
		SimulationPolicy:    BiasedPolicy,
		MaxSimulationDepth:  40,
		FinalMoveSelection:  Robust,
		Parallelism:         1,
		ReuseTree:           true,
		LogLevel:            "info",
	},
	Expert: {
		Difficulty:          Expert,
		MaxSimulations:      12000,
		ExplorationConstant: 1.2,
		MaxThinkingTime:     4 * time.Second,
		MinThinkingTime:     DEFAULT_MIN_THINKING,
		MaxTreeDepth:        20,
		SimulationPolicy:    BiasedPolicy,
		MaxSimulationDepth:  60,
		FinalMoveSelection:  Robust,
		Parallelism:         4,
		LogLevel:            "debug",
	},
}

// Preset returns a copy of the named preset. Unknown names get Medium.
func Preset(d Difficulty) Config {
	if c, ok := presets[d]; ok {
		return c
	}
	return presets[Medium]
}

// Validate lists suspicious settings. None of them stop a search from running.
func (c Config) Validate() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if c.MaxSimulations <= 0 && c.MaxThinkingTime <= 0 {
		warn("no search budget: max_simulations and max_thinking_time are both non-positive")
	} else if c.MaxSimulations <= 0 {
		warn("max_simulations %d is non-positive, only the time budget applies", c.MaxSimulations)
	} else if c.MaxThinkingTime <= 0 {
		warn("max_thinking_time %s is non-positive, only the simulation budget applies", c.MaxThinkingTime)
	}
	if c.ExplorationConstant <= 0 {
		warn("exploration_constant %.3f is non-positive, selection will not explore", c.ExplorationConstant)
	}
	if c.MaxTreeDepth <= 0 {
		warn("max_tree_depth %d is non-positive, the tree depth is unbounded", c.MaxTreeDepth)
	}
	if c.MaxSimulationDepth <= 0 {
		warn("max_simulation_depth %d is non-positive, playouts stop immediately", c.MaxSimulationDepth)
	} else if c.MaxSimulationDepth < c.MaxTreeDepth {
		warn("max_simulation_depth %d is below max_tree_depth %d", c.MaxSimulationDepth, c.MaxTreeDepth)
	}
	if c.SimulationPolicy != RandomPolicy && c.SimulationPolicy != BiasedPolicy {
		warn("unknown simulation_policy %q, falling back to %q", c.SimulationPolicy, RandomPolicy)
	}
	if c.FinalMoveSelection != Robust && c.FinalMoveSelection != MaxWinRate {
		warn("unknown final_move_selection %q, falling back to %q", c.FinalMoveSelection, Robust)
	}
	if c.Parallelism < 1 {
		warn("parallelism %d is below 1, playouts run one at a time", c.Parallelism)
	}
	if c.MinThinkingTime > c.MaxThinkingTime && c.MaxThinkingTime > 0 {
		warn("min_thinking_time %s exceeds max_thinking_time %s", c.MinThinkingTime, c.MaxThinkingTime)
	}
	return warnings
}
