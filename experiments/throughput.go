package experiments

import (
	"fmt"
	"isolation/experiments/metrics"
	"isolation/meta"
	"time"
)

// Throughput plays each parallelism level against itself under a fixed time
// budget. Both seats share a config for similar game length; moves are
// sampled so repeated games differ.
func Throughput(radius int, budget time.Duration) Setup {
	configs := []metrics.AgentConfig{}
	matchUps := [][2]metrics.AgentConfig{}
	for i, n := range []int{1, 2, 4, 8, 16} {
		c := meta.Preset(meta.Medium)
		c.MaxSimulations = 0
		c.MaxThinkingTime = budget
		c.Parallelism = n
		config := metrics.AgentConfig{ID: i + 1, Name: fmt.Sprintf("throughput_%d", n), Config: c}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Setup{
		Name:        "throughput",
		Radius:      radius,
		Games:       1,
		Configs:     configs,
		MatchUps:    matchUps,
		Temperature: 1,
	}
}

// SimulationsPerSecond aggregates searched moves by parallelism level.
// Fallback moves are skipped.
func SimulationsPerSecond(moves []metrics.MoveRecord) map[int]float64 {
	simulations := map[int]int{}
	durations := map[int]time.Duration{}
	for _, m := range moves {
		if m.Fallback || m.Duration <= 0 {
			continue
		}
		simulations[m.Parallelism] += m.Simulations
		durations[m.Parallelism] += m.Duration
	}

	rates := make(map[int]float64, len(simulations))
	for p, n := range simulations {
		rates[p] = float64(n) / durations[p].Seconds()
	}
	return rates
}
