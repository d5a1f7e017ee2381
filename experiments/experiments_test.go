package experiments

import (
	"isolation/experiments/metrics"
	"isolation/meta"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func tinyConfig(id int, name string) metrics.AgentConfig {
	c := meta.Preset(meta.Easy)
	c.MaxSimulations = 20
	c.MaxThinkingTime = 0
	c.LogLevel = "disabled"
	return metrics.AgentConfig{ID: id, Name: name, Config: c}
}

func tinySetup() Setup {
	a, b := tinyConfig(1, "a"), tinyConfig(2, "b")
	return Setup{
		Name:     "tiny",
		Radius:   2,
		Games:    2,
		Configs:  []metrics.AgentConfig{a, b},
		MatchUps: [][2]metrics.AgentConfig{{a, b}},
		Seed:     7,
	}
}

func TestRun(t *testing.T) {
	t.Run("plays every game and alternates the starting seat", func(t *testing.T) {
		result := Run(tinySetup())

		require.Len(t, result.Games, 2)
		require.Equal(t, 0, result.Games[0].StartingPlayer)
		require.Equal(t, 1, result.Games[1].StartingPlayer)
		total := 0
		for i, g := range result.Games {
			require.Equal(t, i+1, g.ID)
			require.Equal(t, 1, g.Agent1)
			require.Equal(t, 2, g.Agent2)
			require.NotEmpty(t, g.Winner)
			total += g.TotalMoves
		}
		require.Len(t, result.Moves, total)
		for _, m := range result.Moves {
			require.False(t, m.Fallback)
			require.Equal(t, 20, m.Simulations)
		}
	})

	t.Run("samples moves with a temperature", func(t *testing.T) {
		setup := tinySetup()
		setup.Temperature = 1
		setup.Games = 1

		result := Run(setup)

		require.Len(t, result.Games, 1)
		require.NotEmpty(t, result.Games[0].Winner)
	})

	t.Run("exports to a sink", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		setup := tinySetup()
		setup.Games = 1
		setup.Sink = metrics.NewSink(reg)

		result := Run(setup)

		count, err := testutil.GatherAndCount(reg, "isolation_search_searches_total")
		require.NoError(t, err)
		require.Equal(t, 1, count, "Both bots share the easy label")
		require.NotEmpty(t, result.Moves)
	})
}

func TestSave(t *testing.T) {
	root := t.TempDir()
	setup := tinySetup()
	setup.Games = 1
	result := Run(setup)

	require.NoError(t, Save(root, setup, &result))

	require.DirExists(t, result.Dir)
	require.Equal(t, filepath.Join(root, "tiny"), filepath.Dir(result.Dir))
	for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "move_records.parquet"} {
		info, err := os.Stat(filepath.Join(result.Dir, file))
		require.NoError(t, err, file)
		require.NotZero(t, info.Size(), file)
	}
}

func TestSetups(t *testing.T) {
	t.Run("ladder climbs the presets", func(t *testing.T) {
		s := DifficultyLadder(3, 4)

		require.Len(t, s.Configs, len(meta.Difficulties))
		require.Len(t, s.MatchUps, len(meta.Difficulties)-1)
		for i, m := range s.MatchUps {
			require.Equal(t, meta.Difficulties[i], m[0].Difficulty)
			require.Equal(t, meta.Difficulties[i+1], m[1].Difficulty)
		}
		require.Equal(t, 4, s.Games)
	})

	t.Run("parallelization keeps the sequential baseline", func(t *testing.T) {
		s := Parallelization(3, 2)

		for _, m := range s.MatchUps {
			require.Equal(t, 1, m[0].Parallelism)
			require.Greater(t, m[1].Parallelism, 1)
		}
	})

	t.Run("cutoff keeps the tree within the playout depth", func(t *testing.T) {
		s := Cutoff(3, 2)

		for _, c := range s.Configs {
			require.LessOrEqual(t, c.MaxTreeDepth, c.MaxSimulationDepth)
		}
	})

	t.Run("throughput mirrors each config", func(t *testing.T) {
		s := Throughput(3, 20*time.Millisecond)

		require.Equal(t, 1, s.Games)
		for _, m := range s.MatchUps {
			require.Equal(t, m[0], m[1])
			require.Equal(t, 20*time.Millisecond, m[0].MaxThinkingTime)
			require.Zero(t, m[0].MaxSimulations)
		}
	})
}

func TestSimulationsPerSecond(t *testing.T) {
	moves := []metrics.MoveRecord{
		{MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Parallelism: 1, Simulations: 100, Duration: time.Second}}},
		{MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Parallelism: 1, Simulations: 300, Duration: time.Second}}},
		{MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Parallelism: 4, Simulations: 800, Duration: 2 * time.Second}}},
		{MoveMetric: metrics.MoveMetric{Fallback: true, SearchMetric: metrics.SearchMetric{Parallelism: 4, Simulations: 0, Duration: time.Second}}},
	}

	rates := SimulationsPerSecond(moves)

	require.InDelta(t, 200.0, rates[1], 1e-9)
	require.InDelta(t, 400.0, rates[4], 1e-9)
}
