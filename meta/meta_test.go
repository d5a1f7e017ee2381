package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	t.Run("every preset is free of warnings", func(t *testing.T) {
		for _, d := range Difficulties {
			c := Preset(d)
			require.Equal(t, d, c.Difficulty)
			require.Empty(t, c.Validate(), "Preset %s should validate cleanly", d)
		}
	})

	t.Run("presets grow stronger", func(t *testing.T) {
		for i := 1; i < len(Difficulties); i++ {
			weaker, stronger := Preset(Difficulties[i-1]), Preset(Difficulties[i])
			require.Greater(t, stronger.MaxSimulations, weaker.MaxSimulations)
			require.GreaterOrEqual(t, stronger.MaxThinkingTime, weaker.MaxThinkingTime)
		}
	})

	t.Run("unknown name falls back to medium", func(t *testing.T) {
		require.Equal(t, Preset(Medium), Preset("impossible"))
	})

	t.Run("returns copies", func(t *testing.T) {
		c := Preset(Easy)
		c.MaxSimulations = 1
		require.Equal(t, 200, Preset(Easy).MaxSimulations)
	})
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	require.Equal(t, Hard, d)

	_, err = ParseDifficulty("nightmare")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   int
	}{
		{"simulation depth below tree depth", func(c *Config) { c.MaxSimulationDepth = 2; c.MaxTreeDepth = 5 }, 1},
		{"non-positive exploration", func(c *Config) { c.ExplorationConstant = 0 }, 1},
		{"no budget at all", func(c *Config) { c.MaxSimulations = 0; c.MaxThinkingTime = 0; c.MinThinkingTime = 0 }, 1},
		{"unknown policies", func(c *Config) { c.SimulationPolicy = "greedy"; c.FinalMoveSelection = "vote" }, 2},
		{"no parallelism", func(c *Config) { c.Parallelism = 0 }, 1},
		{"minimum delay above the budget", func(c *Config) { c.MinThinkingTime = 2 * c.MaxThinkingTime }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Preset(Medium)
			tt.modify(&c)
			require.Len(t, c.Validate(), tt.want)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("overrides the named preset", func(t *testing.T) {
		data := []byte("difficulty: hard\nmax_simulations: 123\nmax_thinking_time: 750ms\nsimulation_policy: random\n")

		c, err := Parse(data)

		require.NoError(t, err)
		require.Equal(t, Hard, c.Difficulty)
		require.Equal(t, 123, c.MaxSimulations)
		require.Equal(t, 750*time.Millisecond, c.MaxThinkingTime)
		require.Equal(t, RandomPolicy, c.SimulationPolicy)
		require.Equal(t, Preset(Hard).MaxTreeDepth, c.MaxTreeDepth, "Unset keys keep the preset value")
	})

	t.Run("defaults to medium", func(t *testing.T) {
		c, err := Parse([]byte("exploration_constant: 0.9\n"))
		require.NoError(t, err)
		require.Equal(t, Medium, c.Difficulty)
		require.Equal(t, 0.9, c.ExplorationConstant)
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		_, err := Parse([]byte("difficulty: nightmare\n"))
		require.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("max_simulations: [1, 2\n"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("without a file uses medium", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Preset(Medium), c)
	})

	t.Run("reads a file and applies env overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bot.yaml")
		require.NoError(t, os.WriteFile(path, []byte("difficulty: easy\nparallelism: 2\n"), 0o644))
		t.Setenv("ISOLATION_MAX_SIMULATIONS", "77")
		t.Setenv("ISOLATION_THINKING_TIME", "2s")
		t.Setenv("ISOLATION_REUSE_TREE", "true")
		t.Setenv("ISOLATION_LOG_LEVEL", "debug")

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, Easy, c.Difficulty)
		require.Equal(t, 2, c.Parallelism)
		require.Equal(t, 77, c.MaxSimulations)
		require.Equal(t, 2*time.Second, c.MaxThinkingTime)
		require.True(t, c.ReuseTree)
		require.Equal(t, "debug", c.LogLevel)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reports a malformed env value", func(t *testing.T) {
		t.Setenv("ISOLATION_PARALLELISM", "many")
		_, err := Load("")
		require.Error(t, err)
	})
}
