package searcher

import (
	"isolation/game"
	"isolation/lattice"
	"isolation/meta"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestBackup(t *testing.T) {
	chain := func() []*decision {
		root := &decision{}
		a := &decision{parent: root}
		b := &decision{parent: a}
		c := &decision{parent: b}
		return []*decision{root, a, b, c}
	}

	for _, r := range []float64{1, 0, 0.75} {
		t.Run("flips the result at every ply", func(t *testing.T) {
			nodes := chain()

			backup(nodes[3], r)

			want := []float64{1 - r, r, 1 - r, r}
			for depth, n := range nodes {
				require.Equal(t, 1, n.visits, "Depth %d should be visited once", depth)
				require.InDelta(t, want[depth], n.wins, 1e-9,
					"Depth %d should hold %v for r=%v", depth, want[depth], r)
			}
		})
	}

	t.Run("stops at a detached root", func(t *testing.T) {
		nodes := chain()
		nodes[1].parent = nil

		backup(nodes[3], 1)

		require.Zero(t, nodes[0].visits, "Detached ancestors stay untouched")
		require.Equal(t, 1, nodes[1].visits)
	})
}

func TestSelectThenExpand(t *testing.T) {
	t.Run("expands the root first", func(t *testing.T) {
		root := newDecision(nil, game.Move{}, newState(2, lattice.Center, lattice.Coord{Q: 1, R: 0}))

		leaf, depth := selectThenExpand(root, 1.41, 0, rand.New(rand.NewSource(1)))

		require.Equal(t, 1, depth)
		require.Same(t, root, leaf.parent)
	})

	t.Run("descends through a fully expanded node", func(t *testing.T) {
		root := newDecision(nil, game.Move{}, newState(1, lattice.Center, lattice.Coord{Q: 1, R: 0}))
		rng := rand.New(rand.NewSource(2))
		for len(root.untriedMoves()) > 0 {
			backup(root.expand(rng), 0.5)
		}

		leaf, depth := selectThenExpand(root, 1.41, 0, rng)

		require.Equal(t, 2, depth)
		require.Same(t, root, leaf.parent.parent)
	})

	t.Run("stops at the depth limit", func(t *testing.T) {
		root := newDecision(nil, game.Move{}, newState(1, lattice.Center, lattice.Coord{Q: 1, R: 0}))
		rng := rand.New(rand.NewSource(3))
		for len(root.untriedMoves()) > 0 {
			backup(root.expand(rng), 0.5)
		}
		children := len(root.children)

		leaf, depth := selectThenExpand(root, 1.41, 1, rng)

		require.Equal(t, 1, depth)
		require.Same(t, root, leaf.parent)
		require.Empty(t, leaf.children, "Nothing expanded beyond the limit")
		require.Len(t, root.children, children)
	})

	t.Run("stays on a terminal root", func(t *testing.T) {
		state := newState(1, lattice.Center, lattice.Coord{Q: 1, R: 0})
		for _, k := range state.Network.Keys() {
			state.Network.Remove(k.A, k.B)
		}
		root := newDecision(nil, game.Move{}, state)

		leaf, depth := selectThenExpand(root, 1.41, 0, rand.New(rand.NewSource(4)))

		require.Same(t, root, leaf)
		require.Zero(t, depth)
	})
}

func TestRollout(t *testing.T) {
	t.Run("finished state scores the recorded winner", func(t *testing.T) {
		state := newState(1, lattice.Center, lattice.Coord{Q: 1, R: 0})
		state.Phase = game.Finished
		state.Winner = "bob"

		rng := rand.New(rand.NewSource(1))
		result, full := rollout(state, "alice", meta.RandomPolicy, 10, game.EvaluateMobility, rng)
		require.True(t, full)
		require.Equal(t, LOSS, result)

		result, _ = rollout(state, "bob", meta.RandomPolicy, 10, game.EvaluateMobility, rng)
		require.Equal(t, WIN, result)
	})

	t.Run("zero cutoff falls back to the evaluation", func(t *testing.T) {
		state := game.NewGame("g", alice, bob, game.Config{GridRadius: 3, StartPositions: game.OpposedStarts(3)})

		result, full := rollout(state, "alice", meta.BiasedPolicy, 0, game.EvaluateMobility, rand.New(rand.NewSource(1)))

		require.False(t, full)
		require.InDelta(t, 0.5, result, 1e-9, "Symmetric start should evaluate even")
	})

	t.Run("stuck player to move loses immediately", func(t *testing.T) {
		state := newState(2, lattice.Coord{Q: -2, R: 0}, lattice.Coord{Q: 2, R: 0})
		for _, n := range lattice.Neighbors(state.Players[0].Position) {
			for _, m := range lattice.Neighbors(n) {
				state.Network.Remove(n, m)
			}
		}

		result, full := rollout(state, "alice", meta.RandomPolicy, 10, game.EvaluateMobility, rand.New(rand.NewSource(1)))

		require.True(t, full)
		require.Equal(t, LOSS, result)
	})

	t.Run("never mutates the input state", func(t *testing.T) {
		for _, policy := range []meta.SimulationPolicy{meta.RandomPolicy, meta.BiasedPolicy} {
			state := game.NewGame("g", alice, bob, game.Config{GridRadius: 3, StartPositions: game.OpposedStarts(3)})
			before := state.Clone()

			for seed := uint64(0); seed < 20; seed++ {
				result, full := rollout(state, "alice", policy, 200, game.EvaluateMobility, rand.New(rand.NewSource(seed)))
				require.True(t, full, "A 3-radius game always ends within 200 actions")
				require.Contains(t, []float64{WIN, LOSS}, result)
			}

			require.Equal(t, before.Network.Edges, state.Network.Edges)
			require.Equal(t, before.Players, state.Players)
			require.Equal(t, before.Current, state.Current)
		}
	})
}
