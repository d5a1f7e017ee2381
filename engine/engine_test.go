package engine

import (
	"isolation/game"
	"isolation/lattice"
	"isolation/meta"
	"isolation/player"
	"isolation/searcher/agent"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubborn always answers with an empty move.
type stubborn struct{}

func (stubborn) GetBestMove(*game.GameState, string) game.Move { return game.Move{} }
func (stubborn) Name() string                                  { return "stubborn" }
func (stubborn) Difficulty() meta.Difficulty                   { return "" }
func (stubborn) SetDifficulty(meta.Difficulty)                 {}

func randomPair(seed uint64) [2]agent.Agent {
	return [2]agent.Agent{player.NewRandom("first", seed), player.NewRandom("second", seed+1)}
}

func TestLocalRun(t *testing.T) {
	t.Run("plays random agents to a finish", func(t *testing.T) {
		for seed := uint64(0); seed < 10; seed++ {
			e := NewLocal(randomPair(seed), game.Config{GridRadius: 2})

			winner, gameMetric, moveMetrics := e.Run()

			require.Contains(t, []string{"player1", "player2"}, winner)
			require.True(t, e.State().IsOver())
			require.Equal(t, winner, gameMetric.Winner)
			require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
			require.Equal(t, 2, gameMetric.Radius)
			require.Equal(t, e.ID(), gameMetric.ID)
			require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
			for i, mm := range moveMetrics {
				require.Equal(t, i+1, mm.Step)
				require.Equal(t, i%2, mm.Player, "Seats alternate from the starting seat")
				require.False(t, mm.Fallback)
				require.NotEmpty(t, mm.Action)
			}
		}
	})

	t.Run("uses a uuid game id", func(t *testing.T) {
		e := NewLocal(randomPair(1), game.Config{GridRadius: 2})

		_, err := uuid.Parse(e.ID())

		require.NoError(t, err)
		require.Equal(t, e.ID(), e.State().ID)
	})

	t.Run("starts from opposed corners", func(t *testing.T) {
		e := NewLocal(randomPair(1), game.Config{GridRadius: 3})

		state := e.State()
		require.Equal(t, lattice.Coord{Q: -3, R: 0}, state.Players[0].Position)
		require.Equal(t, lattice.Coord{Q: 3, R: 0}, state.Players[1].Position)
		require.Equal(t, "first", state.Players[0].Name)
	})

	t.Run("second seat can start", func(t *testing.T) {
		e := NewLocal(randomPair(2), game.Config{GridRadius: 2}, WithStartingPlayer(1))

		_, gameMetric, moveMetrics := e.Run()

		require.Equal(t, 1, gameMetric.StartingPlayer)
		require.Equal(t, 1, moveMetrics[0].Player)
	})

	t.Run("stops at the turn cap", func(t *testing.T) {
		e := NewLocal(randomPair(3), game.Config{GridRadius: 3}, WithMaxTurns(3))

		winner, gameMetric, moveMetrics := e.Run()

		require.Empty(t, winner, "No game on radius 3 ends within three moves")
		require.Len(t, moveMetrics, 3)
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.False(t, e.State().IsOver())
	})

	t.Run("substitutes rejected moves", func(t *testing.T) {
		agents := [2]agent.Agent{stubborn{}, player.NewRandom("random", 4)}
		e := NewLocal(agents, game.Config{GridRadius: 2})

		winner, _, moveMetrics := e.Run()

		require.NotEmpty(t, winner)
		for _, mm := range moveMetrics {
			require.Equal(t, mm.Player == 0, mm.Fallback, "Only the stubborn seat falls back")
		}
	})

	t.Run("observer sees every accepted move in order", func(t *testing.T) {
		var seen []Update
		e := NewLocal(randomPair(5), game.Config{GridRadius: 2}, WithObserver(func(u Update) {
			seen = append(seen, u)
		}))

		_, _, moveMetrics := e.Run()

		require.Len(t, seen, len(moveMetrics))
		for i, u := range seen {
			require.Equal(t, moveMetrics[i].Action, u.Move.Key())
			require.Equal(t, u.State.Hash(), u.Hash)
			require.Len(t, u.State.History, i+1)
		}
		require.Same(t, e.State(), seen[len(seen)-1].State)
	})
}

func TestHost(t *testing.T) {
	alice := game.Player{ID: "alice", Name: "Alice"}
	bob := game.Player{ID: "bob", Name: "Bob"}
	newState := func() *game.GameState {
		return game.NewGame("host-test", alice, bob, game.Config{
			GridRadius:     2,
			StartPositions: &[2]lattice.Coord{lattice.Center, {Q: 2, R: 0}},
		})
	}

	t.Run("no update before the first move", func(t *testing.T) {
		_, getUpdate := NewHost(newState())

		_, ok := getUpdate()

		require.False(t, ok)
	})

	t.Run("publishes accepted moves", func(t *testing.T) {
		initial := newState()
		host, getUpdate := NewHost(initial)
		move := game.NewMove("alice", lattice.Center, lattice.Coord{Q: 0, R: 1})

		require.NoError(t, host.Play(move))

		u, ok := getUpdate()
		require.True(t, ok)
		require.True(t, u.Move.SameAction(move))
		require.Equal(t, lattice.Coord{Q: 0, R: 1}, u.State.Players[0].Position)
		require.Equal(t, lattice.Center, initial.Players[0].Position, "The initial state is not mutated")
		require.Same(t, host.State(), u.State)
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		host, getUpdate := NewHost(newState())

		err := host.Play(game.NewMove("bob", lattice.Coord{Q: 2, R: 0}, lattice.Coord{Q: 1, R: 0}))

		require.ErrorIs(t, err, ErrIllegalMove)
		_, ok := getUpdate()
		require.False(t, ok, "Rejected moves publish nothing")
	})

	t.Run("closes after the finishing move", func(t *testing.T) {
		state := newState()
		keep := lattice.MakeEdgeKey(lattice.Center, lattice.Coord{Q: 1, R: 0})
		for _, k := range state.Network.Keys() {
			if k != keep {
				state.Network.Remove(k.A, k.B)
			}
		}
		host, getUpdate := NewHost(state)
		finishing := game.NewCut("alice", lattice.Center, lattice.Coord{Q: 1, R: 0})

		require.NoError(t, host.Play(finishing))
		require.True(t, host.Over())

		u, ok := getUpdate()
		require.True(t, ok, "The final update is delivered")
		require.Equal(t, "alice", u.State.Winner)

		_, ok = getUpdate()
		require.False(t, ok)

		require.ErrorIs(t, host.Play(finishing), ErrGameOver)
	})
}
