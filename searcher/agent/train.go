package agent

import (
	"isolation/game"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// Sampler plays a move drawn from the bot's root visit distribution instead
// of the best one. Experiments use it to diversify openings.
type Sampler struct {
	*Bot
	temperature float64
	rng         *rand.Rand
}

// NewSampler wraps bot. A temperature of 1 samples proportionally to visits;
// lower values sharpen the distribution towards the most visited move.
func NewSampler(bot *Bot, temperature float64, seed uint64) *Sampler {
	return &Sampler{Bot: bot, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (s *Sampler) GetBestMove(state *game.GameState, playerID string) game.Move {
	best := s.Bot.GetBestMove(state, playerID)
	if _, fellBack := s.LastSearch(); fellBack {
		return best
	}

	idx := state.PlayerIndex(playerID)
	byKey := map[string]game.Move{}
	for _, m := range game.GetValidMoves(state, playerID).Actions(playerID, state.Players[idx].Position) {
		byKey[m.Key()] = m
	}

	policy := adjustTemperature(s.Policy(), s.temperature)
	key, ok := sample(policy, s.rng.Float64())
	move, legal := byKey[key]
	if !ok || !legal {
		return best
	}
	move.Timestamp = best.Timestamp
	return move
}

func adjustTemperature(policy map[string]float64, temperature float64) map[string]float64 {
	if temperature <= 0 {
		temperature = 1
	}
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[string]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the cumulative distribution in key order so a fixed draw
// always maps to the same move.
func sample(policy map[string]float64, draw float64) (string, bool) {
	keys := make([]string, 0, len(policy))
	for k := range policy {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)

	cumulative := 0.0
	for _, k := range keys {
		cumulative += policy[k]
		if draw < cumulative {
			return k, true
		}
	}
	return keys[len(keys)-1], true // Fallback in case of rounding errors
}
