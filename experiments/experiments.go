package experiments

import (
	"fmt"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"
	"isolation/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Setup describes one experiment: the agents taking part and who plays whom.
type Setup struct {
	Name        string
	Radius      int
	Games       int // Per match up
	Configs     []metrics.AgentConfig
	MatchUps    [][2]metrics.AgentConfig
	Temperature float64 // > 0 samples moves from the root visits
	Seed        uint64
	Sink        *metrics.Sink
}

// Result holds everything an experiment produced. Dir is empty when nothing
// was written.
type Result struct {
	Dir   string
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// DifficultyLadder pairs every preset against the next stronger one.
func DifficultyLadder(radius, games int) Setup {
	configs := make([]metrics.AgentConfig, 0, len(meta.Difficulties))
	for i, d := range meta.Difficulties {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Name: string(d), Config: meta.Preset(d)})
	}
	matchUps := [][2]metrics.AgentConfig{}
	for i := 0; i+1 < len(configs); i++ {
		matchUps = append(matchUps, [2]metrics.AgentConfig{configs[i], configs[i+1]})
	}
	return Setup{Name: "difficulty_ladder", Radius: radius, Games: games, Configs: configs, MatchUps: matchUps}
}

// Parallelization pairs leaf-parallel agents against the sequential baseline
// at the same simulation budget.
func Parallelization(radius, games int) Setup {
	baseline := metrics.AgentConfig{ID: 0, Name: "sequential", Config: meta.Preset(meta.Medium)}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, n := range []int{2, 4, 8} {
		c := meta.Preset(meta.Medium)
		c.Parallelism = n
		config := metrics.AgentConfig{ID: i + 1, Name: fmt.Sprintf("parallel_%d", n), Config: c}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Setup{Name: "parallelization", Radius: radius, Games: games, Configs: configs, MatchUps: matchUps}
}

// Cutoff pairs agents with shorter playouts against the baseline depth.
func Cutoff(radius, games int) Setup {
	baseline := metrics.AgentConfig{ID: 0, Name: "baseline", Config: meta.Preset(meta.Medium)}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, depth := range []int{4, 10, 40} {
		c := meta.Preset(meta.Medium)
		c.MaxSimulationDepth = depth
		c.MaxTreeDepth = min(c.MaxTreeDepth, depth)
		config := metrics.AgentConfig{ID: i + 1, Name: fmt.Sprintf("cutoff_%d", depth), Config: c}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Setup{Name: "cutoff", Radius: radius, Games: games, Configs: configs, MatchUps: matchUps}
}

// Run plays every matchup setup.Games times, alternating the starting seat.
func Run(setup Setup) Result {
	// Run a number of games for each matchup
	count := 0
	result := Result{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchup := range setup.MatchUps {
		config1, config2 := matchup[0], matchup[1]

		log.Info().Msgf("starting matchup %d of %d between %s and %s...", mi+1, len(setup.MatchUps), config1.Name, config2.Name)

		for i := 0; i < setup.Games; i++ {
			count++
			winner, gameMetric, moveMetrics := runGame(setup, count, config1, config2, i%2)
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(setup.MatchUps), i+1, setup.Games, winner)
		}
	}

	for parallelism, rate := range SimulationsPerSecond(result.Moves) {
		log.Info().Msgf("parallelism %d: %.0f simulations/s", parallelism, rate)
	}
	log.Info().Msgf("completed %s experiment", setup.Name)
	return result
}

// Save stores the agent configs and the records under root.
func Save(root string, setup Setup, result *Result) error {
	writer, err := metrics.NewWriter(root, setup.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(setup.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteMoveRecordsParquet(result.Moves); err != nil {
		return err
	}

	result.Dir = writer.Dir()
	log.Info().Msgf("stored %s records in %s", setup.Name, result.Dir)
	return nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(setup Setup, n int, config1, config2 metrics.AgentConfig, start int) (string, metrics.GameMetric, []metrics.MoveMetric) {
	seed := setup.Seed + uint64(n)*2
	agents := [2]agent.Agent{
		newAgent(config1, seed, setup),
		newAgent(config2, seed+1, setup),
	}
	e := engine.NewLocal(agents, game.Config{GridRadius: setup.Radius}, engine.WithStartingPlayer(start))
	return e.Run()
}

func newAgent(config metrics.AgentConfig, seed uint64, setup Setup) agent.Agent {
	c := config.Config
	c.MinThinkingTime = 0

	options := []agent.BotOption{
		agent.WithConfig(c),
		agent.WithSearchOptions(searcher.WithSeed(seed)),
	}
	if setup.Sink != nil {
		options = append(options, agent.WithSink(setup.Sink))
	}
	bot := agent.NewBot(config.Name, c.Difficulty, options...)
	if setup.Temperature > 0 {
		return agent.NewSampler(bot, setup.Temperature, seed)
	}
	return bot
}
