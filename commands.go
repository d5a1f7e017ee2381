package main

import (
	"context"
	"fmt"
	"isolation/engine"
	"isolation/experiments"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/player"
	"isolation/searcher"
	"isolation/searcher/agent"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func playCmd() *cobra.Command {
	var (
		radius     int
		difficulty string
		opponent   string
		configPath string
		seed       uint64
		maxTurns   int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game: the bot against another bot, a random player or you",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := botConfig(difficulty, configPath)
			if err != nil {
				return err
			}
			human := opponent == string(player.HumanDifficulty)
			if !human {
				config.MinThinkingTime = 0
			}
			for _, warning := range config.Validate() {
				log.Warn().Msgf("config: %s", warning)
			}

			bot := agent.NewBot("mcts-"+string(config.Difficulty), config.Difficulty,
				agent.WithConfig(config), agent.WithSearchOptions(searcher.WithSeed(seed)))
			rival, err := newOpponent(opponent, seed+1, cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			e := engine.NewLocal([2]agent.Agent{bot, rival}, game.Config{GridRadius: radius},
				engine.WithMaxTurns(maxTurns),
				engine.WithObserver(func(u engine.Update) {
					fmt.Fprintf(out, "%s\n  %s\n", u.Move, player.Describe(u.State))
				}))

			winner, gameMetric, _ := e.Run()
			if winner == "" {
				fmt.Fprintf(out, "no winner after %d moves\n", gameMetric.TotalMoves)
				return nil
			}
			state := e.State()
			fmt.Fprintf(out, "%s wins after %d moves (%s)\n",
				state.Players[state.PlayerIndex(winner)].Name, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "bot fallbacks: %d\n", bot.Fallbacks())
			return nil
		},
	}

	cmd.Flags().IntVar(&radius, "radius", meta.DEFAULT_RADIUS, "Board radius")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(meta.Medium), "Bot preset (easy, medium, hard, expert)")
	cmd.Flags().StringVar(&opponent, "opponent", string(meta.Easy), "Opponent: a preset name, random or human")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding the bot preset")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
	cmd.Flags().IntVar(&maxTurns, "max-turns", meta.MAX_TURNS, "Stop the game after this many moves")
	return cmd
}

// botConfig resolves the bot's parameters: the config file when given,
// the named preset otherwise.
func botConfig(difficulty, path string) (meta.Config, error) {
	if path != "" {
		return meta.Load(path)
	}
	d, err := meta.ParseDifficulty(difficulty)
	if err != nil {
		return meta.Config{}, err
	}
	return meta.Preset(d), nil
}

func newOpponent(name string, seed uint64, cmd *cobra.Command) (agent.Agent, error) {
	switch name {
	case string(player.HumanDifficulty):
		return player.NewConsole("you", cmd.InOrStdin(), cmd.OutOrStdout()), nil
	case string(player.RandomDifficulty):
		return player.NewRandom("random", seed), nil
	}
	d, err := meta.ParseDifficulty(name)
	if err != nil {
		return nil, err
	}
	config := meta.Preset(d)
	config.MinThinkingTime = 0
	return agent.NewBot("mcts-"+string(d), d, agent.WithConfig(config), agent.WithSearchOptions(searcher.WithSeed(seed))), nil
}

func experimentCmd() *cobra.Command {
	var (
		out         string
		radius      int
		games       int
		budget      time.Duration
		seed        uint64
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:       "experiment [ladder|parallel|cutoff|throughput]",
		Short:     "Run bot-vs-bot matchups and store the records as CSV and Parquet",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ladder", "parallel", "cutoff", "throughput"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var setup experiments.Setup
			switch args[0] {
			case "ladder":
				setup = experiments.DifficultyLadder(radius, games)
			case "parallel":
				setup = experiments.Parallelization(radius, games)
			case "cutoff":
				setup = experiments.Cutoff(radius, games)
			case "throughput":
				setup = experiments.Throughput(radius, budget)
			default:
				return fmt.Errorf("unknown experiment %q", args[0])
			}
			setup.Seed = seed

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				setup.Sink = metrics.NewSink(reg)
				go func() {
					if err := metrics.Serve(ctx, metricsAddr, reg); err != nil {
						log.Error().Err(err).Msg("metrics server stopped")
					}
				}()
			}

			result := experiments.Run(setup)
			if err := experiments.Save(out, setup, &result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d games, %d moves written to %s\n", len(result.Games), len(result.Moves), result.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "results", "Output root directory")
	cmd.Flags().IntVar(&radius, "radius", meta.DEFAULT_RADIUS, "Board radius")
	cmd.Flags().IntVar(&games, "games", meta.GAMES_PER_MATCHUP, "Games per matchup")
	cmd.Flags().DurationVar(&budget, "budget", 50*time.Millisecond, "Thinking time per move for the throughput experiment")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Base random seed")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running, e.g. :9090")
	return cmd
}

func presetsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Print the difficulty presets, or the resolved config of a file, as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()

			if configPath != "" {
				config, err := meta.Load(configPath)
				if err != nil {
					return err
				}
				for _, warning := range config.Validate() {
					log.Warn().Msgf("config: %s", warning)
				}
				return enc.Encode(config)
			}

			all := make(map[string]meta.Config, len(meta.Difficulties))
			for _, d := range meta.Difficulties {
				all[string(d)] = meta.Preset(d)
			}
			return enc.Encode(all)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Resolve and validate this YAML file instead")
	return cmd
}
