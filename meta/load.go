package meta

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load resolves a Config in three layers: the preset named by the file's
// difficulty key (Medium when absent), the file's own keys, then ISOLATION_*
// environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Preset(Medium)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
		config, err = Parse(data)
		if err != nil {
			return config, err
		}
	}

	if err := applyEnv(&config); err != nil {
		return config, err
	}
	return config, nil
}

// Parse decodes YAML on top of the preset it names.
func Parse(data []byte) (Config, error) {
	var probe struct {
		Difficulty string `yaml:"difficulty"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	base := Medium
	if probe.Difficulty != "" {
		d, err := ParseDifficulty(probe.Difficulty)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
		base = d
	}

	config := Preset(base)
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	config.Difficulty = base
	return config, nil
}

func applyEnv(config *Config) error {
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(ENV_PREFIX + name)
		return v, ok && v != ""
	}

	if v, ok := lookup("DIFFICULTY"); ok {
		d, err := ParseDifficulty(v)
		if err != nil {
			return fmt.Errorf("invalid %sDIFFICULTY: %w", ENV_PREFIX, err)
		}
		*config = Preset(d)
	}
	if v, ok := lookup("MAX_SIMULATIONS"); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_SIMULATIONS: %w", ENV_PREFIX, err)
		}
		config.MaxSimulations = i
	}
	if v, ok := lookup("EXPLORATION"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sEXPLORATION: %w", ENV_PREFIX, err)
		}
		config.ExplorationConstant = f
	}
	if v, ok := lookup("THINKING_TIME"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTHINKING_TIME: %w", ENV_PREFIX, err)
		}
		config.MaxThinkingTime = d
	}
	if v, ok := lookup("SIMULATION_DEPTH"); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSIMULATION_DEPTH: %w", ENV_PREFIX, err)
		}
		config.MaxSimulationDepth = i
	}
	if v, ok := lookup("SIMULATION_POLICY"); ok {
		config.SimulationPolicy = SimulationPolicy(v)
	}
	if v, ok := lookup("PARALLELISM"); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPARALLELISM: %w", ENV_PREFIX, err)
		}
		config.Parallelism = i
	}
	if v, ok := lookup("REUSE_TREE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sREUSE_TREE: %w", ENV_PREFIX, err)
		}
		config.ReuseTree = b
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	return nil
}
