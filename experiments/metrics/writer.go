package metrics

import (
	"encoding/csv"
	"fmt"
	"isolation/meta"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentConfig struct {
	ID   int
	Name string
	meta.Config
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// moveRow is the Parquet layout of a MoveRecord.
type moveRow struct {
	Game         int32  `parquet:"game"`
	Step         int32  `parquet:"step"`
	Player       int32  `parquet:"player"`
	Action       string `parquet:"action"`
	Fallback     bool   `parquet:"fallback"`
	Difficulty   string `parquet:"difficulty,dict"`
	Policy       string `parquet:"policy,dict"`
	Parallelism  int32  `parquet:"parallelism"`
	DurationMs   int64  `parquet:"duration_ms"`
	Simulations  int32  `parquet:"simulations"`
	FullPlayouts int32  `parquet:"full_playouts"`
	MaxDepth     int32  `parquet:"max_depth"`
	Cutoff       int32  `parquet:"cutoff"`
	TreeReused   bool   `parquet:"tree_reused"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold one experiment's output.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "difficulty", "max_simulations", "exploration", "max_thinking_time",
		"max_tree_depth", "simulation_policy", "max_simulation_depth", "final_move_selection", "parallelism", "reuse_tree"}

	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			string(config.Difficulty),
			strconv.Itoa(config.MaxSimulations),
			strconv.FormatFloat(config.ExplorationConstant, 'f', -1, 64),
			config.MaxThinkingTime.String(),
			strconv.Itoa(config.MaxTreeDepth),
			string(config.SimulationPolicy),
			strconv.Itoa(config.MaxSimulationDepth),
			string(config.FinalMoveSelection),
			strconv.Itoa(config.Parallelism),
			strconv.FormatBool(config.ReuseTree),
		})
	}

	return w.writeCSV("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "game_id", "agent1", "agent2", "radius", "starting_player", "winner",
		"total_moves", "start_time", "end_time", "duration"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.GameMetric.ID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Radius),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}

	return w.writeCSV("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "fallback", "duration", "simulations",
		"full_playouts", "max_depth", "is_tree_reused"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Action,
			strconv.FormatBool(record.Fallback),
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.MaxDepth),
			strconv.FormatBool(!record.IsTreeReset),
		})
	}

	return w.writeCSV("move_records.csv", "move records", header, rows)
}

// WriteMoveRecordsParquet stores the move records as zstd-compressed Parquet.
// The file is written under a temporary name and renamed into place.
func (w *Writer) WriteMoveRecordsParquet(records []MoveRecord) error {
	rows := make([]moveRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, moveRow{
			Game:         int32(r.Game),
			Step:         int32(r.Step),
			Player:       int32(r.Player),
			Action:       r.Action,
			Fallback:     r.Fallback,
			Difficulty:   r.Difficulty,
			Policy:       r.Policy,
			Parallelism:  int32(r.Parallelism),
			DurationMs:   r.Duration.Milliseconds(),
			Simulations:  int32(r.Simulations),
			FullPlayouts: int32(r.FullPlayouts),
			MaxDepth:     int32(r.MaxDepth),
			Cutoff:       int32(r.Cutoff),
			TreeReused:   !r.IsTreeReset,
		})
	}

	path := filepath.Join(w.baseDir, "move_records.parquet")
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		return fmt.Errorf("failed to write move records parquet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename move records parquet: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(file, what string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", what, err)
	}
	return nil
}
