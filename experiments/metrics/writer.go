package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one searcher taking part in an experiment.
type AgentConfig struct {
	ID          int
	Duration    time.Duration
	Episodes    int
	Cutoff      int
	Exploration float64
	Temperature float64 // > 0 samples moves from the visit distribution
	Remote      string  // move service URL; empty searches locally
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing Black
	Agent2 int // AgentConfig.ID playing White
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes all records below it.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
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
	header := []string{"id", "duration", "episodes", "cutoff", "exploration", "temperature", "remote"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.FormatFloat(config.Temperature, 'f', -1, 64),
			config.Remote,
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "winner", "black_score", "white_score",
		"total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Winner),
			strconv.FormatFloat(record.BlackScore, 'f', -1, 64),
			strconv.FormatFloat(record.WhiteScore, 'f', -1, 64),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "duration", "episodes", "discarded", "full_playouts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Discarded),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
