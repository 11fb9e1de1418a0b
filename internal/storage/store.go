package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	From       [2]float64 `json:"from"`
	To         [2]float64 `json:"to"`
	Speed      float64    `json:"speed"`
	Dt         float64    `json:"dt"`
	Duration   float64    `json:"duration"`
	StepsTaken int        `json:"steps_taken"`
	Arrived    bool       `json:"arrived"`
}

// Save writes a motion trace as <id>/metadata.json and <id>/trace.csv.
func (s *Store) Save(from, to geom.Vec2, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("trace_%d_%s", now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		From:       [2]float64{from.X, from.Y},
		To:         [2]float64{to.X, to.Y},
		Speed:      result.Speed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		StepsTaken: result.StepsTaken,
		Arrived:    result.Arrived,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"time", "x", "y", "distance"}); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Positions[i].X, 'f', 6, 64),
			strconv.FormatFloat(result.Positions[i].Y, 'f', 6, 64),
			strconv.FormatFloat(result.Distances[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) LoadMetadata(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads trace.csv back into a result. Malformed rows are skipped.
func (s *Store) LoadTrace(runID string) (*sim.Result, error) {
	meta, err := s.LoadMetadata(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{
		Speed:      meta.Speed,
		StepsTaken: meta.StepsTaken,
		Arrived:    meta.Arrived,
	}
	for i := 1; i < len(records); i++ {
		vals, ok := parseRow(records[i])
		if !ok {
			continue
		}
		result.Times = append(result.Times, vals[0])
		result.Positions = append(result.Positions, geom.V(vals[1], vals[2]))
		result.Distances = append(result.Distances, vals[3])
	}
	return result, nil
}

func parseRow(record []string) ([4]float64, bool) {
	var out [4]float64
	if len(record) < len(out) {
		return out, false
	}
	for i := range out {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}
