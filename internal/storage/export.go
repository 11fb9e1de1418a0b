package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/buildatom/internal/sim"
)

type ExportData struct {
	Speed     float64      `json:"speed"`
	Dt        float64      `json:"dt"`
	Duration  float64      `json:"duration"`
	Steps     int          `json:"steps"`
	Arrived   bool         `json:"arrived"`
	Times     []float64    `json:"times"`
	Positions [][2]float64 `json:"positions"`
	Distances []float64    `json:"distances"`
}

func newExportData(cfg sim.Config, result *sim.Result) ExportData {
	data := ExportData{
		Speed:     result.Speed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Arrived:   result.Arrived,
		Times:     result.Times,
		Positions: make([][2]float64, len(result.Positions)),
		Distances: result.Distances,
	}
	for i, p := range result.Positions {
		data.Positions[i] = [2]float64{p.X, p.Y}
	}
	return data
}

func ExportJSON(path string, cfg sim.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, cfg, result)
}

func WriteJSON(w io.Writer, cfg sim.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(cfg, result))
}
