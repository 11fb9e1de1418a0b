package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/sim"
)

func traceFixture(t *testing.T) (sim.Config, *sim.Result) {
	t.Helper()
	cfg := sim.Config{Dt: 0.1, Duration: 2}
	result, err := sim.Trace(context.Background(), geom.V(0, 0), geom.V(30, 40), 100, cfg)
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	return cfg, result
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := traceFixture(t)
	runID, err := st.Save(geom.V(0, 0), geom.V(30, 40), cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.LoadMetadata(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Speed != 100 {
		t.Errorf("expected speed 100, got %f", meta.Speed)
	}
	if meta.To != [2]float64{30, 40} {
		t.Errorf("unexpected destination %v", meta.To)
	}
	if !meta.Arrived || meta.StepsTaken != result.StepsTaken {
		t.Errorf("unexpected arrival %v after %d steps", meta.Arrived, meta.StepsTaken)
	}

	loaded, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(loaded.Distances) != len(result.Distances) {
		t.Fatalf("expected %d rows, got %d", len(result.Distances), len(loaded.Distances))
	}
	if loaded.Distances[0] != 50 {
		t.Errorf("expected initial distance 50, got %f", loaded.Distances[0])
	}
	if last := loaded.Positions[len(loaded.Positions)-1]; last != geom.V(30, 40) {
		t.Errorf("expected to end at destination, got %v", last)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, result := traceFixture(t)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(geom.V(0, 0), geom.V(30, 40), cfg, result); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.LoadTrace("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestWriteJSON(t *testing.T) {
	cfg, result := traceFixture(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, cfg, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Steps != result.StepsTaken || len(data.Positions) != len(result.Positions) {
		t.Errorf("export mismatch: %+v", data)
	}
}
