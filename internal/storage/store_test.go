package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chili-epfl/states-of-matter/internal/config"
	"github.com/chili-epfl/states-of-matter/internal/engine"
	"github.com/chili-epfl/states-of-matter/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Samples: []sim.Sample{
			{Time: 0.02, Temperature: 0.15, SetPoint: 0.15, Pressure: 0.0, Height: 24.0},
			{Time: 0.04, Temperature: 0.14, SetPoint: 0.15, Pressure: 0.01, Height: 24.0, Exploded: true},
		},
		Metrics: map[string]float64{
			"peak_pressure": 0.01,
		},
		Particles: []engine.Particle{
			{X: 1.0, Y: 2.0, Radius: 0.5, Kind: "neon"},
		},
		Steps: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 42
	runID, err := st.Save(cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Substance != "neon" {
		t.Errorf("expected substance 'neon', got '%s'", meta.Substance)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if !meta.Exploded {
		t.Error("expected exploded flag from last sample")
	}
	if meta.Metrics["peak_pressure"] != 0.01 {
		t.Errorf("expected peak_pressure 0.01, got %f", meta.Metrics["peak_pressure"])
	}

	samples, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Temperature != 0.15 {
		t.Errorf("expected temperature 0.15, got %f", samples[0].Temperature)
	}
	if samples[0].Exploded || !samples[1].Exploded {
		t.Error("exploded column round trip failed")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(config.DefaultConfig(), testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "series.csv", "particles.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	cfg := config.DefaultConfig()
	if err := ExportJSON(path, cfg, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if exported.Substance != "neon" {
		t.Errorf("expected substance 'neon', got '%s'", exported.Substance)
	}
	if len(exported.Samples) != 2 {
		t.Errorf("expected 2 samples, got %d", len(exported.Samples))
	}
	if len(exported.Particles) != 1 {
		t.Errorf("expected 1 particle, got %d", len(exported.Particles))
	}
}
