package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chili-epfl/states-of-matter/internal/config"
	"github.com/chili-epfl/states-of-matter/internal/sim"
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
	ID         string             `json:"id"`
	Substance  string             `json:"substance"`
	Phase      string             `json:"phase"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Thermostat string             `json:"thermostat"`
	Molecules  int                `json:"molecules"`
	Exploded   bool               `json:"exploded"`
	Metrics    map[string]float64 `json:"metrics"`
}

var seriesHeader = []string{"time", "temperature", "set_point", "pressure", "height", "exploded"}

func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Substance, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	exploded := false
	if n := len(result.Samples); n > 0 {
		exploded = result.Samples[n-1].Exploded
	}
	meta := RunMetadata{
		ID:         runID,
		Substance:  cfg.Substance,
		Phase:      cfg.Phase,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Thermostat: cfg.Thermostat,
		Molecules:  cfg.Molecules,
		Exploded:   exploded,
		Metrics:    result.Metrics,
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

	if err := s.writeSeries(runDir, result); err != nil {
		return "", err
	}
	if err := s.writeParticles(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeSeries(runDir string, result *sim.Result) error {
	file, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for _, sample := range result.Samples {
		exploded := "0"
		if sample.Exploded {
			exploded = "1"
		}
		row := []string{
			strconv.FormatFloat(sample.Time, 'f', 6, 64),
			strconv.FormatFloat(sample.Temperature, 'f', 6, 64),
			strconv.FormatFloat(sample.SetPoint, 'f', 6, 64),
			strconv.FormatFloat(sample.Pressure, 'f', 6, 64),
			strconv.FormatFloat(sample.Height, 'f', 6, 64),
			exploded,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) writeParticles(runDir string, result *sim.Result) error {
	file, err := os.Create(filepath.Join(runDir, "particles.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "radius", "kind"}); err != nil {
		return err
	}
	for _, p := range result.Particles {
		row := []string{
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Radius, 'f', 6, 64),
			p.Kind,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(seriesHeader) {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, sim.Sample{
			Time:        vals[0],
			Temperature: vals[1],
			SetPoint:    vals[2],
			Pressure:    vals[3],
			Height:      vals[4],
			Exploded:    record[5] == "1",
		})
	}
	return samples, nil
}
