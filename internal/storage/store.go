// Package storage persists recorded runs. A run is one headless or
// interactive session of a scene: a metadata.json with the run
// parameters and final metrics, and a metrics.csv with the sampled
// metric channels over time.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
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
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Samples   int                `json:"samples"`
	Final     map[string]float64 `json:"final_metrics"`
}

// Recording is the sampled metric history of one run. Channels are
// stored column-major under stable sorted names.
type Recording struct {
	Times    []float64
	Channels map[string][]float64
}

func NewRecording() *Recording {
	return &Recording{Channels: make(map[string][]float64)}
}

// Append records one sample. Channels missing from this sample are
// padded with zeros so columns stay aligned.
func (r *Recording) Append(t float64, metrics map[string]float64) {
	r.Times = append(r.Times, t)
	n := len(r.Times)
	for k, v := range metrics {
		col, ok := r.Channels[k]
		if !ok {
			col = make([]float64, n-1)
		}
		r.Channels[k] = append(col, v)
	}
	for k, col := range r.Channels {
		for len(col) < n {
			col = append(col, 0)
		}
		r.Channels[k] = col
	}
}

func (r *Recording) channelNames() []string {
	names := make([]string, 0, len(r.Channels))
	for k := range r.Channels {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Save(scene string, dt float64, seed int64, rec *Recording) (string, error) {
	runID := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	duration := 0.0
	final := map[string]float64{}
	if n := len(rec.Times); n > 0 {
		duration = rec.Times[n-1]
		for k, col := range rec.Channels {
			final[k] = col[n-1]
		}
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     scene,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Samples:   len(rec.Times),
		Final:     final,
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

	csvFile, err := os.Create(filepath.Join(runDir, "metrics.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeCSV(csvFile, rec); err != nil {
		return "", err
	}

	return runID, nil
}

func writeCSV(out io.Writer, rec *Recording) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	names := rec.channelNames()
	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range rec.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'f', 6, 64))
		for _, name := range names {
			row = append(row, strconv.FormatFloat(rec.Channels[name][i], 'f', 6, 64))
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadRecording reads metrics.csv back into memory.
func (s *Store) LoadRecording(runID string) (*Recording, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "metrics.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return NewRecording(), nil
	}

	header := records[0]
	rec := NewRecording()
	for _, name := range header[1:] {
		rec.Channels[name] = []float64{}
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		rec.Times = append(rec.Times, t)
		for j, name := range header[1:] {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				v = 0
			}
			rec.Channels[name] = append(rec.Channels[name], v)
		}
	}
	return rec, nil
}

// ExportCSV streams a stored run's metrics.csv to out.
func (s *Store) ExportCSV(runID string, out io.Writer) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "metrics.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(out, file)
	return err
}
