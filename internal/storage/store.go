// Package storage persists finished runs: one directory per run with a
// metadata.json and a samples.csv (first coordinate of every chain per
// step).
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

	"github.com/san-kum/remc/internal/experiment"
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
	ID              string             `json:"id"`
	Algorithm       string             `json:"algorithm"`
	Sampler         string             `json:"sampler"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	Samples         int                `json:"samples"`
	SwapInterval    int                `json:"swap_interval"`
	Chains          int                `json:"chains"`
	AcceptanceRates []float64          `json:"acceptance_rates"`
	LocalRates      []float64          `json:"local_rates"`
	Metrics         map[string]float64 `json:"metrics"`
}

func (s *Store) Save(algorithm, sampler string, seed int64, swapInterval int, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", algorithm, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	chains := 0
	if len(result.States) > 0 {
		chains = len(result.States[0])
	}

	meta := RunMetadata{
		ID:              runID,
		Algorithm:       algorithm,
		Sampler:         sampler,
		Timestamp:       time.Now(),
		Seed:            seed,
		Samples:         len(result.States),
		SwapInterval:    swapInterval,
		Chains:          chains,
		AcceptanceRates: result.AcceptanceRates,
		LocalRates:      result.LocalRates,
		Metrics:         result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := make([]string, chains+1)
	header[0] = "step"
	for i := 0; i < chains; i++ {
		header[i+1] = fmt.Sprintf("chain%d", i)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for step, states := range result.States {
		row := make([]string, chains+1)
		row[0] = strconv.Itoa(step)
		for i, st := range states {
			row[i+1] = strconv.FormatFloat(st.Position[0], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadSamples reads back the per-chain first coordinates: one slice per
// chain, in step order.
func (s *Store) LoadSamples(runID string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: run %s has no samples", runID)
	}

	chains := len(records[0]) - 1
	out := make([][]float64, chains)
	for _, rec := range records[1:] {
		for i := 0; i < chains; i++ {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, err
			}
			out[i] = append(out[i], v)
		}
	}
	return out, nil
}
