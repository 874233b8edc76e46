package storage

import (
	"testing"

	"github.com/san-kum/remc/internal/experiment"
	"github.com/san-kum/remc/internal/mc"
)

func sampleResult() *experiment.Result {
	states := make([]mc.EnsembleState, 0, 3)
	for step := 0; step < 3; step++ {
		states = append(states, mc.EnsembleState{
			mc.NewState(mc.Vector{float64(step)}),
			mc.NewState(mc.Vector{float64(step) * 10}),
		})
	}
	return &experiment.Result{
		States:          states,
		AcceptanceRates: []float64{0.75},
		LocalRates:      []float64{0.5, 0.6},
		Metrics:         map[string]float64{"chain0_mean": 1.0},
		StepsTaken:      3,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("re", "rwmc", 42, 5, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Algorithm != "re" || meta.Sampler != "rwmc" {
		t.Errorf("metadata: %+v", meta)
	}
	if meta.Samples != 3 || meta.Chains != 2 {
		t.Errorf("samples %d chains %d, want 3 and 2", meta.Samples, meta.Chains)
	}
	if meta.Seed != 42 || meta.SwapInterval != 5 {
		t.Errorf("seed %d interval %d", meta.Seed, meta.SwapInterval)
	}
	if len(meta.AcceptanceRates) != 1 || meta.AcceptanceRates[0] != 0.75 {
		t.Errorf("rates: %v", meta.AcceptanceRates)
	}
}

func TestLoadSamples(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("re", "rwmc", 1, 5, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	chains, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
	if len(chains[0]) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(chains[0]))
	}
	if chains[0][2] != 2 || chains[1][2] != 20 {
		t.Errorf("sample values: %v / %v", chains[0], chains[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("empty store listed %d runs", len(runs))
	}

	if _, err := st.Save("re", "rwmc", 1, 5, sampleResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/nope")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %v", runs)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("re_0"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, err := st.LoadSamples("re_0"); err == nil {
		t.Error("expected error for unknown run")
	}
}
