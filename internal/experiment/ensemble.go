package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/remc/internal/config"
)

// Ensemble repeats one simulation over consecutive seeds, each replicate
// running in its own goroutine. Replicates share nothing: every run gets
// its own samplers, exchange engine and swap schedule.
type Ensemble struct {
	registry  *Registry
	cfg       *config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(registry *Registry, cfg *config.Config, numRuns int, seedStart int64) (*Ensemble, error) {
	if numRuns < 1 {
		return nil, fmt.Errorf("experiment: ensemble needs at least one run, got %d", numRuns)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Ensemble{registry: registry, cfg: cfg, numRuns: numRuns, seedStart: seedStart}, nil
}

// Run executes every replicate and returns their results in seed order.
// The first build or run error aborts the ensemble.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			exp, err := e.registry.Build(&cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// MeanSwapRates averages the pairwise acceptance rates over replicates.
func MeanSwapRates(results []*Result) []float64 {
	if len(results) == 0 {
		return nil
	}
	mean := make([]float64, len(results[0].AcceptanceRates))
	for _, r := range results {
		for i, v := range r.AcceptanceRates {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(results))
	}
	return mean
}
